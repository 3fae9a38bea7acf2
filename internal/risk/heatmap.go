package risk

// CellColor is the traffic-light rating of a heatmap cell
type CellColor string

const (
	ColorGreen CellColor = "GREEN"
	ColorAmber CellColor = "AMBER"
	ColorRed   CellColor = "RED"
)

const heatmapBuckets = 5

// Cell is one bucket of the probability x impact grid
type Cell struct {
	ImpactBucket      int       `json:"impact_bucket"`
	ProbabilityBucket int       `json:"probability_bucket"`
	Count             int       `json:"count"`
	RiskIDs           []string  `json:"risk_ids,omitempty"`
	Color             CellColor `json:"color"`
}

// Heatmap is a 5x5 grid over impact and probability in 20-point buckets.
// Cells[i][p] holds impact bucket i, probability bucket p.
type Heatmap struct {
	Cells [heatmapBuckets][heatmapBuckets]Cell `json:"cells"`
}

// BuildHeatmap buckets each risk item into the grid. Scores of 100 land in
// the top bucket.
func BuildHeatmap(items []Item) *Heatmap {
	hm := &Heatmap{}
	for i := 0; i < heatmapBuckets; i++ {
		for p := 0; p < heatmapBuckets; p++ {
			hm.Cells[i][p] = Cell{
				ImpactBucket:      i,
				ProbabilityBucket: p,
				Color:             cellColor(i, p),
			}
		}
	}
	for _, item := range items {
		i := bucketIndex(item.Impact)
		p := bucketIndex(item.Probability)
		cell := &hm.Cells[i][p]
		cell.Count++
		cell.RiskIDs = append(cell.RiskIDs, item.ID)
	}
	return hm
}

func bucketIndex(v float64) int {
	idx := int(v / 20)
	if idx >= heatmapBuckets {
		idx = heatmapBuckets - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}

// cellColor rates a cell by its bucket floors: red when both impact and
// probability start at 60 or above, amber when either starts at 40 or
// above, green otherwise.
func cellColor(impactBucket, probabilityBucket int) CellColor {
	impactFloor := impactBucket * 20
	probabilityFloor := probabilityBucket * 20
	switch {
	case impactFloor >= 60 && probabilityFloor >= 60:
		return ColorRed
	case impactFloor >= 40 || probabilityFloor >= 40:
		return ColorAmber
	default:
		return ColorGreen
	}
}
