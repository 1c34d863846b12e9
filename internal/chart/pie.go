package chart

import (
	"math"

	"github.com/shopspring/decimal"
)

type Slice struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Angle float64 `json:"angle"`
	Color string  `json:"color"`
}

type LegendEntry struct {
	Label      string  `json:"label"`
	Amount     float64 `json:"amount"`
	Percentage string  `json:"percentage"` // one decimal place, e.g. "36.8"
	Color      string  `json:"color"`
}

// Pie is the laid out pie chart. When Empty is set only Message is meaningful.
type Pie struct {
	Empty   bool          `json:"empty"`
	Message string        `json:"message,omitempty"`
	Total   float64       `json:"total"`
	CenterX float64       `json:"center_x"`
	CenterY float64       `json:"center_y"`
	Radius  float64       `json:"radius"`
	Slices  []Slice       `json:"slices"`
	Legend  []LegendEntry `json:"legend"`
}

// LayoutPie assigns each point a wedge proportional to its share of the total,
// starting at angle 0 and proceeding in input order.
func LayoutPie(points []Point, canvas Canvas) Pie {
	var total float64
	for _, p := range points {
		total += p.Value
	}

	if !(total > 0) || !finite(total) {
		return Pie{Empty: true, Message: NoDataMessage, Slices: []Slice{}, Legend: []LegendEntry{}}
	}

	cx := math.Max(canvas.Width, 0) / 2
	cy := math.Max(canvas.Height, 0) / 2

	pie := Pie{
		Total:   total,
		CenterX: cx,
		CenterY: cy,
		Radius:  math.Min(cx, cy) * 0.7,
		Slices:  make([]Slice, 0, len(points)),
		Legend:  make([]LegendEntry, 0, len(points)),
	}

	start := 0.0

	for i, p := range points {
		angle := p.Value / total * 2 * math.Pi
		end := start + angle

		if i == len(points)-1 {
			end = 2 * math.Pi
		}

		pie.Slices = append(pie.Slices, Slice{
			Label: p.Label,
			Value: p.Value,
			Start: start,
			End:   end,
			Angle: angle,
			Color: colorAt(i),
		})

		pie.Legend = append(pie.Legend, LegendEntry{
			Label:      p.Label,
			Amount:     p.Value,
			Percentage: decimal.NewFromFloat(p.Value / total * 100).StringFixed(1),
			Color:      colorAt(i),
		})

		start = end
	}

	return pie
}
