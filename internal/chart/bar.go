package chart

import "math"

const (
	barPadding     = 20.0
	barLabelBand   = 30.0
	barWidthShare  = 0.6
	barGapShare    = 0.4
	maxBarLabels   = 15
	labelOffset    = 5.0
	minAnnotated   = 15.0
	annotationDrop = 10.0
	maxLabelInset  = 5.0
)

// LabelRotation is the clockwise rotation applied to every x-axis label.
const LabelRotation = math.Pi / 4

type BarRect struct {
	Label          string  `json:"label"`
	Value          float64 `json:"value"`
	X              float64 `json:"x"`
	Y              float64 `json:"y"`
	Width          float64 `json:"width"`
	Height         float64 `json:"height"`
	HeightFraction float64 `json:"height_fraction"`
	// AxisLabel is nil when the label was thinned out.
	AxisLabel *Text `json:"axis_label,omitempty"`
	// Annotation carries the value drawn inside the top of the bar, when it fits.
	Annotation *Text `json:"annotation,omitempty"`
}

// Bar is the laid out bar chart. When Empty is set only Message is meaningful.
type Bar struct {
	Empty       bool      `json:"empty"`
	Message     string    `json:"message,omitempty"`
	Max         float64   `json:"max"`
	ChartWidth  float64   `json:"chart_width"`
	ChartHeight float64   `json:"chart_height"`
	YAxis       Segment   `json:"y_axis"`
	XAxis       Segment   `json:"x_axis"`
	MaxLabel    Text      `json:"max_label"`
	Bars        []BarRect `json:"bars"`
}

// LabelStep returns how many bars share one x-axis label when n bars are drawn.
func LabelStep(n int) int {
	if n <= maxBarLabels {
		return 1
	}

	return int(math.Ceil(float64(n) / maxBarLabels))
}

// LayoutBar places one bar per point, scaled so the largest value spans the full chart
// height.
func LayoutBar(points []Point, canvas Canvas) Bar {
	maxValue := math.Inf(-1)
	for _, p := range points {
		maxValue = math.Max(maxValue, p.Value)
	}

	if len(points) == 0 || !(maxValue > 0) || !finite(maxValue) {
		return Bar{Empty: true, Message: NoDataMessage, Bars: []BarRect{}}
	}

	n := len(points)
	chartWidth := math.Max(canvas.Width-2*barPadding, 0)
	chartHeight := math.Max(canvas.Height-2*barPadding-barLabelBand, 0)
	slot := chartWidth / float64(n)
	barWidth := slot * barWidthShare
	gap := slot * barGapShare
	baseline := barPadding + chartHeight
	step := LabelStep(n)

	bar := Bar{
		Max:         maxValue,
		ChartWidth:  chartWidth,
		ChartHeight: chartHeight,
		YAxis:       Segment{X1: barPadding, Y1: barPadding, X2: barPadding, Y2: baseline},
		XAxis:       Segment{X1: barPadding, Y1: baseline, X2: barPadding + chartWidth, Y2: baseline},
		MaxLabel:    Text{Text: wholeUnits(maxValue), X: barPadding - maxLabelInset, Y: barPadding + annotationDrop},
		Bars:        make([]BarRect, 0, n),
	}

	for i, p := range points {
		fraction := p.Value / maxValue
		if p.Value == maxValue {
			fraction = 1
		}

		height := fraction * chartHeight
		x := barPadding + gap/2 + float64(i)*(barWidth+gap)
		y := baseline - height

		rect := BarRect{
			Label:          p.Label,
			Value:          p.Value,
			X:              x,
			Y:              y,
			Width:          barWidth,
			Height:         height,
			HeightFraction: fraction,
		}

		if i%step == 0 {
			rect.AxisLabel = &Text{
				Text:     p.Label,
				X:        x + barWidth/2,
				Y:        baseline + labelOffset,
				Rotation: LabelRotation,
			}
		}

		if p.Value > 0 && height > minAnnotated {
			rect.Annotation = &Text{
				Text: wholeUnits(p.Value),
				X:    x + barWidth/2,
				Y:    y + annotationDrop,
			}
		}

		bar.Bars = append(bar.Bars, rect)
	}

	return bar
}
