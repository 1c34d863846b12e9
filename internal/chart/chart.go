// Package chart lays out the category pie chart and the daily bar chart. It produces
// geometry only; drawing is left to the presentation surface.
package chart

import (
	"math"

	"github.com/shopspring/decimal"
)

// NoDataMessage is shown in place of a chart that has nothing to draw.
const NoDataMessage = "No data for chart"

// Palette is cycled through by slice index.
var Palette = []string{
	"#FF6384", "#36A2EB", "#FFCE56", "#4BC0C0", "#9966CC",
	"#FF9F40", "#a3e635", "#e879f9", "#facc15", "#fb7185",
}

// Point is one labelled value of a series.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Canvas is the drawing area in pixels.
type Canvas struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Text is a label placed at an anchor point, rotated clockwise by Rotation radians.
type Text struct {
	Text     string  `json:"text"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation,omitempty"`
}

// Segment is a straight line from (X1, Y1) to (X2, Y2).
type Segment struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

func colorAt(i int) string {
	return Palette[i%len(Palette)]
}

func wholeUnits(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(0)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
