package chart_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/spendview/internal/chart"
)

var canvas = chart.Canvas{Width: 300, Height: 200}

func TestLayoutPie(t *testing.T) {
	points := []chart.Point{
		{Label: "Food", Value: 19.5},
		{Label: "Transport", Value: 30},
		{Label: "Bills", Value: 0.5},
	}

	got := chart.LayoutPie(points, canvas)

	require.False(t, got.Empty)
	require.Len(t, got.Slices, 3)

	assert.Equal(t, 150.0, got.CenterX)
	assert.Equal(t, 100.0, got.CenterY)
	assert.InDelta(t, 70.0, got.Radius, 1e-9)

	var sum float64
	for i, s := range got.Slices {
		sum += s.Angle
		assert.Equal(t, chart.Palette[i], s.Color)

		if i > 0 {
			assert.Equal(t, got.Slices[i-1].End, s.Start)
		}
	}

	assert.Zero(t, got.Slices[0].Start)
	assert.InDelta(t, 2*math.Pi, sum, 1e-9)
	assert.Equal(t, 2*math.Pi, got.Slices[2].End)

	assert.Equal(t, "39.0", got.Legend[0].Percentage)
	assert.Equal(t, "60.0", got.Legend[1].Percentage)
	assert.Equal(t, "1.0", got.Legend[2].Percentage)
}

func TestLayoutPie_Empty(t *testing.T) {
	type testCase struct {
		name   string
		points []chart.Point
	}

	tests := []testCase{
		{name: "NoPoints"},
		{name: "ZeroTotal", points: []chart.Point{{Label: "Food", Value: 0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := chart.LayoutPie(tt.points, canvas)

			assert.True(t, got.Empty)
			assert.Equal(t, chart.NoDataMessage, got.Message)
			assert.Empty(t, got.Slices)
		})
	}
}

func TestLayoutPie_PaletteWraps(t *testing.T) {
	points := make([]chart.Point, len(chart.Palette)+2)
	for i := range points {
		points[i] = chart.Point{Label: fmt.Sprint(i), Value: 1}
	}

	got := chart.LayoutPie(points, canvas)

	assert.Equal(t, chart.Palette[0], got.Slices[len(chart.Palette)].Color)
	assert.Equal(t, chart.Palette[1], got.Legend[len(chart.Palette)+1].Color)
}

func TestLayoutBar(t *testing.T) {
	points := []chart.Point{
		{Label: "03/05/2024", Value: 10},
		{Label: "03/06/2024", Value: 40},
		{Label: "03/07/2024", Value: 1},
	}

	got := chart.LayoutBar(points, canvas)

	require.False(t, got.Empty)
	require.Len(t, got.Bars, 3)

	// 300 wide, 200 high: chart area is 260 x 130.
	assert.Equal(t, 260.0, got.ChartWidth)
	assert.Equal(t, 130.0, got.ChartHeight)
	assert.Equal(t, 40.0, got.Max)

	tallest := got.Bars[1]
	assert.Equal(t, 1.0, tallest.HeightFraction)
	assert.Equal(t, 130.0, tallest.Height)
	assert.Equal(t, 20.0, tallest.Y)

	slot := 260.0 / 3
	assert.InDelta(t, 20+slot*0.2, got.Bars[0].X, 1e-9)
	assert.InDelta(t, 20+slot*0.2+slot, got.Bars[1].X, 1e-9)
	assert.InDelta(t, slot*0.6, got.Bars[0].Width, 1e-9)

	for _, b := range got.Bars {
		assert.InDelta(t, 150.0, b.Y+b.Height, 1e-9)
		require.NotNil(t, b.AxisLabel)
		assert.Equal(t, chart.LabelRotation, b.AxisLabel.Rotation)
		assert.InDelta(t, b.X+b.Width/2, b.AxisLabel.X, 1e-9)
		assert.Equal(t, 155.0, b.AxisLabel.Y)
	}

	require.NotNil(t, got.Bars[1].Annotation)
	assert.Equal(t, "40", got.Bars[1].Annotation.Text)
	assert.Equal(t, 30.0, got.Bars[1].Annotation.Y)
	assert.Nil(t, got.Bars[2].Annotation, "a 3.25px bar is too short to annotate")

	assert.Equal(t, chart.Segment{X1: 20, Y1: 20, X2: 20, Y2: 150}, got.YAxis)
	assert.Equal(t, chart.Segment{X1: 20, Y1: 150, X2: 280, Y2: 150}, got.XAxis)
	assert.Equal(t, chart.Text{Text: "40", X: 15, Y: 30}, got.MaxLabel)
}

func TestLayoutBar_Empty(t *testing.T) {
	assert.True(t, chart.LayoutBar(nil, canvas).Empty)

	got := chart.LayoutBar([]chart.Point{{Label: "a"}, {Label: "b"}}, canvas)
	assert.True(t, got.Empty)
	assert.Equal(t, chart.NoDataMessage, got.Message)
}

func TestLayoutBar_LabelThinning(t *testing.T) {
	type testCase struct {
		name       string
		n          int
		wantLabels int
	}

	tests := []testCase{
		{name: "Fifteen", n: 15, wantLabels: 15},
		{name: "Sixteen", n: 16, wantLabels: 8},
		{name: "Thirty", n: 30, wantLabels: 15},
		{name: "ThirtyOne", n: 31, wantLabels: 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points := make([]chart.Point, tt.n)
			for i := range points {
				points[i] = chart.Point{Label: fmt.Sprint(i), Value: float64(i + 1)}
			}

			got := chart.LayoutBar(points, chart.Canvas{Width: 600, Height: 300})

			labels := 0
			for i, b := range got.Bars {
				if b.AxisLabel != nil {
					labels++
					assert.Zero(t, i%chart.LabelStep(tt.n))
				}
			}

			assert.Equal(t, tt.wantLabels, labels)
		})
	}
}

func TestLayoutBar_TinyCanvas(t *testing.T) {
	got := chart.LayoutBar([]chart.Point{{Label: "a", Value: 5}}, chart.Canvas{Width: 10, Height: 10})

	require.False(t, got.Empty)
	assert.Zero(t, got.ChartWidth)
	assert.Zero(t, got.ChartHeight)
	assert.Zero(t, got.Bars[0].Height)
	assert.False(t, math.IsNaN(got.Bars[0].X))
	assert.Nil(t, got.Bars[0].Annotation)
}
