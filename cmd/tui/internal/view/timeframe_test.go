package view

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/spendview/internal/chart"
	"github.com/MrJamesThe3rd/spendview/internal/filter"
)

func press(t *testing.T, p TimeframePicker, keys ...tea.KeyMsg) (TimeframePicker, tea.Msg) {
	t.Helper()

	var cmd tea.Cmd
	for _, k := range keys {
		p, cmd = p.Update(k)
	}

	if cmd == nil {
		return p, nil
	}

	return p, cmd()
}

func TestTimeframePicker_SelectsRange(t *testing.T) {
	p := NewTimeframePicker(filter.RangeAll)

	_, msg := press(t, p,
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyEnter},
	)

	selected, ok := msg.(TimeframeSelectedMsg)
	require.True(t, ok)
	assert.Equal(t, filter.Spec{Range: filter.RangeWeek}, selected.Spec)
}

func TestTimeframePicker_CustomWithOpenEnd(t *testing.T) {
	p := NewTimeframePicker(filter.RangeCustom)

	p, _ = press(t, p, tea.KeyMsg{Type: tea.KeyEnter})
	require.False(t, p.IsSelecting())

	p.startInput.SetValue("2024-03-01")

	_, msg := press(t, p, tea.KeyMsg{Type: tea.KeyEnter})

	selected, ok := msg.(TimeframeSelectedMsg)
	require.True(t, ok)
	assert.Equal(t, filter.RangeCustom, selected.Spec.Range)
	require.NotNil(t, selected.Spec.Start)
	assert.Equal(t, "2024-03-01", *selected.Spec.Start)
	assert.Nil(t, selected.Spec.End)
}

func TestTimeframePicker_RejectsBadDate(t *testing.T) {
	p := NewTimeframePicker(filter.RangeCustom)

	p, _ = press(t, p, tea.KeyMsg{Type: tea.KeyEnter})
	p.endInput.SetValue("03/01/2024")

	p, msg := press(t, p, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, msg)
	assert.Contains(t, p.View(), "invalid end date")
}

func TestRenderBar(t *testing.T) {
	p := PaletteFor("light")

	empty := renderBar(p, chart.LayoutBar(nil, chart.Canvas{Width: 400, Height: 200}))
	assert.Contains(t, empty, chart.NoDataMessage)

	bar := chart.LayoutBar([]chart.Point{
		{Label: "03/01/2024", Value: 10},
		{Label: "03/02/2024", Value: 40},
	}, chart.Canvas{Width: 400, Height: 200})

	out := renderBar(p, bar)
	assert.Contains(t, out, "03/01/2024")
	assert.Contains(t, out, "03/02/2024")
	assert.Contains(t, out, bar.MaxLabel.Text)
}
