package view

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/spendview/internal/chart"
	"github.com/MrJamesThe3rd/spendview/internal/dashboard"
)

const (
	barRows      = 8
	barCellWidth = 3
)

// renderPie draws the pie legend: one colored swatch per slice with its amount and share.
func renderPie(p Palette, pie chart.Pie, currency string) string {
	title := lipgloss.NewStyle().Bold(true).Render("Spending by Category")
	if pie.Empty {
		return title + "\n\n" + lipgloss.NewStyle().Faint(true).Render(pie.Message)
	}

	lines := []string{title, ""}
	for _, entry := range pie.Legend {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(entry.Color)).Render("■")
		lines = append(lines, fmt.Sprintf("%s %-14s %12s  %5s%%",
			swatch, entry.Label, dashboard.FormatAmount(currency, entry.Amount), entry.Percentage))
	}

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

// renderBar draws the daily bar chart as columns of block characters. Column heights
// follow each bar's HeightFraction and only the labels kept by the layout are printed.
func renderBar(p Palette, bar chart.Bar) string {
	title := lipgloss.NewStyle().Bold(true).Render("Daily Spending")
	if bar.Empty {
		return title + "\n\n" + lipgloss.NewStyle().Faint(true).Render(bar.Message)
	}

	heights := make([]int, len(bar.Bars))
	for i, b := range bar.Bars {
		heights[i] = int(math.Round(b.HeightFraction * barRows))
		if heights[i] == 0 && b.Value > 0 {
			heights[i] = 1
		}
	}

	fill := lipgloss.NewStyle().Foreground(p.Accent)
	axisWidth := len(bar.MaxLabel.Text)

	var b strings.Builder

	b.WriteString(title + "\n\n")

	for row := barRows; row >= 1; row-- {
		axis := strings.Repeat(" ", axisWidth)
		if row == barRows {
			axis = bar.MaxLabel.Text
		}

		b.WriteString(axis + " │")

		for _, h := range heights {
			cell := strings.Repeat(" ", barCellWidth)
			if h >= row {
				cell = fill.Render(strings.Repeat("█", barCellWidth-1)) + " "
			}

			b.WriteString(cell)
		}

		b.WriteString("\n")
	}

	b.WriteString(strings.Repeat(" ", axisWidth) + " └" + strings.Repeat("─", len(heights)*barCellWidth) + "\n")

	var labels []string

	for _, rect := range bar.Bars {
		if rect.AxisLabel == nil {
			continue
		}

		value := ""
		if rect.Annotation != nil {
			value = " (" + rect.Annotation.Text + ")"
		}

		labels = append(labels, rect.AxisLabel.Text+value)
	}

	b.WriteString(lipgloss.NewStyle().Faint(true).Render(strings.Join(labels, "  ")))

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(0, 1).
		Render(b.String())
}
