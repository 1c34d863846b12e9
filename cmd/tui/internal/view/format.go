package view

import (
	"context"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/spendview/internal/settings"
)

const storeTimeout = 5 * time.Second

// StoreCtx returns a context with a standard timeout for storage operations.
func StoreCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), storeTimeout)
}

// Palette holds the colors a screen draws with under the active theme.
type Palette struct {
	Accent lipgloss.Color
	Border lipgloss.Color
	Error  lipgloss.Color
	Good   lipgloss.Color
}

func PaletteFor(theme settings.Theme) Palette {
	if theme == settings.ThemeDark {
		return Palette{Accent: "212", Border: "244", Error: "203", Good: "84"}
	}

	return Palette{Accent: "205", Border: "240", Error: "196", Good: "46"}
}

func errorText(p Palette, msg string) string {
	return lipgloss.NewStyle().Foreground(p.Error).Render(msg)
}
