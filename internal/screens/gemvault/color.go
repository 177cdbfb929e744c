package gemvault

import (
	"image/color"

	"github.com/abhisek/ziggy/internal/gems"
	"github.com/abhisek/ziggy/internal/ui/theme"
)

func kindColor(t gems.GemType) color.Color {
	switch t {
	case gems.GemCorrect:
		return theme.Accent
	case gems.GemEffort:
		return theme.Secondary
	default:
		return theme.Text
	}
}
