package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"github.com/piwi3910/CabinetCut/internal/render"
	"github.com/piwi3910/CabinetCut/internal/ui/widgets"
)

// CabinetCutTheme is the default Fyne theme with compact sizing and the
// banding blue as primary color, so the window matches the diagrams.
type CabinetCutTheme struct {
	fyne.Theme
	primary color.Color
}

func NewCabinetCutTheme() *CabinetCutTheme {
	return &CabinetCutTheme{
		Theme:   theme.DefaultTheme(),
		primary: widgets.HexColor(render.BandingColor),
	}
}

func (t *CabinetCutTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if name == theme.ColorNamePrimary {
		return t.primary
	}
	return t.Theme.Color(name, variant)
}

func (t *CabinetCutTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 12
	case theme.SizeNameCaptionText:
		return 10
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	default:
		return t.Theme.Size(name)
	}
}
