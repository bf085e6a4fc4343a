package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// PrimaryGreen is the seed colour of the application
var PrimaryGreen = color.RGBA{R: 46, G: 125, B: 50, A: 255}

// palette holds the colours that differ between light and dark variants
type palette struct {
	light, dark color.Color
}

var themeColors = map[fyne.ThemeColorName]palette{
	theme.ColorNamePrimary:          {PrimaryGreen, PrimaryGreen},
	theme.ColorNameFocus:            {PrimaryGreen, PrimaryGreen},
	theme.ColorNameSuccess:          {color.RGBA{R: 46, G: 160, B: 67, A: 255}, color.RGBA{R: 102, G: 187, B: 106, A: 255}},
	theme.ColorNameError:            {color.RGBA{R: 183, G: 28, B: 28, A: 255}, color.RGBA{R: 229, G: 115, B: 115, A: 255}},
	theme.ColorNameWarning:          {color.RGBA{R: 255, G: 193, B: 7, A: 255}, color.RGBA{R: 255, G: 213, B: 79, A: 255}},
	theme.ColorNameHeaderBackground: {color.RGBA{R: 232, G: 245, B: 233, A: 255}, color.RGBA{R: 38, G: 50, B: 38, A: 255}},
	theme.ColorNameBackground:       {color.RGBA{R: 250, G: 250, B: 250, A: 255}, color.RGBA{R: 18, G: 18, B: 18, A: 255}},
	theme.ColorNameForeground:       {color.RGBA{R: 33, G: 33, B: 33, A: 255}, color.RGBA{R: 255, G: 255, B: 255, A: 255}},
}

// Compact sizes; anything missing comes from the default theme
var themeSizes = map[fyne.ThemeSizeName]float32{
	theme.SizeNamePadding:            3,
	theme.SizeNameInnerPadding:       6,
	theme.SizeNameLineSpacing:        2,
	theme.SizeNameScrollBar:          12,
	theme.SizeNameText:               13,
	theme.SizeNameHeadingText:        17,
	theme.SizeNameSubHeadingText:     14,
	theme.SizeNameCaptionText:        10,
	theme.SizeNameInputRadius:        4,
	theme.SizeNameSelectionRadius:    2,
	theme.SizeNameSeparatorThickness: 1,
}

// CompactTheme is a green theme with reduced padding and font sizes
type CompactTheme struct {
	fallback fyne.Theme
}

// NewCompactTheme creates a new compact theme
func NewCompactTheme() fyne.Theme {
	return &CompactTheme{fallback: theme.DefaultTheme()}
}

// Color returns theme colors
func (t *CompactTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if p, ok := themeColors[name]; ok {
		if variant == theme.VariantDark {
			return p.dark
		}
		return p.light
	}
	return t.fallback.Color(name, variant)
}

// Font returns theme fonts
func (t *CompactTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.fallback.Font(style)
}

// Icon returns theme icons
func (t *CompactTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.fallback.Icon(name)
}

// Size returns theme sizes with compact adjustments
func (t *CompactTheme) Size(name fyne.ThemeSizeName) float32 {
	if size, ok := themeSizes[name]; ok {
		return size
	}
	return t.fallback.Size(name)
}
