package ui

import (
	_ "embed"

	"fyne.io/fyne/v2"
)

// AppIcon is the name of the embedded logo
const AppIcon = "ytm-offline.png"

//go:embed ytm-offline.png
var logoPNG []byte

// LogoResource returns the embedded application logo
func LogoResource() fyne.Resource {
	return fyne.NewStaticResource(AppIcon, logoPNG)
}
