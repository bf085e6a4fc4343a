package ui

import (
	"fmt"
	"net/url"

	"fyne.io/fyne/v2"
)

// AppLauncher opens URLs through the fyne app
type AppLauncher struct {
	app fyne.App
}

// NewAppLauncher creates a launcher for app
func NewAppLauncher(app fyne.App) *AppLauncher {
	return &AppLauncher{app: app}
}

// Launch opens rawURL with the system handler
func (l *AppLauncher) Launch(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid url %q: %w", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL must start with http:// or https://")
	}
	return l.app.OpenURL(u)
}
