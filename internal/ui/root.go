package ui

import (
	"context"
	"errors"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/ytm-offline/internal/config"
	"github.com/ytget/ytm-offline/internal/dialog"
	"github.com/ytget/ytm-offline/internal/logging"
	"github.com/ytget/ytm-offline/internal/model"
	"github.com/ytget/ytm-offline/internal/platform"
	"github.com/ytget/ytm-offline/internal/progress"
	"github.com/ytget/ytm-offline/internal/router"
	"github.com/ytget/ytm-offline/internal/transfer"
)

// Picker asks the user for files
type Picker interface {
	PickFiles(multiple bool, extensions []string, onResult PickResult)
}

// Services are the core components the UI drives
type Services struct {
	Router    *router.Router
	Submitter transfer.Submitter
	Tracker   *progress.Tracker
	Dialogs   *dialog.Controller
	Picker    Picker
	Config    *config.Config
	Logger    *logging.Logger
}

// RootUI represents the main UI structure
type RootUI struct {
	ctx          context.Context
	window       fyne.Window
	services     Services
	localization *Localization
	logger       *logging.Logger

	// touched only on the UI goroutine
	titleLabel *widget.Label
	backBtn    *widget.Button
	stack      []router.View
	upload     *uploadView // upload view on screen, if any
}

// NewRootUI creates the main UI and registers it as the router's renderer.
// Nothing is drawn until the first navigation.
func NewRootUI(ctx context.Context, window fyne.Window, services Services) *RootUI {
	logger := services.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	ui := &RootUI{
		ctx:          ctx,
		window:       window,
		services:     services,
		localization: NewLocalization(),
		logger:       logger.Component("ui"),
	}

	// Set window title
	window.SetTitle(ui.localization.GetText(KeyAppTitle))

	// Progress and results arrive on transfer goroutines
	if services.Tracker != nil {
		services.Tracker.SetUpdateCallback(ui.onProgress)
	}
	if services.Submitter != nil {
		services.Submitter.SetFileResultCallback(ui.onFileResult)
	}

	ui.createMenu()
	services.Router.SetRenderer(ui)

	ui.logger.Debug().Msg("UI setup completed")
	return ui
}

// createMenu creates the application menu from the root template
func (ui *RootUI) createMenu() {
	root, _ := router.Lookup(router.RouteRoot)

	navigate := fyne.NewMenu(ui.localization.GetText(KeyNavigate))
	for _, entry := range root.Menu {
		route := entry.Route // Capture for closure
		navigate.Items = append(navigate.Items, fyne.NewMenuItem(entry.Label, func() {
			ui.services.Router.Navigate(route)
		}))
	}

	openDownloads := fyne.NewMenuItem(ui.localization.GetText(KeyOpenDownloads), ui.onOpenDownloads)
	file := fyne.NewMenu(ui.localization.GetText(KeyFile), openDownloads)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code // Capture for closure
		item := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		item.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, item)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(file, navigate, languageMenu))
}

// onLanguageChange switches language and redraws the current stack
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.createMenu()
	if len(ui.stack) > 0 {
		ui.render(ui.stack)
	}
}

func (ui *RootUI) onOpenDownloads() {
	if ui.services.Config == nil {
		return
	}
	dir := ui.services.Config.UploadsDir()
	if err := platform.OpenDirectory(dir); err != nil {
		ui.logger.Error().Err(err).Str("dir", dir).Msg("failed to open downloads folder")
		ui.services.Dialogs.ShowPersistent(transfer.TitleError, fmt.Sprintf("Could not open %s: %v", dir, err))
	}
}

// RequestRender draws stack on the UI goroutine
func (ui *RootUI) RequestRender(stack []router.View) {
	fyne.Do(func() {
		ui.render(stack)
	})
}

// render replaces the window content with the top view of stack
func (ui *RootUI) render(stack []router.View) {
	if len(stack) == 0 {
		return
	}
	ui.stack = stack
	top := stack[len(stack)-1]

	ui.upload = nil
	body := ui.buildView(top.Template)

	ui.titleLabel = widget.NewLabel(top.Template.Title)
	ui.titleLabel.TextStyle = fyne.TextStyle{Bold: true}

	ui.backBtn = widget.NewButton(IconBack+" "+ui.localization.GetText(KeyBack), ui.onBack)
	ui.backBtn.Importance = widget.LowImportance
	if len(stack) < 2 {
		ui.backBtn.Disable()
	}

	left := container.NewHBox(ui.backBtn)
	logo := canvas.NewImageFromResource(LogoResource())
	logo.SetMinSize(fyne.NewSize(LogoSize, LogoSize))
	logo.FillMode = canvas.ImageFillContain
	left.Add(logo)

	header := container.NewVBox(
		container.NewBorder(nil, nil, left, nil, ui.titleLabel),
		widget.NewSeparator(),
	)

	ui.window.SetContent(container.NewBorder(header, nil, nil, nil, container.NewPadded(body)))
	ui.logger.Debug().Str("route", top.Route.String()).Msg("rendered view")
}

// onBack pops the visible view
func (ui *RootUI) onBack() {
	if err := ui.services.Router.Pop(); err != nil {
		if errors.Is(err, router.ErrRootPop) {
			ui.logger.Debug().Msg("already at root")
			return
		}
		ui.logger.Error().Err(err).Msg("pop failed")
	}
}

// onProgress forwards tracker updates to the visible upload view
func (ui *RootUI) onProgress(u progress.Update) {
	fyne.Do(func() {
		if ui.upload != nil {
			ui.upload.setFraction(u.ID, u.Fraction)
		}
	})
}

// onFileResult forwards per-file outcomes to the visible upload view
func (ui *RootUI) onFileResult(name string, outcome model.Outcome) {
	fyne.Do(func() {
		if ui.upload != nil {
			ui.upload.setOutcome(name, outcome)
		}
	})
}

// Title returns the title of the view on screen
func (ui *RootUI) Title() string {
	if ui.titleLabel == nil {
		return ""
	}
	return ui.titleLabel.Text
}
