package cli

import (
	"context"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/ytget/ytm-offline/internal/assets"
	"github.com/ytget/ytm-offline/internal/router"
	"github.com/ytget/ytm-offline/internal/ui"
)

// AppID identifies the fyne application
const AppID = "com.ytget.ytm-offline"

// runGUI opens the main window and blocks until it is closed
func runGUI(ctx context.Context, st *state) error {
	logger := st.logger
	logger.Info().Str("version", st.version).Msg("ytm-offline starting")

	// Downloaded artifacts are opened through the local assets server
	server := assets.NewServer(st.cfg.Self.Address(), st.cfg.Assets.Dir, logger.Component("assets"))
	if _, err := server.Start(); err != nil {
		return fmt.Errorf("failed to start assets server: %w", err)
	}
	defer func() {
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error().Err(err).Msg("assets server shutdown failed")
		}
	}()

	myApp := app.NewWithID(AppID)
	myApp.SetIcon(ui.LogoResource())
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	myWindow := myApp.NewWindow(ui.NewLocalization().GetText(ui.KeyAppTitle))
	myWindow.Resize(fyne.NewSize(ui.WindowWidth, ui.WindowHeight))

	presenter := ui.NewDialogPresenter(myWindow)
	c := newCore(st, presenter, ui.NewAppLauncher(myApp))
	presenter.SetResponder(c.dialogs)
	defer c.dialogs.Close()

	r := router.New(nil, logger.Component("router"))
	ui.NewRootUI(ctx, myWindow, ui.Services{
		Router:    r,
		Submitter: c.orch,
		Tracker:   c.tracker,
		Dialogs:   c.dialogs,
		Picker:    ui.NewFilePicker(myWindow),
		Config:    st.cfg,
		Logger:    logger,
	})
	r.Navigate(router.RouteRoot)

	// Close the window on interrupt
	go func() {
		<-ctx.Done()
		fyne.Do(myApp.Quit)
	}()

	myWindow.ShowAndRun()
	return nil
}
