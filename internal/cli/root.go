// Package cli provides the command-line interface for ytm-offline.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ytget/ytm-offline/internal/config"
	"github.com/ytget/ytm-offline/internal/dialog"
	"github.com/ytget/ytm-offline/internal/logging"
	"github.com/ytget/ytm-offline/internal/progress"
	"github.com/ytget/ytm-offline/internal/transfer"
	"github.com/ytget/ytm-offline/internal/transport"
)

// Flag names bound onto config keys
const (
	flagConfig      = "config"
	flagBackendHost = "backend-host"
	flagBackendPort = "backend-port"
	flagVerbose     = "verbose"
)

// state is what every command shares after flags are parsed
type state struct {
	version    string
	configFile string
	verbose    bool

	cfg    *config.Config
	logger *logging.Logger
}

// Execute runs the root command with signal-aware context
func Execute(version string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return NewRootCmd(version).ExecuteContext(ctx)
}

// NewRootCmd creates the root command. Without a subcommand it opens the GUI.
func NewRootCmd(version string) *cobra.Command {
	st := &state{version: version}

	rootCmd := &cobra.Command{
		Use:   "ytm-offline",
		Short: "ytm-offline - send media links and files to a ytm backend",
		Long: `ytm-offline ` + version + `
Client for a ytm backend: submit song and playlist URLs, fetch the
backend's artifacts and stream local audio files to it.

GUI Mode (default):
  Window with one view per route and per-file upload progress.

CLI Mode (submit, upload):
  The same transfers headless, with dialogs printed to the console.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return st.load(cmd.Root())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(cmd.Context(), st)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&st.configFile, flagConfig, "c", "", "Configuration file path")
	flags.String(flagBackendHost, config.DefaultBackendHost, "Backend host")
	flags.Int(flagBackendPort, config.DefaultBackendPort, "Backend port")
	flags.BoolVarP(&st.verbose, flagVerbose, "v", false, "Verbose output (shows debug messages)")

	rootCmd.AddCommand(newSubmitCmd(st))
	rootCmd.AddCommand(newUploadCmd(st))
	rootCmd.AddCommand(newServeCmd(st))

	return rootCmd
}

// load reads configuration with the root command's flags layered on top
func (st *state) load(root *cobra.Command) error {
	loader := config.NewLoader(st.configFile)
	flags := root.PersistentFlags()
	if err := loader.BindFlag(config.KeyBackendHost, flags.Lookup(flagBackendHost)); err != nil {
		return err
	}
	if err := loader.BindFlag(config.KeyBackendPort, flags.Lookup(flagBackendPort)); err != nil {
		return err
	}

	cfg, err := loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if st.verbose {
		cfg.Logging.Level = "debug"
	}

	st.cfg = cfg
	st.logger = logging.New(cfg.Logging.Level, root.ErrOrStderr())
	st.logger.Debug().
		Str("backend", cfg.BackendURL()).
		Str("assets", cfg.Assets.Dir).
		Msg("configuration loaded")
	return nil
}

// core holds the components shared by the GUI and the headless commands
type core struct {
	dialogs *dialog.Controller
	tracker *progress.Tracker
	orch    *transfer.Orchestrator
	store   *transfer.DirStore
}

func newCore(st *state, presenter dialog.Presenter, launcher transfer.Launcher) *core {
	cfg := st.cfg
	client := transport.NewClient(cfg.BackendURL(), nil, st.logger.Component("transport"))

	c := &core{
		dialogs: dialog.NewController(presenter),
		tracker: progress.NewTracker(),
		store:   transfer.NewDirStore(cfg.UploadsDir(), cfg.SelfURL()),
	}
	c.orch = transfer.NewOrchestrator(transfer.Dependencies{
		Poster:       client,
		Tracker:      c.tracker,
		Dialogs:      c.dialogs,
		Destinations: transport.NewBackendDestinations(client),
		Launcher:     launcher,
		Artifacts:    c.store,
	}, transfer.Options{
		SuccessDelay:   cfg.Dialog.SuccessDelay,
		DestinationTTL: cfg.Upload.DestinationTTL,
		ConfirmLaunch:  cfg.Dialog.ConfirmLaunch,
		Development:    cfg.Development,
	}, st.logger.Component("transfer"))
	return c
}
