package app

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/blackwell-systems/catalogctl/internal/actions"
	"github.com/blackwell-systems/catalogctl/internal/api"
	"github.com/blackwell-systems/catalogctl/internal/config"
	"github.com/blackwell-systems/catalogctl/internal/credentials"
	"github.com/blackwell-systems/catalogctl/internal/logging"
	"github.com/blackwell-systems/catalogctl/internal/notify"
	"github.com/blackwell-systems/catalogctl/internal/session"
	"github.com/blackwell-systems/catalogctl/internal/store"
	"github.com/blackwell-systems/catalogctl/internal/util"
)

var (
	cfg      *config.Config
	creds    *credentials.Store
	client   *api.Client
	st       *store.Store
	handlers *actions.Handlers
	sessCtrl *session.Controller
	notifier *notify.Scheduler
	logger   *zap.Logger

	flagNoColor       bool
	flagNoInteractive bool
	flagDebug         bool
)

var rootCmd = &cobra.Command{
	Use:   "catalogctl",
	Short: "Browse and manage a remote book catalog from the terminal",
	Long: `catalogctl is a terminal client for a remote book-catalog service.

It lists, filters, paginates, creates, edits and deletes book records,
behind a session against the companion user service.

Run 'catalogctl' with no arguments to launch the interactive browser.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if util.ShouldUseTUI(flagNoInteractive) {
			return runHub()
		}
		return cmd.Help()
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagNoInteractive, "no-interactive", false, "Disable interactive TUI mode")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Write diagnostics to the debug log file")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		util.InitColor(flagNoColor)

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		logger, err = logging.New(cfg.Debug.LogPath, flagDebug || cfg.Debug.Enabled)
		if err != nil {
			return fmt.Errorf("opening debug log: %w", err)
		}

		creds, err = credentials.Open(cfg.Defaults.CredentialsPath)
		if err != nil {
			return fmt.Errorf("opening credential store: %w", err)
		}

		client = api.New(cfg.Services.CatalogBase, cfg.Services.UserBase, creds, logger)
		st = store.New()
		handlers = actions.New(st, client)
		sessCtrl = session.New(st, client, creds, logger)
		notifier = notify.NewScheduler(st)
		return nil
	}

	rootCmd.AddCommand(
		newLoginCmd(),
		newLogoutCmd(),
		newSignupCmd(),
		newWhoamiCmd(),
		newListCmd(),
		newGetCmd(),
		newCreateCmd(),
		newEditCmd(),
		newDeleteCmd(),
		newVersionCmd(),
		newCompletionCmd(),
	)
}
