package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bingo-editor/internal/config"
	"bingo-editor/internal/format"
	"bingo-editor/internal/loader"
	"bingo-editor/internal/logging"
	"bingo-editor/internal/model"
	"bingo-editor/internal/store"
	"bingo-editor/internal/tui"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type App struct {
	Source      string
	Format      string
	Pretty      bool
	LogLevel    string
	LogFile     string
	LogEncoding string
	HTTPTimeout time.Duration
	StateDir    string

	log       *zap.Logger
	sessionID string
}

func NewRootCmd() *cobra.Command {
	// Env errors surface in PersistentPreRunE; flags still get defaults.
	cfg, cfgErr := config.Load()
	if cfgErr != nil {
		cfg = config.Config{
			Source:      config.DefaultSource,
			Format:      format.JSON,
			LogLevel:    "info",
			LogEncoding: "console",
			HTTPTimeout: 15 * time.Second,
		}
	}
	app := &App{
		LogEncoding: cfg.LogEncoding,
		HTTPTimeout: cfg.HTTPTimeout,
		log:         zap.NewNop(),
	}

	cmd := &cobra.Command{
		Use:          "bingo",
		Short:        "Terminal editor for bingo event documents",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Edit the document interactively
  bingo --source mock_data.json

  # Print the validated document
  bingo show --format yaml

  # Check a remote document against the schema
  bingo validate --source https://example.com/event.json
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, app)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if cfgErr != nil {
			return writeErr(cmd, cfgErr)
		}
		// The TUI owns the terminal, so it only logs to a file.
		newLogger := logging.New
		if cmd == cmd.Root() {
			newLogger = logging.NewForTUI
		}
		log, err := newLogger(logging.Config{
			Level:      app.LogLevel,
			Encoding:   app.LogEncoding,
			OutputPath: app.LogFile,
		})
		if err != nil {
			return writeErr(cmd, err)
		}
		app.sessionID = uuid.NewString()
		app.log = log.With(zap.String("session_id", app.sessionID), zap.String("command", cmd.Name()))
		app.log.Debug("session started", zap.String("source", app.Source))
		return nil
	}

	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		_ = app.log.Sync()
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.Source, "source", cfg.Source, "Document source: file path (.json/.yaml), http(s) URL, or sqlite://<db>?name=<doc>")
	cmd.PersistentFlags().StringVar(&app.Format, "format", cfg.Format, "Output format (json|edn|yaml; show also accepts markdown)")
	cmd.PersistentFlags().BoolVar(&app.Pretty, "pretty", false, "Pretty-print output")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", cfg.LogLevel, "Log level (debug|info|warn|error)")
	cmd.PersistentFlags().StringVar(&app.LogFile, "log-file", cfg.LogFile, "Write logs to this file (the editor logs nowhere without it)")
	cmd.Flags().StringVar(&app.StateDir, "state-dir", store.DefaultTUIStateDir(), "Directory for editor display state (empty disables)")

	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newValidateCmd(app))
	cmd.AddCommand(newPublishCmd(app))

	return cmd
}

func runTUI(cmd *cobra.Command, app *App) error {
	src, err := loader.NewSource(app.Source, app.HTTPTimeout)
	if err != nil {
		return writeErr(cmd, err)
	}
	st := store.New(loader.New(src, app.log), app.log)
	return tui.Run(cmd.Context(), st, tui.Options{
		Source:   src.String(),
		StateDir: app.StateDir,
		Logger:   app.log,
	})
}

// loadDocument fetches and validates the document once.
func loadDocument(ctx context.Context, app *App) (model.Document, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	src, err := loader.NewSource(app.Source, app.HTTPTimeout)
	if err != nil {
		return model.Document{}, err
	}
	return loader.New(src, app.log).Load(ctx)
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.Pretty)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
