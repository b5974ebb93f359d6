package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/studiowebux/carcli/internal/carapi"
	"github.com/studiowebux/carcli/internal/cli"
	"github.com/studiowebux/carcli/internal/config"
	"github.com/studiowebux/carcli/internal/history"
	"github.com/studiowebux/carcli/internal/keybinds"
	"github.com/studiowebux/carcli/internal/logging"
	"github.com/studiowebux/carcli/internal/mutation"
	"github.com/studiowebux/carcli/internal/tui"
	"github.com/studiowebux/carcli/internal/types"
)

var (
	version = "0.1.0"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Flags shared by every command
var (
	flagConfig string
)

var rootCmd = &cobra.Command{
	Use:   "carcli",
	Short: "Car admin - browse and edit cars over the /car API",
	Long: `carcli is an admin tool for the /car REST API with an interactive TUI.

Run without arguments to start the TUI, or use a subcommand for scripting.
Configuration is read from ~/.carcli/config.yaml, CARCLI__ environment
variables (e.g. CARCLI__API__BASE_URL) and flags, in increasing priority.

Examples:
  carcli                               # Start interactive TUI
  carcli -p staging                    # Use the 'staging' profile
  carcli list --search Ford            # Print matching cars
  carcli list -o json --query "[].id"  # Extract ids with JMESPath
  carcli create -f civic.yaml          # Create a car from a file
  carcli delete abc123 --yes           # Delete without confirmation
  carcli serve --seed cars.yaml        # Run a local /car server`,
	Version:       version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := setup(cmd, true)
		if err != nil {
			return err
		}
		defer app.Close()
		return runTUI(app)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&flagConfig, "config", "c", "", "Config file (default ~/.carcli/config.yaml)")
	flags.StringP("profile", "p", "", "Profile to use")
	flags.String("base-url", "", "API base URL")
	flags.String("timeout", "", "Per request timeout (e.g. 5s)")
	flags.Int("page-size", 0, "Rows per page reported by the server")
	flags.String("log-level", "", "Log level (debug/info/warn/error)")
	flags.String("log-file", "", "Log file path")
	flags.Bool("history", true, "Record mutations in the local activity history")

	rootCmd.AddCommand(listCmd, createCmd, updateCmd, deleteCmd, serveCmd, keybindsCmd)
}

// app holds the collaborators built from configuration
type app struct {
	cfg     *config.Config
	log     *slog.Logger
	client  *carapi.Client
	mutator *mutation.Controller
	history *history.Manager // nil when disabled

	closers []io.Closer
}

// Close releases the history database and log file
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i].Close()
	}
}

// setup loads configuration and wires the API client, logger and history.
// The TUI owns the terminal, so it always logs to a file.
func setup(cmd *cobra.Command, interactive bool) (*app, error) {
	if err := config.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}

	cfg, err := config.Load(flagConfig, cmd.Flags())
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg}

	level := logging.ParseLevel(cfg.Log.Level)
	format := logging.ParseFormat(cfg.Log.Format)
	if interactive || cmd.Flags().Changed("log-file") {
		log, closer, err := logging.OpenFile(cfg.Log.File, level, format)
		if err != nil {
			return nil, err
		}
		a.log = log
		a.closers = append(a.closers, closer)
	} else {
		// stderr stays quiet unless a level was asked for
		if !cmd.Flags().Changed("log-level") {
			level = max(level, logging.LevelWarn)
		}
		a.log = logging.New(logging.Config{Level: level, Format: format})
	}

	a.client = carapi.New(cfg.API.BaseURL, cfg.RequestTimeout(), carapi.WithLogger(a.log))

	opts := []mutation.Option{mutation.WithLogger(a.log), mutation.WithProfile(cfg.Profile)}
	if cfg.History.Enabled {
		mgr, err := history.NewManager(cfg.History.Path)
		if err != nil {
			// History is optional; keep going without it
			a.log.Warn("activity history unavailable", "path", cfg.History.Path, "error", err)
		} else {
			a.history = mgr
			a.closers = append(a.closers, mgr)
			opts = append(opts, mutation.WithRecorder(mgr))
		}
	}
	a.mutator = mutation.New(a.client, opts...)

	a.log.Debug("configuration loaded", "base_url", cfg.API.BaseURL, "profile", cfg.Profile, "history", a.history != nil)
	return a, nil
}

// runTUI starts the interactive TUI
func runTUI(a *app) error {
	registry, err := keybinds.LoadOrDefault(config.KeybindsFile)
	if err != nil {
		return fmt.Errorf("failed to load keybinds: %w", err)
	}

	opts := tui.Options{
		Lister:         a.client,
		Mutator:        a.mutator,
		Keybinds:       registry,
		Logger:         a.log,
		Profile:        a.cfg.Profile,
		PageSize:       a.cfg.API.PageSize,
		RequestTimeout: a.cfg.RequestTimeout(),
		MessageTimeout: a.cfg.MessageTimeout(),
	}
	// A nil *history.Manager must not become a non-nil interface
	if a.history != nil {
		opts.History = a.history
	}
	return tui.Run(opts)
}

// Flags for list
var (
	listPage   int
	listSearch string
	listOutput string
	listQuery  string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print one page of cars",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		return cli.List(cmd.Context(), a.client, cli.ListOptions{
			Page:     listPage,
			Search:   listSearch,
			Output:   listOutput,
			Query:    listQuery,
			PageSize: a.cfg.API.PageSize,
			Out:      cmd.OutOrStdout(),
		})
	},
}

// Flags for create/update
var (
	draftFile   string
	draftOutput string
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a car from a YAML or JSON file",
	Long: `Create a car from a YAML or JSON file.

The file holds the editable fields: make, model, size, style,
transmission_type, price and release_date. The extension is optional.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		return cli.Create(cmd.Context(), a.mutator, draftOptions(cmd))
	},
}

var updateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Replace the editable fields of a car",
	Long: `Replace the editable fields of a car from a YAML or JSON file.

Without an id, pick the car from the first page of results (interactive only).`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		car, err := resolveCar(cmd.Context(), a, args, "Update which car?")
		if err != nil {
			return err
		}
		return cli.Update(cmd.Context(), a.mutator, car.ID, draftOptions(cmd))
	},
}

// Flags for delete
var (
	deleteYes    bool
	deleteSearch string
)

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a car",
	Long: `Delete a car after confirmation.

Without an id, pick the car from the results (interactive only).
Use --yes to skip the confirmation in scripts.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		car, err := resolveCar(cmd.Context(), a, args, "Delete which car?")
		if err != nil {
			return err
		}

		label := car.ID
		if car.Make != "" {
			label = car.Label()
		}
		err = cli.Delete(cmd.Context(), a.mutator, car.ID, cli.DeleteOptions{
			Label:       label,
			Yes:         deleteYes,
			Interactive: cli.IsInteractive(),
			In:          cmd.InOrStdin(),
			Out:         cmd.OutOrStdout(),
		})
		if errors.Is(err, cli.ErrCancelled) {
			fmt.Fprintln(cmd.ErrOrStderr(), "Cancelled")
			return nil
		}
		return err
	},
}

func draftOptions(cmd *cobra.Command) cli.DraftOptions {
	return cli.DraftOptions{
		FilePath: draftFile,
		Output:   draftOutput,
		Out:      cmd.OutOrStdout(),
		ErrOut:   cmd.ErrOrStderr(),
	}
}

// resolveCar returns the car named by args, or lets the user pick one.
// An explicit id is used as is; only the id is known then.
func resolveCar(ctx context.Context, a *app, args []string, title string) (types.CarRecord, error) {
	if len(args) == 1 {
		return types.CarRecord{ID: args[0]}, nil
	}
	if !cli.IsInteractive() {
		return types.CarRecord{}, errors.New("a car id is required when not running in a terminal")
	}

	resp, err := a.client.List(ctx, 1, deleteSearch)
	if err != nil {
		return types.CarRecord{}, fmt.Errorf("failed to load cars: %w", err)
	}
	return cli.SelectCar(title, resp.Cars)
}

func init() {
	listCmd.Flags().IntVar(&listPage, "page", 1, "Page to fetch")
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Filter by make or model")
	listCmd.Flags().StringVarP(&listOutput, "output", "o", cli.OutputTable, "Output format (table/json/yaml/text)")
	listCmd.Flags().StringVarP(&listQuery, "query", "q", "", "JMESPath expression applied to the rows")

	for _, c := range []*cobra.Command{createCmd, updateCmd} {
		c.Flags().StringVarP(&draftFile, "file", "f", "", "YAML or JSON file with the car fields")
		c.Flags().StringVarP(&draftOutput, "output", "o", cli.OutputText, "Output format (json/yaml/text)")
		c.MarkFlagRequired("file")
	}

	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Skip confirmation")
	deleteCmd.Flags().StringVarP(&deleteSearch, "search", "s", "", "Filter the picker by make or model")
	updateCmd.Flags().StringVarP(&deleteSearch, "search", "s", "", "Filter the picker by make or model")
}
