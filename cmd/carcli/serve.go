package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/studiowebux/carcli/internal/config"
	"github.com/studiowebux/carcli/internal/devserver"
	"github.com/studiowebux/carcli/internal/keybinds"
	"github.com/studiowebux/carcli/internal/logging"
	"golang.org/x/sync/errgroup"
)

// Flags for serve
var (
	serveAddr     string
	serveSeed     string
	servePageSize int
	serveLatency  time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run an in-memory /car API for local development",
	Long: `Run an in-memory /car API for local development.

Cars are loaded from --seed (YAML or JSON, {cars: [...]}) or a built-in
inventory. Data is lost when the server stops.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logging.New(logging.Config{
			Level:  logging.ParseLevel(cmd.Flag("log-level").Value.String()),
			Format: logging.FormatText,
			Output: cmd.ErrOrStderr(),
		})

		seed := devserver.DefaultSeed()
		if serveSeed != "" {
			cars, err := devserver.LoadSeed(serveSeed)
			if err != nil {
				return err
			}
			seed = cars
		}

		store := devserver.NewStore(servePageSize, seed)
		srv := devserver.NewServer(devserver.Config{Addr: serveAddr, Latency: serveLatency}, store, log)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		g, ctx := errgroup.WithContext(ctx)
		g.Go(srv.ListenAndServe)
		g.Go(func() error {
			<-ctx.Done()
			log.Info("shutting down dev server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})

		return g.Wait()
	},
}

var keybindsCmd = &cobra.Command{
	Use:   "keybinds",
	Short: "Manage TUI keybindings",
}

var keybindsCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the keybindings file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		cfg, err := keybinds.LoadConfig(config.KeybindsFile)
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(cmd.OutOrStdout(), "No keybindings file at %s, using defaults\n", config.KeybindsFile)
			return nil
		}
		if err != nil {
			return err
		}

		result := keybinds.NewValidator().ValidateConfig(cfg)
		fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(result.String(), "\n"))
		if result.HasErrors() {
			return fmt.Errorf("%s has %d invalid bindings", config.KeybindsFile, len(result.Errors))
		}
		return nil
	},
}

var keybindsInitForce bool

var keybindsInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default keybindings to the keybindings file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}
		if _, err := os.Stat(config.KeybindsFile); err == nil && !keybindsInitForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", config.KeybindsFile)
		}
		if err := keybinds.CreateExampleConfig(config.KeybindsFile); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", config.KeybindsFile)
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")
	serveCmd.Flags().StringVar(&serveSeed, "seed", "", "YAML or JSON file with the initial cars")
	serveCmd.Flags().IntVar(&servePageSize, "page-size", config.DefaultPageSize, "Cars per page")
	serveCmd.Flags().DurationVar(&serveLatency, "latency", 0, "Artificial delay per response (e.g. 300ms)")

	keybindsInitCmd.Flags().BoolVar(&keybindsInitForce, "force", false, "Overwrite an existing file")
	keybindsCmd.AddCommand(keybindsCheckCmd, keybindsInitCmd)
}
