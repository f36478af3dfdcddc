package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/n42/gewe-go/internal/config"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

// globals holds state shared by every subcommand.
type globals struct {
	configPath string
	logLevel   string

	cfg *config.Config
	log *slog.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	g := &globals{}

	root := &cobra.Command{
		Use:           "gewe",
		Short:         "Client for the GeWe WeChat automation gateway",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return g.load(cmd.Flags().Changed("config"))
		},
	}

	root.PersistentFlags().StringVar(&g.configPath, "config", "config.yaml", "path to config file")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "override logging.min_level")

	root.AddCommand(
		endpointsCmd(),
		callCmd(g),
		tokenCmd(g),
		loginCmd(g),
		sessionsCmd(g),
		serveCmd(g),
		configCmd(g),
		versionCmd(),
	)
	return root
}

// load reads the config file. A missing default file falls back to built-in
// defaults; a missing file named explicitly is an error.
func (g *globals) load(explicit bool) error {
	cfg, err := config.Load(g.configPath)
	switch {
	case err == nil:
	case !explicit && errors.Is(err, fs.ErrNotExist):
		cfg = config.Default()
	default:
		return err
	}

	if g.logLevel != "" {
		if _, err := config.ParseLevel(g.logLevel); err != nil {
			return fmt.Errorf("--log-level: %w", err)
		}
		cfg.Logging.MinLevel = g.logLevel
	}

	g.cfg = cfg
	g.log = cfg.Logging.NewLogger(os.Stderr)
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "gewe %s (commit: %s, built: %s)\n", version, commit, buildDate)
		},
	}
}

func configCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or generate configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:               "example",
		Short:             "Print an example config file",
		Args:              cobra.NoArgs,
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprint(cmd.OutOrStdout(), config.Example)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Validate the config file and print the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "gateway.base_url: %s\n", g.cfg.Gateway.BaseURL)
			fmt.Fprintf(out, "gateway.app_id:   %s\n", g.cfg.Gateway.AppID)
			fmt.Fprintf(out, "callback:         %s%s\n", g.cfg.Callback.Listen, g.cfg.Callback.Path)
			fmt.Fprintf(out, "database:         %t\n", g.cfg.Database.URI != "")
			fmt.Fprintf(out, "metrics:          %t (%s)\n", g.cfg.Metrics.Enabled, g.cfg.Metrics.Listen)
			return nil
		},
	})
	return cmd
}
