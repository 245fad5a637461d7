// Package cmd provides the CLI commands.
package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"oops/internal/config"
	"oops/internal/logger"
	"oops/internal/metrics"
	"oops/internal/shell"
)

var (
	// Version is set during build via ldflags.
	Version = "dev"

	cfgFile string
	debug   bool

	rootCmd = &cobra.Command{
		Use:   "oops",
		Short: "Fix your previous console command",
		Long: `oops corrects failed console commands. Hook it into your shell with
'oops alias' and type "oops" after a command fails, or feed a command
directly with 'oops fix'.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initialize()
		},
	}
)

// Execute runs the root command with signal-aware cancellation. It is called
// by main.main() once.
func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	rootCmd.SetContext(ctx)

	if err := rootCmd.Execute(); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(exitCode(err))
	}
}

func init() {
	// Accept snake_case flag spellings, the config file uses them.
	rootCmd.PersistentFlags().SetNormalizeFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.config/oops/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.Version = Version
}

func initialize() error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	logCfg := logger.DefaultConfig()
	if cfg.Logging.Level != "" {
		logCfg.Level = cfg.Logging.Level
	}
	if cfg.Logging.File != "" {
		logCfg.File = cfg.Logging.File
	}
	if debug || cfg.App.Debug {
		logCfg.Level = "debug"
	}
	if err := logger.Initialize(logCfg); err != nil {
		return err
	}

	metrics.Initialize(Version)
	return nil
}

// exitCode maps an error to the process exit status. A corrected command
// that itself failed propagates its exit code, everything else is 1.
func exitCode(err error) int {
	var exitErr *shell.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}
