// Package cli wires the pqbench command tree.
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/randomizedcoder/elimination-pq/internal/config"
	"github.com/randomizedcoder/elimination-pq/internal/logging"
)

// app carries state shared by every subcommand: the resolved config and
// the logger built from it.
type app struct {
	configPath string
	cfg        config.Config
	logger     *slog.Logger
}

// NewRoot constructs the pqbench root command and registers its
// subcommands.
func NewRoot() *cobra.Command {
	a := &app{cfg: config.Default()}

	root := &cobra.Command{
		Use:   "pqbench",
		Short: "Benchmark concurrent priority queues",
		Long: "pqbench measures the elimination-and-combining priority queue against\n" +
			"lock-based, optimistic and sequential binary heaps under a mixed\n" +
			"insert/retrieve workload.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "YAML or JSON config file")
	pf.String("log-level", a.cfg.LogLevel, "log level (debug, info, warn, error)")
	pf.String("log-format", a.cfg.LogFormat, "log format (text, json)")

	root.AddCommand(newRunCommand(a))
	root.AddCommand(newVariantsCommand())
	root.AddCommand(newHistoryCommand(a))
	return root
}

// init resolves the config (defaults, file, environment, then persistent
// flags) and builds the logger.
func (a *app) init(cmd *cobra.Command) error {
	cfg := config.Default()
	if a.configPath != "" {
		loaded, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if err := config.ApplyEnv(&cfg); err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-format") {
		cfg.LogFormat, _ = flags.GetString("log-format")
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger, err := logging.New(cmd.ErrOrStderr(), level, cfg.LogFormat)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	a.logger.Debug("config resolved",
		slog.String("config", a.configPath),
		slog.Int("threads", cfg.Threads),
		slog.Int("runs", cfg.Runs),
	)
	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func errorf(format string, args ...any) error {
	return fmt.Errorf("pqbench: "+format, args...)
}
