package cli

import (
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/randomizedcoder/elimination-pq/internal/bench"
	"github.com/randomizedcoder/elimination-pq/internal/config"
	"github.com/randomizedcoder/elimination-pq/internal/store"
)

func newRunCommand(a *app) *cobra.Command {
	var (
		threads, pushes, pops, runs int
		variants                    string
		keys, format, db            string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a benchmark sweep and print the report",
		Example: "  pqbench run --threads 8 --pushes 10000 --pops 10000 --runs 5\n" +
			"  pqbench run --variants ec,locked --format graph > results.txt",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			f := cmd.Flags()
			if f.Changed("threads") {
				cfg.Threads = threads
			}
			if f.Changed("pushes") {
				cfg.Pushes = pushes
			}
			if f.Changed("pops") {
				cfg.Pops = pops
			}
			if f.Changed("runs") {
				cfg.Runs = runs
			}
			if f.Changed("variants") {
				cfg.Variants = config.SplitList(variants)
			}
			if f.Changed("keys") {
				cfg.Keys = keys
			}
			if f.Changed("format") {
				cfg.Format = format
			}
			if f.Changed("db") {
				cfg.DB = db
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return a.run(cmd, cfg)
		},
	}

	def := config.Default()
	f := cmd.Flags()
	f.IntVarP(&threads, "threads", "t", def.Threads, "largest worker count; every count from 1 up is measured")
	f.IntVar(&pushes, "pushes", def.Pushes, "inserts per worker")
	f.IntVar(&pops, "pops", def.Pops, "retrieves per worker")
	f.IntVarP(&runs, "runs", "r", def.Runs, "repetitions per thread count")
	f.StringVar(&variants, "variants", "", "comma-separated variants to measure (default all: "+strings.Join(bench.Names(), ",")+")")
	f.StringVar(&keys, "keys", def.Keys, "key policy of the ec queue (random, value)")
	f.StringVarP(&format, "format", "f", def.Format, "output format ("+strings.Join(bench.Formats(), ", ")+")")
	f.StringVar(&db, "db", "", "SQLite file to archive the report in")
	return cmd
}

func (a *app) run(cmd *cobra.Command, cfg config.Config) error {
	ctx := commandContext(cmd)

	variants, err := bench.Lookup(cfg.Variants)
	if err != nil {
		return err
	}
	runner, err := bench.NewRunner(cfg.Params(), a.logger)
	if err != nil {
		return err
	}

	a.logger.Info("starting sweep",
		slog.Int("variants", len(variants)),
		slog.Int("threads", cfg.Threads),
		slog.Int("pushes", cfg.Pushes),
		slog.Int("pops", cfg.Pops),
		slog.Int("runs", cfg.Runs),
	)
	rep, err := runner.Run(ctx, variants)
	if err != nil {
		return err
	}

	if err := bench.Write(cmd.OutOrStdout(), rep, cfg.Format); err != nil {
		return err
	}

	if cfg.DB == "" {
		return nil
	}
	s, err := store.Open(cfg.DB)
	if err != nil {
		return err
	}
	defer s.Close()

	id, err := s.Save(ctx, rep)
	if err != nil {
		return err
	}
	a.logger.Info("report archived", slog.String("db", cfg.DB), slog.Int64("sweep", id))
	return nil
}
