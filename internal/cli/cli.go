// Package cli implements the command-line interface for assoc-bench.
package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eunmann/assoc-bench/internal/logctx"
	"github.com/eunmann/assoc-bench/pkg/benchutil"
	"github.com/eunmann/assoc-bench/pkg/fileutil"
	"github.com/eunmann/assoc-bench/pkg/logging"
	"github.com/eunmann/assoc-bench/pkg/membudget"
	"github.com/eunmann/assoc-bench/pkg/memdiag"
	"github.com/eunmann/assoc-bench/pkg/publish"
	"github.com/eunmann/assoc-bench/pkg/report"
	"github.com/eunmann/assoc-bench/pkg/sweep"
)

// EnvPrefix prefixes every environment override, e.g. ASSOCBENCH_N.
const EnvPrefix = "ASSOCBENCH"

// Run executes the CLI with the given arguments.
func Run(args []string) error {
	return RunWithOutput(args, os.Stdout)
}

// RunWithOutput is like Run but writes reports to out.
func RunWithOutput(args []string, out io.Writer) error {
	if len(args) == 0 {
		return errors.New("usage: assoc-bench <command> [options]\ncommands: run, list, indices")
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := newRootCommand(v, out)
	root.SetArgs(args)
	root.SetOut(out)
	return root.ExecuteContext(context.Background())
}

func newRootCommand(v *viper.Viper, out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "assoc-bench",
		Short:         "Benchmark random point-updates on mutable and persistent vectors",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Bind the executing command's flags only; subcommands share names.
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return fmt.Errorf("bind flags: %w", err)
			}
			if cfgFile := v.GetString("config"); cfgFile != "" {
				v.SetConfigFile(cfgFile)
				if err := v.ReadInConfig(); err != nil {
					return fmt.Errorf("read config %s: %w", cfgFile, err)
				}
			}
			logging.Init(v.GetBool("debug"), v.GetBool("human-logs"))
			logctx.SetDefaultLogger(*logging.L())
			return nil
		},
	}
	root.PersistentFlags().String("config", "", "YAML config file")
	root.PersistentFlags().Bool("debug", false, "enable debug logging")
	root.PersistentFlags().Bool("human-logs", false, "human-friendly log output")

	root.AddCommand(newRunCommand(v, out), newListCommand(v, out), newIndicesCommand(out))
	root.CompletionOptions.DisableDefaultCmd = true
	return root
}

func newRunCommand(v *viper.Viper, out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the update sweep and report timings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadRunConfig(cmd, v)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runSweep(ctx, cfg, out)
		},
	}
	f := cmd.Flags()
	f.StringSlice("n", []string{strconv.Itoa(benchutil.DefaultN)}, "problem sizes to sweep (repeatable or comma-separated)")
	f.String("filter", "", "regexp selecting entries by name")
	f.Bool("experimental", false, "include experimental entries")
	f.Bool("verify", false, "check every entry against the mutable reference before timing")
	f.String("benchtime", "1s", "run time per measurement, or a fixed count like 100x")
	f.String("format", "table", "report format: table or json")
	f.String("parquet", "", "write results to this parquet file")
	f.String("prom", "", "write results to this Prometheus textfile")
	f.String("s3", "", "publish reports to s3://bucket/prefix")
	f.String("mem-budget", "", "memory budget for untimed working copies (e.g. 2GiB); default 25% of RAM")
	f.Int64("seed", benchutil.BenchmarkSeed, "index sequence seed")
	return cmd
}

func newListCommand(v *viper.Viper, out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered entries",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			opts, err := entryOptions(v)
			if err != nil {
				return err
			}
			for _, e := range sweep.Entries(opts) {
				f := e.Family()
				fmt.Fprintf(out, "%-16s persistent=%-5t branching=%-3d limit=%s\n",
					e.Name(), f.Persistent, f.Branching(), formatLimit(f.Limit))
			}
			return nil
		},
	}
	cmd.Flags().String("filter", "", "regexp selecting entries by name")
	cmd.Flags().Bool("experimental", false, "include experimental entries")
	return cmd
}

func newIndicesCommand(out io.Writer) *cobra.Command {
	var seed int64
	cmd := &cobra.Command{
		Use:   "indices <n>",
		Short: "Print the index sequence used at size n",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil || n <= 0 {
				return fmt.Errorf("invalid size %q: must be a positive integer", args[0])
			}
			for _, idx := range benchutil.IndicesWithSeed(n, seed) {
				fmt.Fprintln(out, idx)
			}
			return nil
		},
	}
	cmd.Flags().Int64Var(&seed, "seed", benchutil.BenchmarkSeed, "index sequence seed")
	return cmd
}

func formatLimit(limit int) string {
	if limit == 0 {
		return "none"
	}
	return strconv.Itoa(limit)
}

// runConfig holds the resolved options for one sweep.
type runConfig struct {
	sizes     []int
	entries   sweep.Options
	verify    bool
	benchtime string
	format    string
	parquet   string
	prom      string
	s3URI     string
	budget    *membudget.Budget
	seed      int64
}

func loadRunConfig(cmd *cobra.Command, v *viper.Viper) (runConfig, error) {
	sizes, err := parseSizes(v.GetStringSlice("n"))
	if err != nil {
		return runConfig{}, err
	}
	opts, err := entryOptions(v)
	if err != nil {
		return runConfig{}, err
	}
	// An explicit flag or config value wins; the environment is
	// resolved by determineMemoryBudget so its source is recorded.
	budgetValue := v.GetString("mem-budget")
	if !cmd.Flags().Changed("mem-budget") && os.Getenv(memBudgetEnv) != "" {
		budgetValue = ""
	}
	budget, err := determineMemoryBudget(budgetValue)
	if err != nil {
		return runConfig{}, err
	}

	return runConfig{
		sizes:     sizes,
		entries:   opts,
		verify:    v.GetBool("verify"),
		benchtime: v.GetString("benchtime"),
		format:    v.GetString("format"),
		parquet:   v.GetString("parquet"),
		prom:      v.GetString("prom"),
		s3URI:     v.GetString("s3"),
		budget:    budget,
		seed:      v.GetInt64("seed"),
	}, nil
}

func entryOptions(v *viper.Viper) (sweep.Options, error) {
	opts := sweep.Options{Experimental: v.GetBool("experimental")}
	if pattern := v.GetString("filter"); pattern != "" {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return sweep.Options{}, fmt.Errorf("invalid --filter: %w", err)
		}
		opts.Filter = re
	}
	return opts, nil
}

func parseSizes(raw []string) ([]int, error) {
	var sizes []int
	for _, item := range raw {
		for _, s := range strings.FieldsFunc(item, func(r rune) bool { return r == ',' || r == ' ' }) {
			n, err := strconv.Atoi(strings.ReplaceAll(s, "_", ""))
			if err != nil || n <= 0 {
				return nil, fmt.Errorf("invalid --n %q: must be a positive integer", s)
			}
			sizes = append(sizes, n)
		}
	}
	if len(sizes) == 0 {
		return nil, errors.New("--n requires at least one size")
	}
	return sizes, nil
}

const memBudgetEnv = EnvPrefix + "_MEM_BUDGET"

// determineMemoryBudget resolves the setup memory budget: CLI value, then
// ASSOCBENCH_MEM_BUDGET, then a share of system RAM.
func determineMemoryBudget(cliValue string) (*membudget.Budget, error) {
	if cliValue != "" {
		n, err := membudget.ParseHumanSize(cliValue)
		if err != nil {
			return nil, fmt.Errorf("invalid --mem-budget: %w", err)
		}
		return membudget.New(membudget.Config{TotalBytes: n, Source: membudget.BudgetSourceCLI}), nil
	}

	if env := os.Getenv(memBudgetEnv); env != "" {
		n, err := membudget.ParseHumanSize(env)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", memBudgetEnv, err)
		}
		return membudget.New(membudget.Config{TotalBytes: n, Source: membudget.BudgetSourceEnv}), nil
	}

	return membudget.NewFromSystemRAM(), nil
}

func runSweep(ctx context.Context, cfg runConfig, out io.Writer) error {
	runID := uuid.NewString()
	ctx = logctx.WithRun(ctx, runID)
	log := logctx.FromContext(ctx)

	if err := sweep.SetBenchtime(cfg.benchtime); err != nil {
		return err
	}

	entries := sweep.Entries(cfg.entries)
	if len(entries) == 0 {
		return sweep.ErrNoEntries
	}
	d := sweep.NewDriver(entries, sweep.Config{
		Seed:   cfg.seed,
		Budget: cfg.budget,
		Memory: memdiag.NewTracker(memdiag.DefaultConfig()),
	})

	log.Info().
		Ints("sizes", cfg.sizes).
		Int("entries", len(entries)).
		Str("benchtime", cfg.benchtime).
		Str("mem_budget", membudget.FormatBytes(cfg.budget.Total())).
		Str("mem_budget_source", string(cfg.budget.Source())).
		Msg("starting sweep")

	if cfg.verify {
		for _, n := range cfg.sizes {
			if err := d.Verify(n); err != nil {
				return fmt.Errorf("verify N=%d: %w", n, err)
			}
		}
		log.Info().Msg("all entries match the mutable reference")
	}

	results, err := d.Run(ctx, cfg.sizes)
	if err != nil {
		return fmt.Errorf("sweep: %w", err)
	}

	if err := report.Write(out, cfg.format, results); err != nil {
		return err
	}
	return exportResults(ctx, cfg, runID, entries, results)
}

func exportResults(ctx context.Context, cfg runConfig, runID string, entries []sweep.Entry, results []report.Result) error {
	var artifacts []publish.Artifact

	var js bytes.Buffer
	if err := report.WriteJSON(&js, results); err != nil {
		return err
	}
	artifacts = append(artifacts, publish.Artifact{Name: "results.json", ContentType: "application/json", Data: js.Bytes()})

	if cfg.parquet != "" || cfg.s3URI != "" {
		var pq bytes.Buffer
		if err := report.WriteParquet(&pq, results); err != nil {
			return err
		}
		if cfg.parquet != "" {
			if err := fileutil.WriteFile(cfg.parquet, pq.Bytes()); err != nil {
				return fmt.Errorf("write %s: %w", cfg.parquet, err)
			}
		}
		artifacts = append(artifacts, publish.Artifact{Name: "results.parquet", ContentType: "application/vnd.apache.parquet", Data: pq.Bytes()})
	}

	if cfg.prom != "" {
		if err := report.WritePrometheus(cfg.prom, results); err != nil {
			return err
		}
	}

	if cfg.s3URI == "" {
		return nil
	}
	bucket, prefix, err := publish.ParseURI(cfg.s3URI)
	if err != nil {
		return err
	}
	client, err := publish.NewClient(ctx)
	if err != nil {
		return err
	}

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	_, err = client.Publish(ctx, bucket, prefix, publish.Manifest{
		RunID:     runID,
		CreatedAt: time.Now().UTC(),
		Seed:      cfg.seed,
		Sizes:     cfg.sizes,
		Entries:   names,
	}, artifacts)
	return err
}
