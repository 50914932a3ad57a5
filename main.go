package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/crillab/reductions/backend"
	"github.com/crillab/reductions/bruteforce"
	"github.com/crillab/reductions/circuit"
	"github.com/crillab/reductions/config"
	"github.com/crillab/reductions/ilp"
	"github.com/crillab/reductions/instance"
	"github.com/crillab/reductions/problem"
	"github.com/crillab/reductions/reduction"
	"github.com/crillab/reductions/rules"
	"github.com/crillab/reductions/sat"
	"github.com/crillab/reductions/settings"
)

var (
	flags   *settings.Flags
	cfg     *settings.Settings
	logger  *zap.Logger
	timeout time.Duration
	toKind  string
	minimal bool
)

var rootCmd = &cobra.Command{
	Use:   "reductions",
	Short: "Reduce problem instances to one another and solve them",
	Long: `reductions converts instances between problem families (SAT, K-SAT, circuits, factoring,
integer programs, QUBO, spin glasses, max-cut, independent sets, vertex covers, colorings)
and solves them exactly.

Instances are read from YAML documents (.yaml, .yml), DIMACS CNF files (.cnf, .wcnf)
or circuit files (.circ, one assignment per line).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = flags.Settings(); err != nil {
			return err
		}
		logConfig := zap.NewProductionConfig()
		if cfg.Verbose {
			logConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		if logger, err = logConfig.Build(); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered reductions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, e := range rules.NewRegistry().Entries() {
			fmt.Fprintln(cmd.OutOrStdout(), e)
		}
		return nil
	},
}

var pathCmd = &cobra.Command{
	Use:   "path SRC DST",
	Short: "Print the shortest chain of reductions between two problem families",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := problem.ParseKind(args[0])
		if err != nil {
			return err
		}
		dst, err := problem.ParseKind(args[1])
		if err != nil {
			return err
		}
		path, err := rules.NewRegistry().Path(src, dst)
		if err != nil {
			return err
		}
		for _, e := range path {
			fmt.Fprintln(cmd.OutOrStdout(), e)
		}
		return nil
	},
}

var reduceCmd = &cobra.Command{
	Use:   "reduce FILE",
	Short: "Reduce an instance and print the resulting instance document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dst, err := problem.ParseKind(toKind)
		if err != nil {
			return err
		}
		inst, err := parse(args[0])
		if err != nil {
			return err
		}
		chain, err := reduceTo(inst, dst)
		if err != nil {
			return err
		}
		return instance.Encode(cmd.OutOrStdout(), chain.Target())
	},
}

var solveCmd = &cobra.Command{
	Use:   "solve FILE",
	Short: "Solve an instance with the configured backend",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inst, err := parse(args[0])
		if err != nil {
			return err
		}
		ctx, cancel := solveContext()
		defer cancel()
		logger.Info("solving", zap.String("file", args[0]), zap.String("kind", kindOf(inst).String()), zap.String("backend", cfg.Backend))
		var (
			c  config.Config
			ok bool
		)
		switch cfg.Backend {
		case "gophersat":
			c, ok, err = solveGophersat(ctx, inst)
		case "gini":
			c, ok, err = solveGini(ctx, inst)
		default:
			return solveBruteForce(cmd.OutOrStdout(), inst)
		}
		if err != nil {
			return err
		}
		if ok {
			// Optimization targets always have an optimum, which extracts to an infeasible
			// configuration when the instance has none.
			if ok, err = feasible(inst, c); err != nil {
				return err
			}
		}
		return output(cmd.OutOrStdout(), inst, c, ok)
	},
}

var coreCmd = &cobra.Command{
	Use:   "core FILE",
	Short: "Print an unsatisfiable subset of the clauses of a CNF formula",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inst, err := parse(args[0])
		if err != nil {
			return err
		}
		s, err := formula(inst)
		if err != nil {
			return err
		}
		ctx, cancel := solveContext()
		defer cancel()
		solver := backend.NewGini(backend.WithLogger(logger))
		var core []int
		if minimal {
			core, err = solver.MUS(ctx, s)
		} else {
			core, err = solver.Core(ctx, s)
		}
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "c %d/%d clauses in core\n", len(core), s.NbClauses())
		for _, i := range core {
			fmt.Fprintf(w, "%d: %v\n", i, s.Clause(i))
		}
		return nil
	},
}

var maxsatCmd = &cobra.Command{
	Use:   "maxsat FILE",
	Short: "Minimize the total weight of falsified clauses of a weighted CNF formula",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inst, err := parse(args[0])
		if err != nil {
			return err
		}
		s, err := formula(inst)
		if err != nil {
			return err
		}
		ctx, cancel := solveContext()
		defer cancel()
		c, cost, err := backend.NewGophersat(backend.WithLogger(logger)).SolveMaxSAT(ctx, s)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "o %d\n", cost)
		fmt.Fprintf(w, "v %v\n", c)
		return nil
	},
}

func init() {
	flags = settings.BindFlags(rootCmd.PersistentFlags())
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "give up solving after this duration (0 means no limit)")
	reduceCmd.Flags().StringVar(&toKind, "to", "", "target problem family")
	_ = reduceCmd.MarkFlagRequired("to")
	coreCmd.Flags().BoolVar(&minimal, "minimal", false, "shrink the core until every clause in it is needed")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(pathCmd)
	rootCmd.AddCommand(reduceCmd)
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(coreCmd)
	rootCmd.AddCommand(maxsatCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func solveContext() (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	if timeout <= 0 {
		return ctx, stop
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	return ctx, func() {
		cancel()
		stop()
	}
}

func parse(path string) (any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %q: %w", path, err)
	}
	defer f.Close()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".cnf", ".wcnf":
		s, err := sat.ParseDIMACS(f)
		if err != nil {
			return nil, errors.Wrapf(err, "could not parse DIMACS file %q", path)
		}
		return s, nil
	case ".circ":
		c, err := circuit.ParseCircuit(f)
		if err != nil {
			return nil, errors.Wrapf(err, "could not parse circuit file %q", path)
		}
		return circuit.New(c)
	case ".yaml", ".yml":
		return instance.Decode(f)
	}
	return nil, fmt.Errorf("invalid file format for %q", path)
}

func kindOf(inst any) problem.Kind {
	return inst.(interface{ Kind() problem.Kind }).Kind()
}

func reduceTo(inst any, dst problem.Kind) (*reduction.Chain, error) {
	path, err := rules.NewRegistry().Path(kindOf(inst), dst)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(path))
	for i, e := range path {
		names[i] = e.Name
	}
	logger.Debug("reducing", zap.Stringer("from", kindOf(inst)), zap.Stringer("to", dst), zap.Strings("path", names))
	return reduction.Apply(path, inst)
}

// formula returns inst as a plain CNF formula, reducing it if needed.
func formula(inst any) (*sat.Satisfiability, error) {
	chain, err := reduceTo(inst, problem.Satisfiability)
	if err != nil {
		return nil, err
	}
	return chain.Target().(*sat.Satisfiability), nil
}

// solveGophersat solves CNF formulas and circuits as SAT problems, and everything else through an
// integer program.
func solveGophersat(ctx context.Context, inst any) (config.Config, bool, error) {
	solver := backend.NewGophersat(backend.WithLogger(logger))
	switch p := inst.(type) {
	case *sat.Satisfiability:
		return solver.SolveSAT(ctx, p)
	case *sat.KSatisfiability:
		return solver.SolveSAT(ctx, &p.Satisfiability)
	case *circuit.CircuitSAT:
		chain, err := reduceTo(inst, problem.Satisfiability)
		if err != nil {
			return nil, false, err
		}
		c, ok, err := solver.SolveSAT(ctx, chain.Target().(*sat.Satisfiability))
		if err != nil || !ok {
			return nil, ok, err
		}
		return chain.ExtractSolution(c), true, nil
	}
	chain, err := reduceTo(inst, problem.ILP)
	if err != nil {
		return nil, false, err
	}
	c, ok, err := solver.SolveILP(ctx, chain.Target().(*ilp.ILP))
	if err != nil || !ok {
		return nil, ok, err
	}
	return chain.ExtractSolution(c), true, nil
}

func solveGini(ctx context.Context, inst any) (config.Config, bool, error) {
	chain, err := reduceTo(inst, problem.Satisfiability)
	if err != nil {
		return nil, false, err
	}
	c, ok, err := backend.NewGini(backend.WithLogger(logger)).SolveSAT(ctx, chain.Target().(*sat.Satisfiability))
	if err != nil || !ok {
		return nil, ok, err
	}
	return chain.ExtractSolution(c), true, nil
}

func solveBruteForce(w io.Writer, inst any) error {
	opts := cfg.BruteForceOptions(logger)
	var (
		best []config.Config
		ok   bool
	)
	switch p := inst.(type) {
	case problem.Instance[int]:
		best, _, ok = bruteforce.New[int](opts...).FindBestWithEvaluation(p)
	case problem.Instance[int64]:
		best, _, ok = bruteforce.New[int64](opts...).FindBestWithEvaluation(p)
	case problem.Instance[float64]:
		best, _, ok = bruteforce.New[float64](opts...).FindBestWithEvaluation(p)
	default:
		return fmt.Errorf("cannot enumerate configurations of %T", inst)
	}
	if !ok {
		return output(w, inst, nil, false)
	}
	fmt.Fprintf(w, "c %d optimal configurations\n", len(best))
	for _, c := range best {
		if err := output(w, inst, c, true); err != nil {
			return err
		}
	}
	return nil
}

func evaluate(inst any, c config.Config) (string, error) {
	switch p := inst.(type) {
	case problem.Instance[int]:
		return p.Evaluate(c).String(), nil
	case problem.Instance[int64]:
		return p.Evaluate(c).String(), nil
	case problem.Instance[float64]:
		return p.Evaluate(c).String(), nil
	}
	return "", fmt.Errorf("cannot evaluate configurations of %T", inst)
}

func feasible(inst any, c config.Config) (bool, error) {
	switch p := inst.(type) {
	case problem.Instance[int]:
		return p.Evaluate(c).Feasible, nil
	case problem.Instance[int64]:
		return p.Evaluate(c).Feasible, nil
	case problem.Instance[float64]:
		return p.Evaluate(c).Feasible, nil
	}
	return false, fmt.Errorf("cannot evaluate configurations of %T", inst)
}

func output(w io.Writer, inst any, c config.Config, ok bool) error {
	if !ok {
		fmt.Fprintln(w, "s UNSATISFIABLE")
		return nil
	}
	eval, err := evaluate(inst, c)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "s OPTIMUM FOUND")
	fmt.Fprintf(w, "v %v\n", c)
	fmt.Fprintf(w, "c %s\n", eval)
	return nil
}
