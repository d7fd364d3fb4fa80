package main

import (
	"math/rand/v2"
	"slices"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/lucasgdosr/stl/memory"
)

func newRunCmd(opts *options, log *logrus.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [workload...]",
		Short: "Run workloads and verify the results",
		Long: `The run command executes the named workloads, or all of them, once per
container. Each run is checked against a slice model and must give back every
byte it allocated.

Example:
  stlbench run
  stlbench run insert-middle erase-middle --n 50000
  stlbench run push-back --limit 4096
  stlbench run --config workloads.toml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorkloads(cmd, opts, log, args)
		},
	}
	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "TOML workload file")
	cmd.Flags().IntVar(&opts.limit, "limit", 0, "Cap each run's memory at this many bytes (0 for no cap)")
	cmd.Flags().IntVar(&opts.n, "n", 10000, "Elements per workload")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 1, "Random seed")
	return cmd
}

// outcome is the measurement of one workload over one container.
type outcome struct {
	ops     int
	elapsed time.Duration
	stats   memory.Stats
	err     error
}

func runWorkloads(cmd *cobra.Command, opts *options, log *logrus.Logger, names []string) error {
	cfg, err := loadConfig(opts.config)
	if err != nil {
		return err
	}
	selected := workloads
	if len(names) > 0 {
		selected = nil
		for _, name := range names {
			w, ok := lookup(name)
			if !ok {
				return errors.Newf("unknown workload %q (see stlbench list)", name)
			}
			selected = append(selected, w)
		}
	}

	base := settings{N: opts.n, Seed: opts.seed}
	p := message.NewPrinter(language.English)
	out := cmd.OutOrStdout()
	total, failed := 0, 0
	for _, w := range selected {
		s := cfg.resolve(w, base)
		if cmd.Flags().Changed("n") {
			s.N = opts.n
		}
		if cmd.Flags().Changed("seed") {
			s.Seed = opts.seed
		}
		for i, kind := range s.Containers {
			if !slices.Contains(w.containers, kind) {
				return errors.Newf("workload %s does not support container %q", w.name, kind)
			}
			entry := log.WithFields(logrus.Fields{"workload": w.name, "container": kind})
			res := newResource(opts, entry)
			e := &env{
				kind:  kind,
				n:     s.N,
				rng:   rand.New(rand.NewPCG(s.Seed, uint64(i))),
				alloc: memory.New[int](res),
			}
			o := measure(w, e, res)
			total++
			status := "ok"
			if o.err != nil {
				failed++
				status = "FAIL"
				entry.WithError(o.err).Error("workload failed")
			}
			p.Fprintf(out, "%-14s %-7s %-4s %12d ops %12v  peak %d B  allocs %d\n",
				w.name, kind, status, o.ops, o.elapsed.Round(time.Microsecond), o.stats.Peak, o.stats.Allocs)
		}
	}
	if failed > 0 {
		return errors.Newf("%d of %d runs failed", failed, total)
	}
	return nil
}

// newResource returns the memory resource for one run.
func newResource(opts *options, log logrus.FieldLogger) memory.Resource {
	var r memory.Resource = memory.NewHeap()
	if opts.limit > 0 {
		r = memory.NewLimited(opts.limit)
	}
	if opts.verbose {
		r = memory.WithLogging(r, log)
	}
	return r
}

// measure runs w in e, releases everything it built and checks that no
// bytes are left in use.
func measure(w *workload, e *env, res memory.Resource) outcome {
	start := time.Now()
	ops, err := w.run(e)
	elapsed := time.Since(start)
	e.release()

	var stats memory.Stats
	if sr, ok := res.(memory.StatsReporter); ok {
		stats = sr.Stats()
	}
	if err == nil && stats.InUse != 0 {
		err = errors.Newf("%d bytes still in use after release", stats.InUse)
	}
	return outcome{ops: ops, elapsed: elapsed, stats: stats, err: err}
}
