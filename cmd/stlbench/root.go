package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// options holds the global flags.
type options struct {
	verbose bool
	quiet   bool
	config  string
	limit   int
	n       int
	seed    uint64
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	log := logrus.New()
	log.SetOutput(os.Stderr)

	root := &cobra.Command{
		Use:   "stlbench",
		Short: "Exercise and verify the stl containers",
		Long: `stlbench runs named workloads over the vector, deque and list containers,
verifies each resulting sequence against a plain slice and reports how long
the run took and how much memory the containers drew.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetOutput(cmd.ErrOrStderr())
			switch {
			case opts.quiet:
				log.SetLevel(logrus.WarnLevel)
			case opts.verbose:
				log.SetLevel(logrus.DebugLevel)
			default:
				log.SetLevel(logrus.InfoLevel)
			}
		},
	}

	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log every allocation")
	root.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "Only log warnings and errors")

	root.AddCommand(newRunCmd(opts, log), newListCmd())
	return root
}

func execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
