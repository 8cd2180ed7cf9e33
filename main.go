package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// App holds the command line state shared by every command
type App struct {
	Out  io.Writer
	Conf Config

	configFile string
	ncpus      int
	qsub       string
	dir        string
	dryRun     bool
	debug      bool
}

func NewApp(out io.Writer) *App {
	return &App{Out: out, Conf: DefaultConfig()}
}

// setup loads the config file, if any, and applies flag overrides on
// top of it
func (a *App) setup(cmd *cobra.Command, args []string) error {
	ConfigureLogging(a.debug)
	if a.configFile != "" {
		conf, err := LoadConfig(a.configFile)
		if err != nil {
			return err
		}
		a.Conf = conf
	}
	flags := cmd.Flags()
	if flags.Changed("ncpus") {
		a.Conf.NCPUs = a.ncpus
	}
	if flags.Changed("qsub") {
		a.Conf.Qsub = a.qsub
	}
	if flags.Changed("dir") {
		a.Conf.Dir = a.dir
	}
	qstat := a.Conf.Qstat
	STAT_CMD = func() (string, []string) {
		return qstat, nil
	}
	return nil
}

func (a *App) Submitter() JobSubmitter {
	return JobSubmitter{
		Sched: PBS{
			Cmd:    a.Conf.Qsub,
			Dir:    a.Conf.Dir,
			DryRun: a.dryRun,
		},
		Dir:         a.Conf.Dir,
		CheckScript: a.Conf.CheckScript,
	}
}

// Command builds the command tree. With no subcommand a single job is
// submitted
func (a *App) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "climsub",
		Short: "climsub submits " + SCRIPT + " to a PBS queue",
		Long: fmt.Sprintf(`climsub submits %s with qsub, requesting ncpus cpus and
%d GB of memory per cpu, with job output written to %q.`,
			SCRIPT, MEM_PER_CPU, LOG_PATH),
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.Conf.ValidateSubmit(); err != nil {
				return err
			}
			jobid, err := a.Submitter().Submit(cmd.Context(), a.Conf.NCPUs)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.Out, jobid)
			return nil
		},
	}
	pf := cmd.PersistentFlags()
	pf.StringVarP(&a.configFile, "config", "c", "", "TOML configuration file")
	pf.StringVar(&a.qsub, "qsub", SUBMIT_CMD, "command used to submit jobs")
	pf.StringVar(&a.dir, "dir", "", "directory to submit from")
	pf.BoolVar(&a.dryRun, "dry-run", false, "log the submit command instead of running it")
	pf.BoolVar(&a.debug, "debug", false, "toggle debugging information")
	cmd.Flags().IntVarP(&a.ncpus, "ncpus", "n", NCPUS, "number of cpus to request")

	cmd.AddCommand(
		a.sweepCmd(),
		a.statusCmd(),
		a.reportCmd(),
	)
	return cmd
}

func (a *App) sweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep [flags] [ncpus...]",
		Short: "Submit one job per cpu count",
		Long: `Submit one job per cpu count, in order. Without arguments the
counts are taken from the sweep key of the config file.

Flags must come before the first count. Use -- to end the flags if the
first count starts with a dash.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				cpus, err := toInts(args)
				if err != nil {
					return err
				}
				a.Conf.Sweep = cpus
			}
			if err := a.Conf.ValidateSweep(); err != nil {
				return err
			}
			cpus := a.Conf.Sweep
			jobs, err := Sweep(cmd.Context(), a.Submitter(), cpus)
			for i, jobid := range jobs {
				fmt.Fprintf(a.Out, "%d\t%s\n", cpus[i], jobid)
			}
			return err
		},
	}
	// counts after the first one may be negative
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func (a *App) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status jobid...",
		Short: "Report whether jobs are still in the queue",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.Conf.Qstat == "" {
				return errors.New("qstat must not be empty")
			}
			qstat := make(map[string]bool, len(args))
			for _, jobid := range args {
				qstat[jobid] = true
			}
			if err := Stat(qstat); err != nil {
				return err
			}
			for _, jobid := range args {
				state := "done"
				if qstat[jobid] {
					state = "queued"
				}
				fmt.Fprintf(a.Out, "%s %s\n", jobid, state)
			}
			return nil
		},
	}
}

func (a *App) reportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report timings",
		Short: "Summarize benchmark walltimes by cpu count",
		Long: `Summarize benchmark walltimes by cpu count. The timings file
holds one "ncpus seconds" pair per line.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			timings, err := LoadTimings(args[0])
			if err != nil {
				return errors.Wrap(err, "loading timings")
			}
			return WriteReport(a.Out, Scale(timings))
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	err := NewApp(os.Stdout).Command().ExecuteContext(ctx)
	stop()
	if err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
