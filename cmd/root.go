package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/schedsim/sim"
	"github.com/inference-sim/schedsim/sim/report"
	"github.com/inference-sim/schedsim/sim/trace"
	"github.com/inference-sim/schedsim/sim/workload"
)

var (
	logLevel string // Log verbosity level

	// CLI flags for a single run
	showGantt  bool   // Render an ASCII Gantt chart after the run
	ganttWidth int    // Gantt chart width in columns
	traceLevel string // Decision trace level
	jsonPath   string // Write the run as JSON to this path
	reportPath string // Write the default comparison report to this path
	maxEvents  int    // Timeline capacity (0 = unbounded)
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "schedsim",
	Short: "Deterministic CPU scheduling simulator",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// runConfig collects the flags of the run command.
type runConfig struct {
	Gantt      bool
	GanttWidth int
	TraceLevel trace.TraceLevel
	JSONPath   string
	ReportPath string
	MaxEvents  int
}

// runCmd runs one policy over a workload file
var runCmd = &cobra.Command{
	Use:   "run <workload> <algorithm> [params...]",
	Short: "Run one scheduling policy over a workload",
	Long: `Run one scheduling policy over a workload file and print the per-process
table, the timeline and the aggregate metrics.

Algorithms: fifo, sjf, stcf, rr <quantum>, mlfq <num_queues> <q1,q2,...> <boost_interval>`,
	Args: cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := runConfig{
			Gantt:      showGantt,
			GanttWidth: ganttWidth,
			TraceLevel: trace.TraceLevel(traceLevel),
			JSONPath:   jsonPath,
			ReportPath: reportPath,
			MaxEvents:  maxEvents,
		}
		if err := runSimulation(os.Stdout, args[0], args[1:], cfg); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

// runSimulation loads the workload, runs the policy and writes every requested output.
func runSimulation(out io.Writer, workloadPath string, policyArgs []string, cfg runConfig) error {
	spec, err := sim.ParsePolicyArgs(policyArgs)
	if err != nil {
		return err
	}
	if !trace.IsValidTraceLevel(string(cfg.TraceLevel)) {
		return fmt.Errorf("unknown trace level %q; valid: none, decisions", cfg.TraceLevel)
	}
	procs, err := workload.LoadWorkload(workloadPath)
	if err != nil {
		return err
	}
	opts := sim.RunOptions{MaxEvents: cfg.MaxEvents, TraceLevel: cfg.TraceLevel}
	res, err := sim.Simulate(spec, procs, opts)
	if err != nil {
		return err
	}

	report.WriteRunSummary(out, res)
	if cfg.Gantt {
		_, _ = fmt.Fprintln(out)
		report.RenderGantt(out, res.Timeline, cfg.GanttWidth, report.GanttLabel(res))
	}
	if res.Trace != nil {
		_, _ = fmt.Fprintln(out)
		report.WriteTraceSummary(out, trace.Summarize(res.Trace))
	}
	if cfg.JSONPath != "" {
		if err := report.SaveJSON(cfg.JSONPath, report.NewResultRecord(res)); err != nil {
			return err
		}
		logrus.Infof("Results written to %s", cfg.JSONPath)
	}
	if cfg.ReportPath != "" {
		specs, err := sim.DefaultPolicyBundle().Specs()
		if err != nil {
			return err
		}
		results, err := sim.Compare(specs, procs, sim.RunOptions{MaxEvents: cfg.MaxEvents})
		if err != nil {
			return err
		}
		if err := report.SaveMarkdownReport(cfg.ReportPath, procs, results); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out, "\nReport generated: %s\n", cfg.ReportPath)
	}
	return nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")

	runCmd.Flags().BoolVar(&showGantt, "gantt", false, "Render an ASCII Gantt chart of the timeline")
	runCmd.Flags().IntVar(&ganttWidth, "width", report.DefaultGanttWidth, "Gantt chart width in columns")
	runCmd.Flags().StringVar(&traceLevel, "trace", string(trace.TraceLevelNone), "Decision trace level (none, decisions)")
	runCmd.Flags().StringVar(&jsonPath, "json", "", "Write the run result as JSON to this file")
	runCmd.Flags().StringVar(&reportPath, "report", "", "Also compare the default policy set and write a Markdown report to this file")
	runCmd.Flags().IntVar(&maxEvents, "max-events", 0, "Maximum number of timeline events (0 = unbounded)")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
