package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/schedsim/sim"
	"github.com/inference-sim/schedsim/sim/report"
	"github.com/inference-sim/schedsim/sim/workload"
)

var (
	policiesPath      string // Policy bundle YAML
	compareReportPath string // Markdown report output
	compareJSONPath   string // JSON output of every run
	compareMaxEvents  int
)

var compareCmd = &cobra.Command{
	Use:   "compare <workload>",
	Short: "Run every policy of a bundle over one workload and write a comparison report",
	Long: `Run every policy of a policy bundle over its own copy of the workload, print a
comparison table and write a Markdown report. Without --policies the bundle is
FIFO, SJF, STCF, RR (quantum 3) and MLFQ (quanta 4,8,16, boost 50).`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runComparison(os.Stdout, args[0], policiesPath, compareReportPath, compareJSONPath, compareMaxEvents); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

// loadBundle reads the bundle at path, or returns the default bundle when path is empty.
func loadBundle(path string) (*sim.PolicyBundle, error) {
	if path == "" {
		return sim.DefaultPolicyBundle(), nil
	}
	bundle, err := sim.LoadPolicyBundle(path)
	if err != nil {
		return nil, err
	}
	if err := bundle.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return bundle, nil
}

func runComparison(out io.Writer, workloadPath, bundlePath, mdPath, jsonOut string, capacity int) error {
	bundle, err := loadBundle(bundlePath)
	if err != nil {
		return err
	}
	specs, err := bundle.Specs()
	if err != nil {
		return err
	}
	procs, err := workload.LoadWorkload(workloadPath)
	if err != nil {
		return err
	}
	results, err := sim.Compare(specs, procs, sim.RunOptions{MaxEvents: capacity})
	if err != nil {
		return err
	}

	report.WriteComparisonTable(out, results)
	if best := sim.Best(results); best != nil {
		_, _ = fmt.Fprintf(out, "Best algorithm for this workload: %s\n", best.Algorithm)
	}
	if mdPath != "" {
		if err := report.SaveMarkdownReport(mdPath, procs, results); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out, "Report generated: %s\n", mdPath)
	}
	if jsonOut != "" {
		if err := report.SaveJSON(jsonOut, report.NewResultRecords(results)); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	compareCmd.Flags().StringVar(&policiesPath, "policies", "", "Policy bundle YAML (policies, round_robin.quantum, mlfq.quanta, mlfq.boost_interval)")
	compareCmd.Flags().StringVar(&compareReportPath, "report", "report.md", "Markdown report path (empty to skip)")
	compareCmd.Flags().StringVar(&compareJSONPath, "json", "", "Write every run as JSON to this file")
	compareCmd.Flags().IntVar(&compareMaxEvents, "max-events", 0, "Maximum number of timeline events per run (0 = unbounded)")
	rootCmd.AddCommand(compareCmd)
}
