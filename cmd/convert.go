package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/schedsim/sim"
	"github.com/inference-sim/schedsim/sim/workload"
)

// --- schedsim convert ---

var convertCmd = &cobra.Command{
	Use:   "convert <workload>",
	Short: "Convert a text workload to a YAML workload spec",
	Long:  "Convert a workload file (text triples or YAML, including generator specs) to an explicit YAML WorkloadSpec. Output is written to stdout for piping.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		procs, err := workload.LoadWorkload(args[0])
		if err != nil {
			logrus.Fatalf("Conversion failed: %v", err)
		}
		if err := writeSpec(os.Stdout, procs); err != nil {
			logrus.Fatalf("Conversion failed: %v", err)
		}
	},
}

// --- schedsim generate ---

var (
	genCount      int
	genSeed       int64
	genArrival    string
	genRate       float64
	genCV         float64
	genBurst      string
	genBurstMean  float64
	genBurstMin   float64
	genBurstMax   float64
	genPriorities int
	genFormat     string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a synthetic workload",
	Long:  "Generate a seeded synthetic workload and write it to stdout as a YAML spec or as text triples.",
	Run: func(cmd *cobra.Command, args []string) {
		g := generatorFromFlags(cmd.Flags().Changed("cv"))
		if err := runGenerate(os.Stdout, g, genFormat); err != nil {
			logrus.Fatalf("Generation failed: %v", err)
		}
	},
}

// generatorFromFlags builds a GeneratorSpec from the generate flags.
func generatorFromFlags(cvSet bool) *workload.GeneratorSpec {
	g := &workload.GeneratorSpec{
		Seed:       genSeed,
		Count:      genCount,
		Arrival:    workload.ArrivalSpec{Process: genArrival, Rate: genRate},
		Priorities: genPriorities,
	}
	if cvSet {
		cv := genCV
		g.Arrival.CV = &cv
	}
	switch genBurst {
	case "uniform":
		g.Burst = workload.DistSpec{Type: "uniform", Params: map[string]float64{"min": genBurstMin, "max": genBurstMax}}
	case "gaussian":
		g.Burst = workload.DistSpec{Type: "gaussian", Params: map[string]float64{
			"mean": genBurstMean, "std_dev": genBurstMean / 2, "min": genBurstMin, "max": genBurstMax,
		}}
	case "constant":
		g.Burst = workload.DistSpec{Type: "constant", Params: map[string]float64{"value": genBurstMean}}
	default:
		g.Burst = workload.DistSpec{Type: genBurst, Params: map[string]float64{"mean": genBurstMean}}
	}
	return g
}

func runGenerate(out io.Writer, g *workload.GeneratorSpec, format string) error {
	procs, err := workload.GenerateProcesses(g)
	if err != nil {
		return err
	}
	switch format {
	case "yaml":
		return writeSpec(out, procs)
	case "text":
		return workload.WriteText(out, procs)
	default:
		return fmt.Errorf("unknown output format %q; valid: yaml, text", format)
	}
}

func writeSpec(out io.Writer, procs []sim.Process) error {
	spec, err := workload.ConvertToSpec(procs)
	if err != nil {
		return err
	}
	return workload.WriteSpec(out, spec)
}

func init() {
	generateCmd.Flags().IntVar(&genCount, "count", 20, "Number of processes")
	generateCmd.Flags().Int64Var(&genSeed, "seed", 42, "Seed for the generator")
	generateCmd.Flags().StringVar(&genArrival, "arrival", "poisson", "Arrival process (poisson, gamma, weibull, uniform)")
	generateCmd.Flags().Float64Var(&genRate, "rate", 0.25, "Mean arrivals per tick")
	generateCmd.Flags().Float64Var(&genCV, "cv", 1.0, "Coefficient of variation of inter-arrival gaps (gamma, weibull)")
	generateCmd.Flags().StringVar(&genBurst, "burst", "exponential", "Burst distribution (exponential, uniform, gaussian, constant)")
	generateCmd.Flags().Float64Var(&genBurstMean, "burst-mean", 6, "Mean burst length in ticks")
	generateCmd.Flags().Float64Var(&genBurstMin, "burst-min", 1, "Minimum burst length (uniform, gaussian)")
	generateCmd.Flags().Float64Var(&genBurstMax, "burst-max", 20, "Maximum burst length (uniform, gaussian)")
	generateCmd.Flags().IntVar(&genPriorities, "priorities", 0, "Number of priority classes (0 = all priority 0)")
	generateCmd.Flags().StringVar(&genFormat, "format", "yaml", "Output format (yaml, text)")

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(generateCmd)
}
