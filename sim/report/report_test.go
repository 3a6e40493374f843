package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/schedsim/sim"
	"github.com/inference-sim/schedsim/sim/trace"
)

// threeProcs is P1(0,5) P2(1,3) P3(2,8).
func threeProcs() []sim.Process {
	return []sim.Process{
		sim.NewProcess(1, 0, 5, 0),
		sim.NewProcess(2, 1, 3, 1),
		sim.NewProcess(3, 2, 8, 2),
	}
}

func mustSimulate(t *testing.T, spec sim.PolicySpec, procs []sim.Process, opts sim.RunOptions) *sim.Result {
	t.Helper()
	res, err := sim.Simulate(spec, procs, opts)
	require.NoError(t, err)
	return res
}

func TestWriteProcessTable_ShowsDerivedTimingsAndAverages(t *testing.T) {
	// GIVEN a FIFO run
	res := mustSimulate(t, sim.PolicySpec{Name: "fifo"}, threeProcs(), sim.RunOptions{})

	// WHEN the process table is written
	var buf bytes.Buffer
	WriteProcessTable(&buf, res.Processes, res.Metrics)
	out := buf.String()

	// THEN completion times and the averages footer appear
	assert.Contains(t, out, "16")
	assert.Contains(t, out, "8.67")
	assert.Contains(t, out, "3.33")
}

func TestWriteProcessTable_UnsetValuesPrintMinusOne(t *testing.T) {
	// GIVEN a process that never ran
	procs := []sim.Process{sim.NewProcess(9, 0, 4, 0)}
	m := sim.CalculateMetrics(procs, 0)

	var buf bytes.Buffer
	WriteProcessTable(&buf, procs, m)

	// THEN start, completion, TAT, WT and RT are all -1
	row := processRow(&procs[0])
	assert.Equal(t, []string{"9", "0", "4", "0", "-1", "-1", "-1", "-1", "-1"}, row)
	assert.Contains(t, buf.String(), "-1")
}

func TestWriteTimeline_IdleUsesMinusOne(t *testing.T) {
	tl := sim.Timeline{
		{Start: 2, PID: 1, Duration: 3},
		{Start: 5, Idle: true, Duration: 5},
		{Start: 10, PID: 2, Duration: 2},
	}
	var buf bytes.Buffer
	WriteTimeline(&buf, tl)
	assert.Equal(t, "Timeline events:\n"+
		"  time=2 pid=1 dur=3\n"+
		"  time=5 pid=-1 dur=5\n"+
		"  time=10 pid=2 dur=2\n", buf.String())
}

func TestWriteMetrics_Precision(t *testing.T) {
	res := mustSimulate(t, sim.PolicySpec{Name: "fifo"}, threeProcs(), sim.RunOptions{})
	var buf bytes.Buffer
	WriteMetrics(&buf, res.Metrics)
	out := buf.String()
	assert.Contains(t, out, "Avg Turnaround Time: 8.67\n")
	assert.Contains(t, out, "Avg Waiting Time:    3.33\n")
	assert.Contains(t, out, "CPU Utilization:     100.00%\n")
	assert.Contains(t, out, "Throughput:          0.1875\n")
	assert.Contains(t, out, "Fairness Index:      0.8346\n")
}

func TestWriteRunSummary_IncludesQuantumForRR(t *testing.T) {
	res := mustSimulate(t, sim.PolicySpec{Name: "rr", Quantum: 3}, threeProcs(), sim.RunOptions{})
	var buf bytes.Buffer
	WriteRunSummary(&buf, res)
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Algorithm: RR\nQuantum: 3\n"))
	assert.Contains(t, out, "Timeline events:")
	assert.Contains(t, out, "Metrics:")
}

func TestRenderGantt_FIFO_ScalesBlocksToWidth(t *testing.T) {
	// GIVEN a FIFO timeline of 16 ticks and a 17-column chart (one column per tick)
	res := mustSimulate(t, sim.PolicySpec{Name: "fifo"}, threeProcs(), sim.RunOptions{})

	// WHEN rendered
	var buf bytes.Buffer
	RenderGantt(&buf, res.Timeline, 17, GanttLabel(res))

	// THEN each block spans its duration and event starts label the axis
	assert.Equal(t, "Algorithm: [FIFO]\n"+
		"|P1==|P2|P3=====|\n"+
		"0    5  8       16\n", buf.String())
}

func TestRenderGantt_ShortBlocksKeepMinimumWidth(t *testing.T) {
	// GIVEN an RR timeline with 2-tick slices
	res := mustSimulate(t, sim.PolicySpec{Name: "rr", Quantum: 3}, threeProcs(), sim.RunOptions{})

	var buf bytes.Buffer
	RenderGantt(&buf, res.Timeline, 17, GanttLabel(res))

	// THEN every block is three columns and every label fits
	assert.Equal(t, "Algorithm: [RR]  Quantum: [3]\n"+
		"|P1|P2|P3|P1|P3|P3|\n"+
		"0  3  6  9  11 14 16\n", buf.String())
}

func TestRenderGantt_IdleBlock(t *testing.T) {
	tl := sim.Timeline{
		{Start: 2, PID: 1, Duration: 3},
		{Start: 5, Idle: true, Duration: 5},
		{Start: 10, PID: 2, Duration: 2},
	}
	var buf bytes.Buffer
	RenderGantt(&buf, tl, 11, "")
	assert.Equal(t, "|P1|IDLE|P2|\n"+
		"2  5    10 12\n", buf.String())
}

func TestRenderGantt_EmptyTimeline(t *testing.T) {
	var buf bytes.Buffer
	RenderGantt(&buf, sim.Timeline{}, 40, "Algorithm: [SJF]")
	assert.Equal(t, "Algorithm: [SJF]\n(empty timeline)\n", buf.String())
}

func TestTimeRow_SkipsCollidingLabels(t *testing.T) {
	r := &timeRow{}
	r.place(0, 100)
	r.place(2, 105) // would overlap "100"
	r.place(4, 110)
	assert.Equal(t, "100 110", r.String())
}

func TestWriteMarkdownReport_ComparesAndPicksBest(t *testing.T) {
	// GIVEN the default comparison set over the three-process workload
	workload := threeProcs()
	results, err := sim.Compare([]sim.PolicySpec{
		{Name: "fifo"}, {Name: "sjf"}, {Name: "stcf"}, {Name: "rr", Quantum: 3},
	}, workload, sim.RunOptions{})
	require.NoError(t, err)

	// WHEN the Markdown report is written
	var buf bytes.Buffer
	require.NoError(t, WriteMarkdownReport(&buf, workload, results))
	out := buf.String()

	// THEN every section is present and STCF has the lowest average turnaround
	assert.True(t, strings.HasPrefix(out, "# Scheduler Performance Report\n\n## Process Set\n\n"))
	assert.Contains(t, out, "## Algorithm Comparison")
	assert.Contains(t, out, "RR (q=3)")
	assert.Contains(t, out, "8.33")
	assert.Contains(t, out, "## Best Algorithm for This Workload\n**STCF** - Lowest average turnaround time and waiting time\n")
	assert.Contains(t, out, "- Batch jobs: Use SJF or STCF\n")
	assert.Contains(t, out, "| PID ")
}

func TestWriteMarkdownReport_TieGoesToFirst(t *testing.T) {
	workload := threeProcs()
	results, err := sim.Compare([]sim.PolicySpec{{Name: "sjf"}, {Name: "fifo"}}, workload, sim.RunOptions{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteMarkdownReport(&buf, workload, results))
	assert.Contains(t, buf.String(), "**SJF** - Lowest")
}

func TestWriteMarkdownReport_NoResults_ReturnsError(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, WriteMarkdownReport(&buf, threeProcs(), nil))
}

func TestNewResultRecord_ExportsSentinelsAndTrace(t *testing.T) {
	// GIVEN an MLFQ run with decision tracing and an idle gap
	procs := []sim.Process{sim.NewProcess(1, 2, 3, 0), sim.NewProcess(2, 10, 2, 0)}
	cfg, err := sim.NewMLFQConfig(2, []int64{2, 4}, 0)
	require.NoError(t, err)
	res := mustSimulate(t, sim.PolicySpec{Name: "mlfq", MLFQ: cfg}, procs, sim.RunOptions{TraceLevel: trace.TraceLevelDecisions})

	// WHEN exported
	rec := NewResultRecord(res)

	// THEN the idle span is pid -1 and the trace is summarized
	assert.Equal(t, "MLFQ", rec.Algorithm)
	assert.Equal(t, "mlfq 2 2,4 0", rec.Policy)
	assert.Zero(t, rec.Quantum)
	var idle []EventRecord
	for _, e := range rec.Timeline {
		if e.PID == -1 {
			idle = append(idle, e)
		}
	}
	require.Len(t, idle, 1)
	assert.Equal(t, EventRecord{Time: 5, PID: -1, Duration: 5}, idle[0])
	require.NotNil(t, rec.Trace)
	assert.Equal(t, int64(5), rec.Trace.IdleTime)
	assert.Equal(t, int64(5), rec.Processes[0].Completion)
}

func TestWriteJSON_ProducesDecodableDocument(t *testing.T) {
	res := mustSimulate(t, sim.PolicySpec{Name: "sjf"}, threeProcs(), sim.RunOptions{})
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, NewResultRecords([]*sim.Result{res})))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "SJF", decoded[0]["algorithm"])
	metrics := decoded[0]["metrics"].(map[string]any)
	assert.InDelta(t, 26.0/3.0, metrics["avg_turnaround_time"].(float64), 1e-9)
	assert.Nil(t, decoded[0]["trace"])
}

func TestNewResultRecord_UnstartedProcess(t *testing.T) {
	res := &sim.Result{
		Spec:      sim.PolicySpec{Name: "fifo"},
		Algorithm: "FIFO",
		Processes: []sim.Process{sim.NewProcess(1, 0, 2, 0)},
		Timeline:  sim.Timeline{},
		Metrics:   &sim.Metrics{},
	}
	rec := NewResultRecord(res)
	assert.Equal(t, ProcessRecord{PID: 1, Arrival: 0, Burst: 2, Start: -1, Completion: -1, Turnaround: -1, Waiting: -1, Response: -1}, rec.Processes[0])
	assert.Nil(t, rec.Trace)
}

func TestWriteComparisonTable_MarksBest(t *testing.T) {
	results, err := sim.Compare([]sim.PolicySpec{{Name: "fifo"}, {Name: "stcf"}}, threeProcs(), sim.RunOptions{})
	require.NoError(t, err)

	var buf bytes.Buffer
	WriteComparisonTable(&buf, results)

	lines := strings.Split(buf.String(), "\n")
	var stcfLine string
	for _, l := range lines {
		if strings.Contains(l, "STCF") {
			stcfLine = l
		}
	}
	assert.Contains(t, stcfLine, "best")
	assert.Contains(t, stcfLine, "8.33")
	assert.Equal(t, 1, strings.Count(buf.String(), "best"))
}

func TestWriteTraceSummary_ListsPerPIDCounts(t *testing.T) {
	res := mustSimulate(t, sim.PolicySpec{Name: "rr", Quantum: 3}, threeProcs(), sim.RunOptions{TraceLevel: trace.TraceLevelDecisions})

	var buf bytes.Buffer
	WriteTraceSummary(&buf, trace.Summarize(res.Trace))

	out := buf.String()
	assert.Contains(t, out, "Dispatches:       6\n")
	assert.Contains(t, out, "  pid=1 dispatches=2\n  pid=2 dispatches=1\n  pid=3 dispatches=3\n")
}
