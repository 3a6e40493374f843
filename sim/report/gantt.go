package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/inference-sim/schedsim/sim"
)

// minBlockWidth is the narrowest block, bar included: "|P1" needs three columns.
const minBlockWidth = 3

// DefaultGanttWidth is the chart width used when none is given.
const DefaultGanttWidth = 72

// GanttLabel returns the chart header for a result, e.g. "Algorithm: [RR]  Quantum: [3]".
func GanttLabel(res *sim.Result) string {
	label := fmt.Sprintf("Algorithm: [%s]", res.Algorithm)
	if res.Quantum > 0 {
		label += fmt.Sprintf("  Quantum: [%d]", res.Quantum)
	}
	return label
}

// RenderGantt draws tl as a one-line ASCII Gantt chart scaled to roughly width
// columns, with the start tick of every block underneath:
//
//	|P1==|P2=|IDLE|P3====|
//	0    5   8    10     16
//
// Each block is at least minBlockWidth columns; labels that do not fit are cut.
// A time label that would collide with the previous one is skipped.
func RenderGantt(w io.Writer, tl sim.Timeline, width int, label string) {
	if label != "" {
		_, _ = fmt.Fprintln(w, label)
	}
	if len(tl) == 0 {
		_, _ = fmt.Fprintln(w, "(empty timeline)")
		return
	}
	if width <= 0 {
		width = DefaultGanttWidth
	}
	total := tl.TotalDuration()
	scale := float64(width-1) / float64(total)

	var bar strings.Builder
	times := &timeRow{}
	for _, e := range tl {
		cols := int(math.Round(float64(e.Duration) * scale))
		if cols < minBlockWidth {
			cols = minBlockWidth
		}
		times.place(bar.Len(), e.Start)
		bar.WriteString(block(e, cols))
	}
	times.place(bar.Len(), tl[len(tl)-1].End())
	bar.WriteByte('|')

	_, _ = fmt.Fprintln(w, bar.String())
	_, _ = fmt.Fprintln(w, strings.TrimRight(times.String(), " "))
}

// block renders one event as "|" followed by cols-1 columns of label and '=' fill.
func block(e sim.TimelineEvent, cols int) string {
	name := "IDLE"
	if !e.Idle {
		name = "P" + strconv.Itoa(e.PID)
	}
	inner := cols - 1
	if len(name) > inner {
		name = name[:inner]
	}
	return "|" + name + strings.Repeat("=", inner-len(name))
}

// timeRow lays out tick labels under the bar.
type timeRow struct {
	buf []byte
}

func (r *timeRow) place(col int, t int64) {
	s := strconv.FormatInt(t, 10)
	if len(r.buf) > 0 && col <= len(r.buf) {
		return
	}
	for len(r.buf) < col {
		r.buf = append(r.buf, ' ')
	}
	r.buf = append(r.buf, s...)
}

func (r *timeRow) String() string {
	return string(r.buf)
}
