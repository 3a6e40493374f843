// sim/simulator.go
package sim

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/schedsim/sim/trace"
)

// ErrNilRecorder is returned when a policy is invoked without a timeline recorder.
var ErrNilRecorder = errors.New("timeline recorder must not be nil")

// Simulator holds the state of exactly one policy invocation: the clock,
// the process slice being mutated, and the per-run scratch state shared by
// all policies. It is never reused across invocations.
type Simulator struct {
	Clock int64
	// Procs is the caller's slice; run state is written in place.
	Procs []Process
	// admitted marks processes already handed to a ready queue (RR, MLFQ).
	admitted []bool
	finished int
	policy   string
	timeline *TimelineRecorder
	trace    *trace.SimulationTrace
}

// newSimulator validates the workload, resets every process and the recorder,
// and positions the clock at the earliest arrival. Nothing is mutated when
// validation fails.
func newSimulator(policy string, procs []Process, tl *TimelineRecorder, tr *trace.SimulationTrace) (*Simulator, error) {
	if tl == nil {
		return nil, fmt.Errorf("%s: %w", policy, ErrNilRecorder)
	}
	if err := ValidateProcesses(procs); err != nil {
		return nil, fmt.Errorf("%s: %w", policy, err)
	}
	for i := range procs {
		procs[i].Reset()
	}
	tl.Reset()
	sim := &Simulator{
		Clock:    firstArrival(procs),
		Procs:    procs,
		admitted: make([]bool, len(procs)),
		policy:   policy,
		timeline: tl,
		trace:    tr,
	}
	logrus.Debugf("[tick %07d] %s: starting with %d processes", sim.Clock, policy, len(procs))
	return sim, nil
}

// Done reports whether every process has finished.
func (sim *Simulator) Done() bool {
	return sim.finished == len(sim.Procs)
}

// admitArrivals hands every not-yet-admitted process whose arrival has passed
// to enqueue, scanning in input order.
func (sim *Simulator) admitArrivals(enqueue func(i int)) {
	for i := range sim.Procs {
		if !sim.admitted[i] && sim.Procs[i].ArrivalTime <= sim.Clock {
			sim.admitted[i] = true
			enqueue(i)
		}
	}
}

// selectMin scans arrived, unfinished processes in input order and returns the
// one with the smallest key; ties go to the earlier arrival, then to the first
// encountered. Returns -1 when no process is eligible.
func (sim *Simulator) selectMin(key func(p *Process) int64) int {
	best := -1
	for i := range sim.Procs {
		p := &sim.Procs[i]
		if p.Finished || p.ArrivalTime > sim.Clock {
			continue
		}
		if best == -1 {
			best = i
			continue
		}
		b := &sim.Procs[best]
		if key(p) < key(b) || (key(p) == key(b) && p.ArrivalTime < b.ArrivalTime) {
			best = i
		}
	}
	return best
}

// nextArrival returns the earliest arrival among unfinished processes.
// Callers only ask when nothing is ready, so that arrival must lie in the future.
func (sim *Simulator) nextArrival() int64 {
	next, found := int64(0), false
	for i := range sim.Procs {
		p := &sim.Procs[i]
		if p.Finished {
			continue
		}
		if !found || p.ArrivalTime < next {
			next, found = p.ArrivalTime, true
		}
	}
	if !found {
		sim.invariant("no unfinished process left to wait for")
	}
	if next <= sim.Clock {
		sim.invariant("process arrived at %d is unfinished but was not schedulable", next)
	}
	return next
}

// upcomingArrival returns the earliest arrival strictly after the clock among
// unfinished processes. ok is false when every process has already arrived.
func (sim *Simulator) upcomingArrival() (next int64, ok bool) {
	for i := range sim.Procs {
		p := &sim.Procs[i]
		if p.Finished || p.ArrivalTime <= sim.Clock {
			continue
		}
		if !ok || p.ArrivalTime < next {
			next, ok = p.ArrivalTime, true
		}
	}
	return next, ok
}

// idleUntilNextArrival emits one idle event up to the next arrival, advances
// the clock, then admits every process that has now arrived (when enqueue is non-nil).
func (sim *Simulator) idleUntilNextArrival(enqueue func(i int)) error {
	next := sim.nextArrival()
	d := next - sim.Clock
	if err := sim.timeline.Append(TimelineEvent{Start: sim.Clock, Idle: true, Duration: d}); err != nil {
		return fmt.Errorf("%s: %w", sim.policy, err)
	}
	sim.trace.RecordIdle(trace.IdleRecord{Clock: sim.Clock, Duration: d})
	logrus.Debugf("[tick %07d] %s: idle for %d", sim.Clock, sim.policy, d)
	sim.Clock = next
	if enqueue != nil {
		sim.admitArrivals(enqueue)
	}
	return nil
}

// dispatch runs process i for d ticks starting at the current clock.
// merge extends the previous event when it is a contiguous run of the same process.
func (sim *Simulator) dispatch(i int, d int64, merge bool) error {
	p := &sim.Procs[i]
	if p.Finished || d <= 0 || d > p.RemainingTime {
		sim.invariant("bad dispatch of pid %d for %d ticks (remaining %d)", p.PID, d, p.RemainingTime)
	}
	if p.StartTime == nil {
		p.StartTime = tick(sim.Clock)
	}
	var err error
	if merge {
		err = sim.timeline.Extend(sim.Clock, p.PID, d)
	} else {
		err = sim.timeline.Append(TimelineEvent{Start: sim.Clock, PID: p.PID, Duration: d})
	}
	if err != nil {
		return fmt.Errorf("%s: %w", sim.policy, err)
	}
	sim.Clock += d
	p.RemainingTime -= d
	if p.RemainingTime == 0 {
		p.CompletionTime = tick(sim.Clock)
		p.Finished = true
		sim.finished++
	}
	return nil
}

// recordDispatch logs and traces a completed slice of process i.
func (sim *Simulator) recordDispatch(i int, start int64, level int, quantum, ran int64, outcome trace.Outcome) {
	p := &sim.Procs[i]
	logrus.Debugf("[tick %07d] %s: pid=%d level=%d ran=%d remaining=%d %s",
		start, sim.policy, p.PID, level, ran, p.RemainingTime, outcome)
	sim.trace.RecordDispatch(trace.DispatchRecord{
		Clock:     start,
		PID:       p.PID,
		Level:     level,
		Quantum:   quantum,
		Ran:       ran,
		Remaining: p.RemainingTime,
		Outcome:   outcome,
	})
}

// invariant aborts the run: the engine expected a schedulable process and found
// none, which only a data-model bug can cause.
func (sim *Simulator) invariant(format string, args ...any) {
	panic(fmt.Sprintf("%s: broken invariant at tick %d: %s", sim.policy, sim.Clock, fmt.Sprintf(format, args...)))
}
