package sim

import (
	"errors"
	"fmt"
)

// ErrTimelineOverflow is returned when a run needs more events than the
// recorder's capacity allows. Events are never silently dropped.
var ErrTimelineOverflow = errors.New("timeline capacity exceeded")

// TimelineEvent is one contiguous span of CPU occupancy.
// Idle spans carry Idle=true and a zero PID; PID is only meaningful when Idle is false.
type TimelineEvent struct {
	Start    int64 // Span start (in ticks)
	PID      int   // Occupying process
	Idle     bool  // No process was both arrived and unfinished
	Duration int64 // Span length (in ticks), always > 0
}

// End returns the first tick after the span.
func (e TimelineEvent) End() int64 {
	return e.Start + e.Duration
}

// Timeline is the ordered, gap-free sequence of events of one run.
type Timeline []TimelineEvent

// TotalDuration sums all event durations.
func (tl Timeline) TotalDuration() int64 {
	var total int64
	for _, e := range tl {
		total += e.Duration
	}
	return total
}

// Validate checks that the timeline starts at start, has positive durations,
// and that every event begins where the previous one ended.
func (tl Timeline) Validate(start int64) error {
	if len(tl) == 0 {
		return nil
	}
	if tl[0].Start != start {
		return fmt.Errorf("timeline starts at %d, want %d", tl[0].Start, start)
	}
	for i, e := range tl {
		if e.Duration <= 0 {
			return fmt.Errorf("event %d has non-positive duration %d", i, e.Duration)
		}
		if i > 0 && tl[i-1].End() != e.Start {
			return fmt.Errorf("event %d starts at %d, previous ends at %d", i, e.Start, tl[i-1].End())
		}
	}
	return nil
}

// TimelineRecorder accumulates the events of a single policy invocation.
// A zero capacity grows the buffer on demand; a positive capacity is a hard limit.
type TimelineRecorder struct {
	capacity int
	events   Timeline
}

// NewTimelineRecorder creates a recorder. capacity <= 0 means unbounded.
func NewTimelineRecorder(capacity int) *TimelineRecorder {
	if capacity < 0 {
		capacity = 0
	}
	return &TimelineRecorder{capacity: capacity}
}

// Reset discards recorded events, keeping the capacity.
func (r *TimelineRecorder) Reset() {
	r.events = r.events[:0]
}

// Len returns the number of recorded events.
func (r *TimelineRecorder) Len() int {
	return len(r.events)
}

// Events returns the recorded timeline.
func (r *TimelineRecorder) Events() Timeline {
	return r.events
}

// Append records a new event.
func (r *TimelineRecorder) Append(e TimelineEvent) error {
	if e.Duration <= 0 {
		panic(fmt.Sprintf("Append: non-positive duration %d at tick %d", e.Duration, e.Start))
	}
	if r.capacity > 0 && len(r.events) >= r.capacity {
		return fmt.Errorf("%w: limit %d events", ErrTimelineOverflow, r.capacity)
	}
	r.events = append(r.events, e)
	return nil
}

// Extend grows the last event by d ticks when it is a run of pid,
// otherwise it appends a new event for pid starting at start.
func (r *TimelineRecorder) Extend(start int64, pid int, d int64) error {
	if n := len(r.events); n > 0 {
		last := &r.events[n-1]
		if !last.Idle && last.PID == pid && last.End() == start {
			last.Duration += d
			return nil
		}
	}
	return r.Append(TimelineEvent{Start: start, PID: pid, Duration: d})
}
