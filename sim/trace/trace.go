package trace

// TraceLevel controls the verbosity of decision tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelDecisions captures every dispatch, boost and idle decision.
	TraceLevelDecisions TraceLevel = "decisions"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:      true,
	TraceLevelDecisions: true,
	"":                  true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// SimulationTrace collects decision records during one policy invocation.
// All Record methods are no-ops on a nil receiver, so policies can record
// unconditionally.
type SimulationTrace struct {
	Config     TraceConfig
	Dispatches []DispatchRecord
	Boosts     []BoostRecord
	Idles      []IdleRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
// Returns nil when the level disables tracing.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	if config.Level == "" || config.Level == TraceLevelNone {
		return nil
	}
	return &SimulationTrace{
		Config:     config,
		Dispatches: make([]DispatchRecord, 0),
		Boosts:     make([]BoostRecord, 0),
		Idles:      make([]IdleRecord, 0),
	}
}

// RecordDispatch appends a dispatch record.
func (st *SimulationTrace) RecordDispatch(record DispatchRecord) {
	if st == nil {
		return
	}
	st.Dispatches = append(st.Dispatches, record)
}

// RecordBoost appends a boost record.
func (st *SimulationTrace) RecordBoost(record BoostRecord) {
	if st == nil {
		return
	}
	st.Boosts = append(st.Boosts, record)
}

// RecordIdle appends an idle record.
func (st *SimulationTrace) RecordIdle(record IdleRecord) {
	if st == nil {
		return
	}
	st.Idles = append(st.Idles, record)
}
