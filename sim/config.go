package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidQuantum is returned for a non-positive quantum.
	ErrInvalidQuantum = errors.New("quantum must be positive")
	// ErrConfigMismatch is returned when the quantum list does not match the queue count.
	ErrConfigMismatch = errors.New("quantum count does not match queue count")
	// ErrInvalidBoost is returned for a negative boost interval.
	ErrInvalidBoost = errors.New("boost interval must be non-negative")
)

// RoundRobinConfig groups Round-Robin parameters.
type RoundRobinConfig struct {
	Quantum int64 // time slice length (must be > 0)
}

// NewRoundRobinConfig creates a validated RoundRobinConfig.
func NewRoundRobinConfig(quantum int64) (RoundRobinConfig, error) {
	cfg := RoundRobinConfig{Quantum: quantum}
	return cfg, cfg.Validate()
}

// Validate checks the quantum.
func (c RoundRobinConfig) Validate() error {
	if c.Quantum <= 0 {
		return fmt.Errorf("round robin: %w, got %d", ErrInvalidQuantum, c.Quantum)
	}
	return nil
}

// MLFQConfig groups Multi-Level Feedback Queue parameters.
type MLFQConfig struct {
	Quanta        []int64 // per-level quantum, level 0 = highest priority (each > 0)
	BoostInterval int64   // ticks between boosts (0 = disabled)
}

// NewMLFQConfig creates a validated MLFQConfig. numQueues must equal len(quanta).
func NewMLFQConfig(numQueues int, quanta []int64, boostInterval int64) (MLFQConfig, error) {
	if numQueues != len(quanta) {
		return MLFQConfig{}, fmt.Errorf("mlfq: %w: %d queues, %d quanta", ErrConfigMismatch, numQueues, len(quanta))
	}
	cfg := MLFQConfig{Quanta: append([]int64(nil), quanta...), BoostInterval: boostInterval}
	return cfg, cfg.Validate()
}

// NumQueues returns the number of levels.
func (c MLFQConfig) NumQueues() int {
	return len(c.Quanta)
}

// Validate checks level count, quanta and boost interval.
func (c MLFQConfig) Validate() error {
	if len(c.Quanta) == 0 {
		return fmt.Errorf("mlfq: %w: no queues configured", ErrConfigMismatch)
	}
	for level, q := range c.Quanta {
		if q <= 0 {
			return fmt.Errorf("mlfq: level %d: %w, got %d", level, ErrInvalidQuantum, q)
		}
	}
	if c.BoostInterval < 0 {
		return fmt.Errorf("mlfq: %w, got %d", ErrInvalidBoost, c.BoostInterval)
	}
	return nil
}
