package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePolicyArgs_Valid(t *testing.T) {
	tests := []struct {
		args []string
		want PolicySpec
	}{
		{[]string{"fifo"}, PolicySpec{Name: "fifo"}},
		{[]string{"FCFS"}, PolicySpec{Name: "fcfs"}},
		{[]string{"sjf"}, PolicySpec{Name: "sjf"}},
		{[]string{"stcf"}, PolicySpec{Name: "stcf"}},
		{[]string{"rr", "3"}, PolicySpec{Name: "rr", Quantum: 3}},
		{[]string{"mlfq", "3", "4, 8,16", "50"}, PolicySpec{Name: "mlfq", MLFQ: MLFQConfig{Quanta: []int64{4, 8, 16}, BoostInterval: 50}}},
	}
	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			got, err := ParsePolicyArgs(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePolicyArgs_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"empty", nil, ErrUnknownPolicy},
		{"unknown", []string{"lottery"}, ErrUnknownPolicy},
		{"rr missing quantum", []string{"rr"}, nil},
		{"rr non-numeric quantum", []string{"rr", "abc"}, nil},
		{"rr zero quantum", []string{"rr", "0"}, ErrInvalidQuantum},
		{"mlfq count mismatch", []string{"mlfq", "3", "2,4", "10"}, ErrConfigMismatch},
		{"mlfq negative boost", []string{"mlfq", "1", "2", "-1"}, ErrInvalidBoost},
		{"mlfq bad quanta", []string{"mlfq", "2", "2,x", "0"}, nil},
		{"mlfq missing params", []string{"mlfq", "2"}, nil},
		{"fifo with params", []string{"fifo", "3"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePolicyArgs(tt.args)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestPolicySpec_DisplayName(t *testing.T) {
	assert.Equal(t, "FIFO", PolicySpec{Name: "fcfs"}.DisplayName())
	assert.Equal(t, "RR", PolicySpec{Name: "rr"}.DisplayName())
	assert.Equal(t, "MLFQ", PolicySpec{Name: "mlfq"}.DisplayName())
}

func TestNewScheduler_ReturnsPolicyImplementation(t *testing.T) {
	tests := []struct {
		spec PolicySpec
		want string
	}{
		{PolicySpec{Name: "fifo"}, "FIFO"},
		{PolicySpec{Name: "fcfs"}, "FIFO"},
		{PolicySpec{Name: "sjf"}, "SJF"},
		{PolicySpec{Name: "stcf"}, "STCF"},
		{PolicySpec{Name: "rr", Quantum: 2}, "RR"},
		{PolicySpec{Name: "mlfq", MLFQ: MLFQConfig{Quanta: []int64{1}}}, "MLFQ"},
	}
	for _, tt := range tests {
		s, err := NewScheduler(tt.spec)
		require.NoError(t, err)
		assert.Equal(t, tt.want, s.Name())
	}
}

func TestNewScheduler_InvalidSpec_ReturnsError(t *testing.T) {
	_, err := NewScheduler(PolicySpec{Name: "rr"})
	assert.ErrorIs(t, err, ErrInvalidQuantum)

	_, err = NewScheduler(PolicySpec{Name: "mlfq"})
	assert.ErrorIs(t, err, ErrConfigMismatch)
}
