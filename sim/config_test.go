package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSimulationParameters_FieldEquivalence(t *testing.T) {
	got := NewSimulationParameters(10, 2, 1250, 3600)
	want := SimulationParameters{ServeTime: 10, ServerCount: 2, CustomerCount: 1250, WindowDuration: 3600}
	assert.Equal(t, want, got)
	assert.NoError(t, got.Validate())
}

func TestSimulationParameters_MeanInterarrival_UsesCustomerCountMinusOne(t *testing.T) {
	p := NewSimulationParameters(10, 1, 1251, 3750)
	assert.Equal(t, 3.0, p.MeanInterarrival())
}

func TestSimulationParameters_LunchTimeHours(t *testing.T) {
	tests := []struct {
		window float64
		want   float64
	}{
		{1800, 0.5},
		{3600, 1},
		{7200, 2},
		{2000, 0.6},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NewSimulationParameters(1, 1, 2, tt.window).LunchTimeHours())
	}
}

func TestConfigurationError_Message(t *testing.T) {
	err := NewSimulationParameters(10, 0, 10, 60).Validate()
	assert.EqualError(t, err, "invalid server_count=0: must be at least 1")
}
