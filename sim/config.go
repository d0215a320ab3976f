package sim

import (
	"fmt"
	"math"
)

// SimulationParameters fixes one point of the parameter grid.
// Times are in simulated seconds.
type SimulationParameters struct {
	ServeTime      float64
	ServerCount    int
	CustomerCount  int
	WindowDuration float64
}

// NewSimulationParameters constructs SimulationParameters without validating them.
func NewSimulationParameters(serveTime float64, serverCount, customerCount int, windowDuration float64) SimulationParameters {
	return SimulationParameters{
		ServeTime:      serveTime,
		ServerCount:    serverCount,
		CustomerCount:  customerCount,
		WindowDuration: windowDuration,
	}
}

// Validate reports the first parameter that cannot drive a trial.
// The returned error is always a *ConfigurationError.
func (p SimulationParameters) Validate() error {
	if err := validateArrivalInputs(p.CustomerCount, p.WindowDuration); err != nil {
		return err
	}
	if math.IsNaN(p.ServeTime) || math.IsInf(p.ServeTime, 0) || p.ServeTime <= 0 {
		return &ConfigurationError{Field: "serve_time", Value: p.ServeTime, Reason: "must be a positive finite number of seconds"}
	}
	if p.ServerCount <= 0 {
		return &ConfigurationError{Field: "server_count", Value: p.ServerCount, Reason: "must be at least 1"}
	}
	return nil
}

// MeanInterarrival returns windowDuration / (customerCount - 1): the window is
// split into one fewer gap than there are customers.
// Callers must validate first; the result is meaningless for customerCount < 2.
func (p SimulationParameters) MeanInterarrival() float64 {
	return p.WindowDuration / float64(p.CustomerCount-1)
}

// LunchTimeHours returns the window length in hours rounded to one decimal place.
func (p SimulationParameters) LunchTimeHours() float64 {
	return math.Round(p.WindowDuration/3600*10) / 10
}

func (p SimulationParameters) String() string {
	return fmt.Sprintf("serve=%gs servers=%d customers=%d window=%gs",
		p.ServeTime, p.ServerCount, p.CustomerCount, p.WindowDuration)
}

func validateArrivalInputs(customerCount int, windowDuration float64) error {
	if customerCount < 2 {
		return &ConfigurationError{Field: "customer_count", Value: customerCount, Reason: "must be at least 2 (mean interarrival divides by customer_count-1)"}
	}
	if math.IsNaN(windowDuration) || math.IsInf(windowDuration, 0) || windowDuration <= 0 {
		return &ConfigurationError{Field: "window_duration", Value: windowDuration, Reason: "must be a positive finite number of seconds"}
	}
	return nil
}
