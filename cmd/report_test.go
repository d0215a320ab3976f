package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/fcfs-sim/sim"
	"github.com/inference-sim/fcfs-sim/sim/sweep"
	"github.com/inference-sim/fcfs-sim/sim/trace"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func scenarioResult(t *testing.T, level trace.TraceLevel) *sim.TrialResult {
	t.Helper()
	sched, err := sim.ScheduleFromGaps([]float64{5, 3, 20})
	require.NoError(t, err)
	trial, err := sim.NewTrial(sim.NewSimulationParameters(10, 1, 3, 1800), sched, trace.TraceConfig{Level: level})
	require.NoError(t, err)
	res, err := trial.Run()
	require.NoError(t, err)
	return res
}

func TestPrintTrial(t *testing.T) {
	var buf bytes.Buffer
	printTrial(&buf, scenarioResult(t, trace.TraceLevelEvents))

	out := buf.String()
	assert.Contains(t, out, "=== Trial serve=10s servers=1 customers=3 window=1800s")
	assert.Contains(t, out, "Avg. Queue Time (s)    2.333")
	assert.Contains(t, out, "Lunch Time (hrs)       0.5")
	assert.Contains(t, out, "Customers Waited       1/3")
	assert.Contains(t, out, "--- Event trace ---")
	assert.Contains(t, out, "Events                 9")
}

func TestPrintTrial_NoTraceSection(t *testing.T) {
	var buf bytes.Buffer
	printTrial(&buf, scenarioResult(t, trace.TraceLevelNone))
	assert.NotContains(t, buf.String(), "Event trace")
}

func TestPrintSweep(t *testing.T) {
	report := &sweep.Report{
		Results: []*sim.TrialResult{scenarioResult(t, trace.TraceLevelNone)},
		Failures: []sweep.Failure{{
			Params: sim.NewSimulationParameters(-1, 1, 3, 1800),
			Err:    errors.New("bad serve time"),
		}},
		ExportErrors: 2,
		Elapsed:      1500 * time.Millisecond,
	}

	var buf bytes.Buffer
	printSweep(&buf, report)

	out := buf.String()
	assert.Contains(t, out, "serve(s)")
	assert.Contains(t, out, "2.333")
	assert.Contains(t, out, "FAILED serve=-1s servers=1 customers=3 window=1800s: bad serve time")
	assert.Contains(t, out, "1 trials, 1 failed, 2 export errors, 1.50s")
}

func TestQueueColor(t *testing.T) {
	assert.Same(t, goodColor, queueColor(0, 10))
	assert.Same(t, warnColor, queueColor(5, 10))
	assert.Same(t, badColor, queueColor(10, 10))
}

func TestOpenExporter(t *testing.T) {
	exp, err := openExporter("", "", "")
	require.NoError(t, err)
	assert.Nil(t, exp)

	dir := t.TempDir()
	exp, err = openExporter(dir+"/lunch.xlsx", dir+"/book", dir+"/results.db")
	require.NoError(t, err)
	require.NotNil(t, exp)
	require.Len(t, exp, 3)
	require.NoError(t, exp.Export(scenarioResult(t, trace.TraceLevelNone)))
	require.NoError(t, exp.Close())

	for _, name := range []string{"lunch.xlsx", "book/summary.csv", "results.db"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
}
