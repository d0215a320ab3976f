package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/inference-sim/fcfs-sim/sim"
	"github.com/inference-sim/fcfs-sim/sim/sweep"
	"github.com/inference-sim/fcfs-sim/sim/trace"
)

var (
	headerColor = color.New(color.Bold)
	goodColor   = color.New(color.FgGreen)
	warnColor   = color.New(color.FgYellow)
	badColor    = color.New(color.FgRed)
)

// queueColor grades a mean queue time against the service time.
func queueColor(meanQueue, serveTime float64) *color.Color {
	switch {
	case meanQueue == 0:
		return goodColor
	case meanQueue < serveTime:
		return warnColor
	default:
		return badColor
	}
}

// printTrial writes the summary block of one trial.
func printTrial(w io.Writer, res *sim.TrialResult) {
	p, s := res.Params, res.Summary
	headerColor.Fprintf(w, "=== Trial %s (seed %d) ===\n", p, res.Seed)
	fmt.Fprintf(w, "%-22s %s\n", "Avg. Queue Time (s)", queueColor(s.MeanQueueTime, p.ServeTime).Sprintf("%.3f", s.MeanQueueTime))
	fmt.Fprintf(w, "%-22s %d\n", "# of Servers", p.ServerCount)
	fmt.Fprintf(w, "%-22s %g\n", "Serve Time (s)", p.ServeTime)
	fmt.Fprintf(w, "%-22s %.1f\n", "Lunch Time (hrs)", p.LunchTimeHours())
	fmt.Fprintf(w, "%-22s %.3f\n", "Mean TBA (s)", s.MeanInterarrival)
	fmt.Fprintf(w, "%-22s %.3f\n", "Spread", s.StdQueueTime)
	fmt.Fprintf(w, "%-22s %.3f\n", "P95 Queue Time (s)", s.P95QueueTime)
	fmt.Fprintf(w, "%-22s %.3f\n", "Max Queue Time (s)", s.MaxQueueTime)
	fmt.Fprintf(w, "%-22s %d/%d\n", "Customers Waited", s.CustomersWaited, s.Customers)
	fmt.Fprintf(w, "%-22s %.3f\n", "Utilization", res.Utilization)
	if res.Reference.Stable {
		fmt.Fprintf(w, "%-22s %.3f\n", "M/D/c Queue Time (s)", res.Reference.MDcQueueTime)
	} else {
		fmt.Fprintf(w, "%-22s %s\n", "M/D/c Queue Time (s)", badColor.Sprintf("unstable (rho=%.2f)", res.Reference.Utilization))
	}

	if res.Trace != nil {
		ts := trace.Summarize(res.Trace, p.ServerCount)
		headerColor.Fprintln(w, "--- Event trace ---")
		fmt.Fprintf(w, "%-22s %d\n", "Events", ts.TotalEvents)
		fmt.Fprintf(w, "%-22s %d\n", "Max Queue Depth", ts.MaxQueueDepth)
		fmt.Fprintf(w, "%-22s %.3f\n", "Makespan (s)", ts.Makespan)
	}
}

// printSweep writes one line per trial in grid order, then the failures.
func printSweep(w io.Writer, report *sweep.Report) {
	headerColor.Fprintf(w, "%8s %7s %9s %12s %10s %10s %12s\n",
		"serve(s)", "servers", "lunch(h)", "avg queue", "spread", "mean TBA", "M/D/c")
	for _, res := range report.Results {
		p, s := res.Params, res.Summary
		ref := "unstable"
		if res.Reference.Stable {
			ref = fmt.Sprintf("%.3f", res.Reference.MDcQueueTime)
		}
		fmt.Fprintf(w, "%8g %7d %9.1f %s %10.3f %10.3f %12s\n",
			p.ServeTime, p.ServerCount, p.LunchTimeHours(),
			queueColor(s.MeanQueueTime, p.ServeTime).Sprintf("%12.3f", s.MeanQueueTime),
			s.StdQueueTime, s.MeanInterarrival, ref)
	}
	for _, f := range report.Failures {
		badColor.Fprintf(w, "FAILED %s: %v\n", f.Params, f.Err)
	}
	fmt.Fprintf(w, "%d trials, %d failed, %d export errors, %.2fs\n",
		len(report.Results), len(report.Failures), report.ExportErrors, report.Elapsed.Seconds())
}
