package cmd

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/inference-sim/fcfs-sim/export"
	"github.com/inference-sim/fcfs-sim/sim"
	"github.com/inference-sim/fcfs-sim/sim/sweep"
	"github.com/inference-sim/fcfs-sim/sim/trace"
)

var (
	// Shared flags
	seed       int64  // Master seed for arrival generation
	logLevel   string // Log verbosity level
	envFile    string // Optional KEY=VALUE file with flag defaults
	traceLevel string // Per-trial event trace level
	csvDir     string // Workbook directory for CSV export
	xlsxPath   string // Excel workbook, one sheet per trial
	dbPath     string // SQLite results database

	// Single-trial flags
	serveTime float64 // Service duration per customer (s)
	servers   int     // Number of servers
	customers int     // Number of customers
	window    float64 // Arrival window (s)

	// Sweep flags
	configPath string        // Sweep YAML file
	workers    int           // Concurrent trials
	metricsOut string        // Prometheus textfile output
	timeout    time.Duration // Wall-clock budget for the whole sweep
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "fcfs-sim",
	Short: "Discrete-event simulator for first-come-first-served multi-server queues",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadEnvFile(envFile); err != nil {
			return err
		}
		if err := applyEnvDefaults(cmd, map[string]string{
			"log":     EnvLog,
			"config":  EnvConfig,
			"db":      EnvDB,
			"csv-dir": EnvCSVDir,
			"xlsx":    EnvXLSX,
			"workers": EnvWorkers,
		}); err != nil {
			return err
		}
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
		return nil
	},
}

// runCmd executes a single trial using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one trial",
	Run: func(cmd *cobra.Command, args []string) {
		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Invalid trace level: %s", traceLevel)
		}
		params := sim.NewSimulationParameters(serveTime, servers, customers, window)
		logrus.Infof("Starting trial %s seed=%d", params, seed)

		startTime := time.Now()
		rng := sim.NewPartitionedRNG(sim.NewSimulationKey(seed)).ForSubsystem(sim.SubsystemArrivals)
		res, err := sim.RunTrial(params, rng, trace.TraceConfig{Level: trace.TraceLevel(traceLevel)})
		if err != nil {
			logrus.Fatalf("Trial failed: %v", err)
		}
		res.Seed = seed

		exporter, err := openExporter(xlsxPath, csvDir, dbPath)
		if err != nil {
			logrus.Fatalf("Opening exporter: %v", err)
		}
		if exporter != nil {
			if err := exporter.Export(res); err != nil {
				logrus.Errorf("Exporting trial: %v", err)
			}
			if err := exporter.Close(); err != nil {
				logrus.Errorf("Closing exporter: %v", err)
			}
		}

		printTrial(cmd.OutOrStdout(), res)
		logrus.Infof("RUNTIME: %.2fs", time.Since(startTime).Seconds())
	},
}

// sweepCmd executes the full parameter grid
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run one trial per serve time × server count × window combination",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := DefaultSweepConfig()
		if configPath != "" {
			loaded, err := LoadSweepConfig(configPath)
			if err != nil {
				logrus.Fatalf("%v", err)
			}
			cfg = loaded
		}
		// CLI flags override the file only when given explicitly
		if cmd.Flags().Changed("seed") {
			cfg.Seed = seed
		}
		if cmd.Flags().Changed("workers") {
			cfg.Workers = workers
		}
		if cmd.Flags().Changed("trace") {
			cfg.Trace = traceLevel
		}
		if cmd.Flags().Changed("customers") {
			cfg.CustomerCount = customers
		}
		if err := cfg.Validate(); err != nil {
			logrus.Fatalf("%v", err)
		}

		exporter, err := openExporter(xlsxPath, csvDir, dbPath)
		if err != nil {
			logrus.Fatalf("Opening exporter: %v", err)
		}

		registry := prometheus.NewRegistry()
		runner := sweep.NewRunner(cfg.Grid(), sweep.Config{
			Seed:    cfg.Seed,
			Workers: cfg.Workers,
			Trace:   trace.TraceConfig{Level: trace.TraceLevel(cfg.Trace)},
		}, exporter, sweep.NewMetrics(registry))

		ctx := cmd.Context()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		report, err := runner.Run(ctx)
		if exporter != nil {
			if cerr := exporter.Close(); cerr != nil {
				logrus.Errorf("Closing exporter: %v", cerr)
			}
		}
		if err != nil {
			logrus.Fatalf("Sweep aborted: %v", err)
		}

		printSweep(cmd.OutOrStdout(), report)
		if metricsOut != "" {
			if err := prometheus.WriteToTextfile(metricsOut, registry); err != nil {
				logrus.Errorf("Writing metrics to %s: %v", metricsOut, err)
			}
		}
	},
}

// openExporter returns nil when no destination is configured.
func openExporter(xlsxPath, csvDir, dbPath string) (export.Exporter, error) {
	var sinks export.Multi
	if xlsxPath != "" {
		wb, err := export.NewWorkbook(xlsxPath)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, wb)
	}
	if csvDir != "" {
		wb, err := export.NewCSVWorkbook(csvDir)
		if err != nil {
			_ = sinks.Close()
			return nil, err
		}
		sinks = append(sinks, wb)
	}
	if dbPath != "" {
		store, err := export.NewSQLiteStore(dbPath)
		if err != nil {
			_ = sinks.Close()
			return nil, err
		}
		sinks = append(sinks, store)
	}
	if len(sinks) == 0 {
		return nil, nil
	}
	return sinks, nil
}

// Execute runs the CLI root command
func Execute() {
	// Fatal logs must still flush buffered exports.
	logrus.StandardLogger().ExitFunc = atexit.Exit

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		atexit.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "File of KEY=VALUE defaults ("+EnvLog+", "+EnvConfig+", ...)")

	for _, c := range []*cobra.Command{runCmd, sweepCmd} {
		c.Flags().Int64Var(&seed, "seed", 42, "Master seed for arrival generation")
		c.Flags().StringVar(&traceLevel, "trace", string(trace.TraceLevelNone), "Event trace level (none, events)")
		c.Flags().StringVar(&xlsxPath, "xlsx", "", "Write each trial as a sheet of this Excel workbook")
		c.Flags().StringVar(&csvDir, "csv-dir", "", "Write each trial as a CSV sheet into this directory")
		c.Flags().StringVar(&dbPath, "db", "", "Write each trial into this SQLite database")
		c.Flags().IntVar(&customers, "customers", 1250, "Number of customers arriving in the window")
	}

	runCmd.Flags().Float64Var(&serveTime, "serve-time", 10, "Service duration per customer (s)")
	runCmd.Flags().IntVar(&servers, "servers", 1, "Number of servers")
	runCmd.Flags().Float64Var(&window, "window", 3600, "Arrival window (s)")

	sweepCmd.Flags().StringVar(&configPath, "config", "", "Sweep definition YAML (defaults to the built-in lunch-queue study)")
	sweepCmd.Flags().IntVar(&workers, "workers", 0, "Concurrent trials (0 = GOMAXPROCS)")
	sweepCmd.Flags().StringVar(&metricsOut, "metrics-out", "", "Write Prometheus sweep metrics to this textfile")
	sweepCmd.Flags().DurationVar(&timeout, "timeout", 0, "Wall-clock budget for the whole sweep (0 = none)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(sweepCmd)
}
