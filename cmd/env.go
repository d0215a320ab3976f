package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Environment variables that supply defaults for flags left unset.
const (
	EnvConfig  = "FCFS_SIM_CONFIG"
	EnvDB      = "FCFS_SIM_DB"
	EnvCSVDir  = "FCFS_SIM_CSV_DIR"
	EnvXLSX    = "FCFS_SIM_XLSX"
	EnvLog     = "FCFS_SIM_LOG"
	EnvWorkers = "FCFS_SIM_WORKERS"
)

// loadEnvFile loads KEY=VALUE pairs from path into the process environment.
// A missing file is not an error; variables already set are never overridden.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading env file %s: %w", path, err)
	}
	logrus.Debugf("Loaded environment from %s", path)
	return nil
}

// applyEnvDefaults sets each flag from its environment variable unless the
// flag was given on the command line. bindings maps flag name to variable.
func applyEnvDefaults(cmd *cobra.Command, bindings map[string]string) error {
	for name, key := range bindings {
		flag := cmd.Flags().Lookup(name)
		if flag == nil || flag.Changed {
			continue
		}
		val, ok := os.LookupEnv(key)
		if !ok || val == "" {
			continue
		}
		if err := cmd.Flags().Set(name, val); err != nil {
			return fmt.Errorf("%s=%q: %w", key, val, err)
		}
	}
	return nil
}
