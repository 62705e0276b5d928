// Package cli parses command-line arguments into an app.Config.
package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/expgridgo/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("expgridgo", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
expgridgo - expands a declarative benchmark suite into executed jobs or
cluster submission scripts.

Usage:
  expgridgo [options] [SUITE_PATH]

Arguments:
  SUITE_PATH
    Path to the suite definition (.hcl file).

Options:
`)
		flagSet.PrintDefaults()
	}

	suiteFlag := flagSet.String("suite", "", "Path to the suite definition file.")
	catalogFlag := flagSet.String("catalog", "", "Path to the input catalog file or directory.")
	machineFlag := flagSet.String("machine", "shared", "Target machine: 'shared', 'supermuc', 'horeka' or 'generic-job-file'.")
	maxCoresFlag := flagSet.Int("max-cores", 0, "Skip core counts above this on the shared machine. 0 is unlimited.")
	dataDirFlag := flagSet.String("experiment-data-dir", "experiments", "Root directory for experiment data.")
	outputDirFlag := flagSet.String("output-dir", "", "Directory for logs and result files. Defaults below the data directory.")
	jobOutputDirFlag := flagSet.String("job-output-dir", "", "Directory for generated job scripts. Defaults below the data directory.")
	commandTemplateFlag := flagSet.String("command-template", "", "Override for the per-job command template.")
	sbatchTemplateFlag := flagSet.String("sbatch-template", "", "Override for the job-script template.")
	buildDirFlag := flagSet.String("build-dir", "", "Directory benchmark executables are resolved from. Defaults to $BUILD_DIR, then ../build.")
	moduleConfigFlag := flagSet.String("module-config", "", "Module environment to restore inside job scripts.")
	moduleRestoreCmdFlag := flagSet.String("module-restore-cmd", "module restore", "Command used to restore the module environment.")
	tasksPerNodeFlag := flagSet.Int("tasks-per-node", 0, "Override the machine's tasks-per-node default.")
	timeLimitFlag := flagSet.Int("time-limit", 0, "Default per-job time limit in minutes.")
	testFlag := flagSet.Bool("test", false, "Use the machine's test partition.")
	omitJSONFlag := flagSet.Bool("omit-json-output-path", false, "Do not inject a json_output_path config field into jobs.")
	omitSeedFlag := flagSet.Bool("omit-seed", false, "Do not inject a seed config field into jobs.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	suitePath := *suiteFlag
	if suitePath == "" && flagSet.NArg() > 0 {
		suitePath = flagSet.Arg(0)
	}
	if suitePath == "" {
		slog.Debug("No suite path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		SuitePath:          suitePath,
		CatalogPath:        *catalogFlag,
		Machine:            *machineFlag,
		DataDir:            *dataDirFlag,
		OutputDir:          *outputDirFlag,
		JobOutputDir:       *jobOutputDirFlag,
		CommandTemplate:    *commandTemplateFlag,
		SbatchTemplate:     *sbatchTemplateFlag,
		BuildDir:           *buildDirFlag,
		ModuleConfig:       *moduleConfigFlag,
		ModuleRestoreCmd:   *moduleRestoreCmdFlag,
		MaxCores:           *maxCoresFlag,
		TasksPerNode:       *tasksPerNodeFlag,
		TimeLimit:          *timeLimitFlag,
		UseTestPartition:   *testFlag,
		OmitJSONOutputPath: *omitJSONFlag,
		OmitSeed:           *omitSeedFlag,
		LogFormat:          logFormat,
		LogLevel:           logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.")
	return config, false, nil
}
