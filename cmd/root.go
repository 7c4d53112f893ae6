// Package cmd provides the root command and CLI setup for ghostscan.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"ghostscan.dev/pkg/ghostscan/internal/adapter"
	"ghostscan.dev/pkg/ghostscan/internal/controller"
	"ghostscan.dev/pkg/ghostscan/internal/domain"
	m "ghostscan.dev/pkg/ghostscan/internal/model"
)

var runnerAdapter adapter.CommandRunnerAdapter
var fsAdapter adapter.ModuleFSAdapter
var ui controller.UI
var workflow domain.Workflow

func init() {
	runnerAdapter = adapter.NewLocalCommandRunnerAdapter()
	fsAdapter = adapter.NewLocalModuleFSAdapter(runnerAdapter)
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stderr))
	workflow = domain.NewWorkflow(fsAdapter, runnerAdapter, ui)
}

const rootLongDescription = `ghostscan runs "hypothesis write <module>" against every module of a
Python installation and prints the modules for which it fails unexpectedly.

Failures the generator reports on purpose ("Error: Found the '..." and
"Error: Failed to import ...") are not listed. Without a subcommand ghostscan
runs a scan.`

const scanLongDescription = `Scan every module under the standard-library root.

The root is discovered by asking the Python interpreter for its stdlib path
unless --root is given. One module name is printed per line, in completion order.`

const listLongDescription = `List the modules a scan would invoke, without invoking anything.

A per-package count table is written to stderr.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "ghostscan",
		Short:         "Smoke-test a code generator against every installed Python module",
		Long:          rootLongDescription,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runScan(cmd)
		},
	}
}

func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.StringP(rootFlagName, "r", "", "standard-library root to scan (default: ask the interpreter)")
	bindFlagToConfig(flags.Lookup(rootFlagName), rootConfigKey)

	flags.String(pythonFlagName, domain.DefaultPython, "interpreter used to discover the standard-library root")
	bindFlagToConfig(flags.Lookup(pythonFlagName), pythonConfigKey)

	flags.StringP(commandFlagName, "c", domain.DefaultCommand, "generator invoked as '<command> write <module>'")
	bindFlagToConfig(flags.Lookup(commandFlagName), commandConfigKey)

	flags.IntP(timeoutFlagName, "t", defaultTimeoutSeconds, "seconds before a single invocation is killed")
	bindFlagToConfig(flags.Lookup(timeoutFlagName), timeoutConfigKey)

	flags.IntP(parallelFlagName, "p", defaultParallel, "number of parallel workers (0 uses every CPU)")
	bindFlagToConfig(flags.Lookup(parallelFlagName), parallelConfigKey)

	flags.StringArrayP(skipFlagName, "x", nil, "additional module-name substring to skip (can be repeated)")
	bindFlagToConfig(flags.Lookup(skipFlagName), skipConfigKey)

	flags.Bool(tuiFlagName, false, "show an interactive progress view when stderr is a terminal")
	bindFlagToConfig(flags.Lookup(tuiFlagName), tuiConfigKey)

	flags.Bool(summaryFlagName, false, "print an outcome summary table on stderr when done")
	bindFlagToConfig(flags.Lookup(summaryFlagName), summaryConfigKey)

	flags.BoolP(verboseFlagName, "v", false, "log at debug level")
	bindFlagToConfig(flags.Lookup(verboseFlagName), logVerboseKey)

	flags.String(logFileFlagName, defaultLogFilename, "log file path")
	bindFlagToConfig(flags.Lookup(logFileFlagName), logFilenameKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// signalContext returns a context cancelled on interrupt or termination.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}

	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func scanArgsFromConfig() domain.ScanArgs {
	return domain.ScanArgs{
		Root:        m.Path(viper.GetString(rootConfigKey)),
		Python:      viper.GetString(pythonConfigKey),
		Command:     viper.GetString(commandConfigKey),
		Timeout:     time.Duration(viper.GetInt64(timeoutConfigKey)) * time.Second,
		Threads:     viper.GetInt(parallelConfigKey),
		Skip:        viper.GetStringSlice(skipConfigKey),
		Interactive: viper.GetBool(tuiConfigKey),
		Summary:     viper.GetBool(summaryConfigKey),
		SpillDir:    viper.GetString(spillDirConfigKey),
	}
}

func runScan(cmd *cobra.Command) error {
	ctx, stop := signalContext(cmd)
	defer stop()

	return workflow.Scan(ctx, scanArgsFromConfig())
}
