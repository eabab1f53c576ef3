// Package cmd provides the root command and CLI setup for heft.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mouse-blink/heft/internal/adapter"
	"github.com/mouse-blink/heft/internal/controller"
	"github.com/mouse-blink/heft/internal/domain"
	m "github.com/mouse-blink/heft/internal/model"
)

var jsFileAdapter adapter.JSFileAdapter
var sourceFSAdapter adapter.SourceFSAdapter
var reportStore adapter.ReportStore
var workflow domain.Workflow
var ui controller.UI

// reportsOutputDirFlag is a root-level flag shared by commands that read and
// write score reports.
var reportsOutputDirFlag string

// excludePatterns is a root-level flag that filters files out of every scan.
var excludePatterns []string

// verboseFlag raises the log level to Debug.
var verboseFlag bool

func init() {
	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	jsFileAdapter = adapter.NewLocalJSFileAdapter()
	sourceFSAdapter = adapter.NewLocalSourceFSAdapter()
	reportStore = adapter.NewLocalReportStore()
	workflow = domain.NewWorkflow(
		sourceFSAdapter,
		jsFileAdapter,
		reportStore,
		ui,
		weightsFromConfig(),
	)
}

const pathPatternsHelp = `Supports Go-style path patterns:
  - ./...          recursively scan current directory
  - ./src/...      recursively scan src directory
  - ./lib ./src    scan multiple directories`

const rootLongDescription = `Heft scores how heavy JavaScript code is to read and maintain by charging
weighted penalties to branches, functions and calls, and attributing each
penalty to the innermost scope that contains it.

` + pathPatternsHelp

const runLongDescription = `Score the JavaScript files under the given paths (default: current
directory) and report the heaviest scopes first.

` + pathPatternsHelp

const listLongDescription = `List the source files a scoring run would cover, with their content
hashes.

` + pathPatternsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "heft [paths...]",
		Short: "JavaScript code complexity scorer",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Run(runArgsFrom(cmd, parsePaths(args)))
		},
	}

	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&reportsOutputDirFlag, outputFlagName, "o",
			defaultReportsDir,
			"output directory for score reports",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().StringArrayVarP(&excludePatterns, excludeFlagName, "x", nil, "exclude files matching regex (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(excludeFlagName), excludeConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", defaultLogVerbose, "log debug detail to the log file")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// runArgsFrom resolves a scoring run's arguments. Flags set on the executed
// command override heft.yaml and HEFT_* environment values; commands that do
// not carry a flag fall through to the configured value.
func runArgsFrom(cmd *cobra.Command, paths []m.Path) domain.RunArgs {
	threads := viper.GetUint(runParallelConfigKey)
	if cmd.Flags().Changed(runParallelFlagName) {
		threads = runParallelFlag
	}

	top := viper.GetUint(topConfigKey)
	if cmd.Flags().Changed(topFlagName) {
		top = runTopFlag
	}

	return domain.RunArgs{
		EstimateArgs: domain.EstimateArgs{
			Paths:   paths,
			Exclude: viper.GetStringSlice(excludeConfigKey),
		},
		Reports: m.Path(viper.GetString(outputFlagName)),
		Threads: threads,
		Top:     top,
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// parsePaths converts positional arguments into scan roots, defaulting to
// the current directory.
func parsePaths(args []string) []m.Path {
	if len(args) == 0 {
		return []m.Path{m.Path(".")}
	}

	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
