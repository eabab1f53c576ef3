package cmd

import (
	"github.com/spf13/cobra"
)

var runParallelFlag uint
var runTopFlag uint

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [paths...]",
		Short: "Score JavaScript sources",
		Long:  runLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Run(runArgsFrom(cmd, parsePaths(args)))
		},
	}

	configureRunFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func configureRunFlags(cmd *cobra.Command) {
	cmd.Flags().UintVarP(&runParallelFlag, runParallelFlagName, "p", defaultRunParallel, "number of parallel workers for scoring")
	cmd.Flags().UintVarP(&runTopFlag, topFlagName, "t", defaultTop, "limit the report to the heaviest N scopes (0 shows all)")
}
