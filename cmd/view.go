package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mouse-blink/heft/internal/domain"
	m "github.com/mouse-blink/heft/internal/model"
)

var viewTopFlag uint

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "View previously saved score reports",
		Long:  "View previously saved score reports from a reports directory.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			top := viper.GetUint(topConfigKey)
			if cmd.Flags().Changed(topFlagName) {
				top = viewTopFlag
			}

			return workflow.View(domain.ViewArgs{
				Reports: m.Path(viper.GetString(outputFlagName)),
				Top:     top,
			})
		},
	}

	cmd.Flags().UintVarP(&viewTopFlag, topFlagName, "t", defaultTop, "limit the report to the heaviest N scopes (0 shows all)")

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
