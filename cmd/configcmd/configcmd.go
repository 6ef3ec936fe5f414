package configcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sagan/respimg/cmd"
	"github.com/sagan/respimg/constants"
	"github.com/sagan/respimg/util"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective config",
	Long: `Print the effective config, after applying config file, env and flags, to stdout.

The output can be saved and used as --config file. E.g. :
  respimg config -w 800,400 > respimg.toml
  respimg -c respimg.toml`,
	Args: cobra.ExactArgs(0),
	RunE: doConfig,
}

var (
	flagFormat string
)

func init() {
	configCmd.Flags().StringVarP(&flagFormat, "format", "f", constants.FORMAT_TOML,
		`Output format: "toml", "yaml" or "json"`)
	cmd.RootCmd.AddCommand(configCmd)
}

func doConfig(command *cobra.Command, args []string) error {
	if util.StructuredFormat(flagFormat) == "" {
		return fmt.Errorf("invalid format %q", flagFormat)
	}
	cfg, err := cmd.LoadConfig(command)
	if err != nil {
		return err
	}
	data, err := util.Marshal(flagFormat, cfg)
	if err != nil {
		return err
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	_, err = command.OutOrStdout().Write(data)
	return err
}
