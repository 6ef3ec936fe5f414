package list

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sagan/respimg/cmd"
	"github.com/sagan/respimg/features/batch"
	"github.com/sagan/respimg/util"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the source images found and the output files they would produce",
	Long: `List the source images found and the output files they would produce.

It outputs one "<source>\t<output>" line per (source, width) to stdout. No file is read or written.

Example:
  respimg list -i raw -o dist`,
	Args: cobra.ExactArgs(0),
	RunE: doList,
}

var (
	flagJson bool
)

func init() {
	listCmd.Flags().BoolVarP(&flagJson, "json", "", false, "Output JSON lines, one task object per line")
	cmd.RootCmd.AddCommand(listCmd)
}

func doList(command *cobra.Command, args []string) error {
	cfg, err := cmd.LoadConfig(command)
	if err != nil {
		return err
	}
	sources, tasks, err := batch.New(cfg).Plan()
	if err != nil {
		return err
	}
	for _, task := range tasks {
		if flagJson {
			fmt.Fprintln(command.OutOrStdout(), util.ToJson(task))
		} else {
			fmt.Fprintf(command.OutOrStdout(), "%s\t%s\n", task.Source, task.Output)
		}
	}
	log.Printf("Found %d images, %d output files", len(sources), len(tasks))
	return nil
}
