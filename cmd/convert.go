package cmd

import (
	"os"

	"github.com/schollz/progressbar/v3"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sagan/respimg/features/batch"
)

var (
	flagDryRun   bool
	flagProgress bool
	flagStrict   bool
)

func init() {
	RootCmd.Flags().BoolVarP(&flagDryRun, "dry-run", "d", false, "Dry run. Only print the files that would be created")
	RootCmd.Flags().BoolVarP(&flagProgress, "progress", "", false, "Show a progress bar on stderr")
	RootCmd.Flags().BoolVarP(&flagStrict, "strict", "", false,
		"Exit with non-zero code if any conversion failed. By default failures are only logged")
}

func doConvert(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig(cmd)
	if err != nil {
		return err
	}
	log.Debugf("Config: %+v", *cfg)

	converter := batch.New(cfg)
	converter.DryRun = flagDryRun
	if flagProgress {
		var bar *progressbar.ProgressBar
		converter.OnStart = func(tasks int) {
			bar = progressbar.NewOptions(tasks,
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionSetDescription("Converting"),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)
		}
		converter.OnResult = func(*batch.Result) {
			bar.Add(1)
		}
		defer func() {
			if bar != nil {
				bar.Finish()
			}
		}()
	}

	report, err := converter.Run(cmd.Context())
	if err != nil {
		return err
	}
	if flagStrict {
		return report.Err()
	}
	return nil
}
