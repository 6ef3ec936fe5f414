package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sagan/respimg/constants"
	"github.com/sagan/respimg/version"
)

var RootCmd = &cobra.Command{
	Use:   "respimg",
	Short: "respimg " + version.Version,
	Long: `respimg ` + version.Version + "." + `
Batch convert images to resized webp variants for responsive web pages.

Without any flag, it converts every jpg / jpeg / png / gif / webp file found (recursively) in "./raw"
to "./img/<name>@<width>w.webp" for widths 1400, 1057, 640 and 320, at quality 80.
Existing output files are overwritten. A failed conversion is logged and never stops the others.

Examples:
  respimg
  respimg -i photos -o dist -w 800,400 --mode sequential
  respimg -c respimg.toml --dry-run`,
	Args:              cobra.NoArgs,
	PersistentPreRunE: setupLogging,
	RunE:              doConvert,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

var flagLogLevel string

func init() {
	RootCmd.PersistentFlags().StringVarP(&flagLogLevel, "log-level", "", "",
		`Log level: "debug", "info", "warn", "error". If not set, it uses `+constants.ENV_LOG_LEVEL+
			` env, then fallbacks to "info"`)
	addConfigFlags(RootCmd)
}

func setupLogging(cmd *cobra.Command, args []string) error {
	level := flagLogLevel
	if level == "" {
		level = os.Getenv(constants.ENV_LOG_LEVEL)
	}
	if level == "" {
		return nil
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	log.SetLevel(lvl)
	return nil
}

// Execute runs RootCmd. The first interrupt (Ctrl+C) cancels the command context,
// a second one kills the process.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	go func() {
		<-ctx.Done()
		stop()
	}()
	err := RootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Printf("%v\n", err)
		os.Exit(1)
	}
}
