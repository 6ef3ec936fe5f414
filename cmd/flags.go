package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sagan/respimg/config"
	"github.com/sagan/respimg/constants"
)

// Flags shaping the config. Persistent so that subcommands (list, config) resolve the same config.
var (
	flagConfig     string
	flagInput      string // input dir
	flagOutput     string // output dir
	flagWidths     []int
	flagQuality    int
	flagMode       string
	flagWorkers    int
	flagUpscale    string
	flagExtensions []string
	flagAutoOrient bool
)

func addConfigFlags(c *cobra.Command) {
	flags := c.PersistentFlags()
	flags.StringVarP(&flagConfig, "config", "c", "", constants.HELP_CONFIG)
	flags.StringVarP(&flagInput, "input", "i", constants.DEFAULT_INPUT_DIR,
		"Input dir. It's searched recursively")
	flags.StringVarP(&flagOutput, "output", "o", constants.DEFAULT_OUTPUT_DIR,
		"Output dir. It will be created if not exists. Output files are placed flat in it")
	flags.IntSliceVarP(&flagWidths, "widths", "w", constants.DEFAULT_WIDTHS, "Target widths, comma-separated")
	flags.IntVarP(&flagQuality, "quality", "q", constants.DEFAULT_QUALITY, "webp quality (1-100)")
	flags.StringVarP(&flagMode, "mode", "m", constants.MODE_PARALLEL, constants.HELP_MODE)
	flags.IntVarP(&flagWorkers, "workers", "j", 0,
		"Max concurrent conversions in parallel mode. 0 == number of CPUs; -1 == unlimited")
	flags.StringVarP(&flagUpscale, "upscale", "", constants.UPSCALE_ENLARGE, constants.HELP_UPSCALE)
	flags.StringSliceVarP(&flagExtensions, "extensions", "", constants.DEFAULT_EXTENSIONS,
		"Source file extensions (case-insensitive), comma-separated")
	flags.BoolVarP(&flagAutoOrient, "auto-orient", "", false, "Rotate / flip jpeg images according to EXIF orientation")
}

// LoadConfig resolves the effective config of command c:
// built-in defaults < config file < RESPIMG_* env < explicitly set flags.
func LoadConfig(c *cobra.Command) (cfg *config.Config, err error) {
	if c.Flags().Changed("config") {
		if cfg, err = config.Load(flagConfig); err != nil {
			return nil, err
		}
	} else {
		cfg = config.Default()
	}
	if err = cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	applyFlags(c.Flags(), cfg)
	cfg.Normalize()
	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyFlags(flags *pflag.FlagSet, cfg *config.Config) {
	if flags.Changed("input") {
		cfg.InputDir = flagInput
	}
	if flags.Changed("output") {
		cfg.OutputDir = flagOutput
	}
	if flags.Changed("widths") {
		cfg.Widths = flagWidths
	}
	if flags.Changed("quality") {
		cfg.Quality = flagQuality
	}
	if flags.Changed("mode") {
		cfg.Concurrency = flagMode
	}
	if flags.Changed("workers") {
		cfg.Workers = flagWorkers
	}
	if flags.Changed("upscale") {
		cfg.Upscale = flagUpscale
	}
	if flags.Changed("extensions") {
		cfg.Extensions = flagExtensions
	}
	if flags.Changed("auto-orient") {
		cfg.AutoOrient = flagAutoOrient
	}
}
