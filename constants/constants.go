package constants

const (
	// Env variable names

	ENV_INPUT      = "RESPIMG_INPUT"
	ENV_OUTPUT     = "RESPIMG_OUTPUT"
	ENV_WIDTHS     = "RESPIMG_WIDTHS" // comma-separated, e.g. "1400,640"
	ENV_QUALITY    = "RESPIMG_QUALITY"
	ENV_MODE       = "RESPIMG_MODE"
	ENV_WORKERS    = "RESPIMG_WORKERS"
	ENV_UPSCALE    = "RESPIMG_UPSCALE"
	ENV_EXTENSIONS = "RESPIMG_EXTENSIONS"
	ENV_LOG_LEVEL  = "RESPIMG_LOG_LEVEL"

	DEFAULT_INPUT_DIR  = "./raw"
	DEFAULT_OUTPUT_DIR = "./img"
	DEFAULT_QUALITY    = 80

	MODE_PARALLEL   = "parallel"   // launch all tasks, wait for all to settle
	MODE_SEQUENTIAL = "sequential" // one task at a time, discovery order then width order

	UPSCALE_ENLARGE = "enlarge" // always resize to the exact target width
	UPSCALE_SKIP    = "skip"    // no artifact when target width > source width
	UPSCALE_CLAMP   = "clamp"   // encode at source width, keep the @<width>w name

	OUTPUT_EXT = ".webp"

	FORMAT_TOML = "toml"
	FORMAT_YAML = "yaml"
	FORMAT_JSON = "json"
)

// Slices can't be const. Always copy before modifying.
var (
	DEFAULT_WIDTHS     = []int{1400, 1057, 640, 320}
	DEFAULT_EXTENSIONS = []string{"jpg", "jpeg", "png", "gif", "webp"}
)

const HELP_MODE = `Concurrency mode: "` + MODE_PARALLEL + `" (all conversions run concurrently, bounded by --workers) ` +
	`or "` + MODE_SEQUENTIAL + `" (one at a time, in discovery order then width order). ` +
	`In both modes a failed conversion is logged and never stops the others`

const HELP_UPSCALE = `What to do when a target width is larger than the source image width: ` +
	`"` + UPSCALE_ENLARGE + `" (resize up to the exact target width), ` +
	`"` + UPSCALE_SKIP + `" (produce no file for that width) or ` +
	`"` + UPSCALE_CLAMP + `" (keep the source width, still named @<width>w)`

const HELP_CONFIG = `Config file (.toml / .yaml / .yml / .json). ` +
	`Precedence: flags > ` + "RESPIMG_*" + ` env > config file > built-in defaults`
