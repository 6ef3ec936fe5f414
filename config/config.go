package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/sagan/respimg/constants"
	"github.com/sagan/respimg/util"
)

// Config is the batch conversion configuration.
// Zero Workers means runtime.NumCPU(); a negative value means unbounded.
type Config struct {
	InputDir    string   `json:"input_dir" yaml:"input_dir" toml:"input_dir" validate:"required"`
	OutputDir   string   `json:"output_dir" yaml:"output_dir" toml:"output_dir" validate:"required"`
	Widths      []int    `json:"widths" yaml:"widths" toml:"widths" validate:"required,min=1,dive,gt=0"`
	Quality     int      `json:"quality" yaml:"quality" toml:"quality" validate:"min=1,max=100"`
	Extensions  []string `json:"extensions" yaml:"extensions" toml:"extensions" validate:"required,min=1,dive,required"`
	Concurrency string   `json:"concurrency" yaml:"concurrency" toml:"concurrency" validate:"oneof=parallel sequential"`
	Workers     int      `json:"workers" yaml:"workers" toml:"workers"`
	Upscale     string   `json:"upscale" yaml:"upscale" toml:"upscale" validate:"oneof=enlarge skip clamp"`
	AutoOrient  bool     `json:"auto_orient" yaml:"auto_orient" toml:"auto_orient"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		InputDir:    constants.DEFAULT_INPUT_DIR,
		OutputDir:   constants.DEFAULT_OUTPUT_DIR,
		Widths:      slices.Clone(constants.DEFAULT_WIDTHS),
		Quality:     constants.DEFAULT_QUALITY,
		Extensions:  slices.Clone(constants.DEFAULT_EXTENSIONS),
		Concurrency: constants.MODE_PARALLEL,
		Upscale:     constants.UPSCALE_ENLARGE,
	}
}

// Load reads a .toml / .yaml / .yml / .json config file on top of the defaults.
// Keys missing from the file keep their default values. Unknown keys are an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := cfg.decode(filepath.Ext(path), data); err != nil {
		return nil, fmt.Errorf("failed to parse config file %q: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) decode(ext string, data []byte) (err error) {
	switch util.StructuredFormat(ext) {
	case constants.FORMAT_TOML:
		err = toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(c)
	case constants.FORMAT_YAML:
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		err = decoder.Decode(c)
		if errors.Is(err, io.EOF) {
			// empty document
			err = nil
		}
	case constants.FORMAT_JSON:
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		err = decoder.Decode(c)
	default:
		err = fmt.Errorf("unsupported config file type %q", ext)
	}
	return err
}

// ApplyEnv overrides config values from RESPIMG_* env variables that are set and non-empty.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(constants.ENV_INPUT); v != "" {
		c.InputDir = v
	}
	if v := os.Getenv(constants.ENV_OUTPUT); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv(constants.ENV_WIDTHS); v != "" {
		widths, err := util.ParseIntList(v)
		if err != nil {
			return fmt.Errorf("%s: %w", constants.ENV_WIDTHS, err)
		}
		c.Widths = widths
	}
	if v := os.Getenv(constants.ENV_QUALITY); v != "" {
		quality, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", constants.ENV_QUALITY, err)
		}
		c.Quality = quality
	}
	if v := os.Getenv(constants.ENV_MODE); v != "" {
		c.Concurrency = v
	}
	if v := os.Getenv(constants.ENV_WORKERS); v != "" {
		workers, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", constants.ENV_WORKERS, err)
		}
		c.Workers = workers
	}
	if v := os.Getenv(constants.ENV_UPSCALE); v != "" {
		c.Upscale = v
	}
	if v := os.Getenv(constants.ENV_EXTENSIONS); v != "" {
		c.Extensions = util.SplitList(v)
	}
	return nil
}

// Normalize lower-cases mode / policy names and extensions, and strips leading dots from extensions.
func (c *Config) Normalize() {
	c.Concurrency = strings.ToLower(strings.TrimSpace(c.Concurrency))
	c.Upscale = strings.ToLower(strings.TrimSpace(c.Upscale))
	c.Extensions = util.Map(c.Extensions, func(ext string) string {
		return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
	})
}

// Validate checks field constraints. Call Normalize first.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := util.Map(verrs, func(fe validator.FieldError) string {
				return fmt.Sprintf("%s: failed %q (value %v)", fe.Namespace(), fe.Tag()+" "+fe.Param(), fe.Value())
			})
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	if util.HasDuplicates(c.Widths) {
		return fmt.Errorf("invalid config: widths has duplicate value(s)")
	}
	for _, ext := range c.Extensions {
		if strings.ContainsAny(ext, `/\*?[]{},`) {
			return fmt.Errorf("invalid config: extension %q contains invalid characters", ext)
		}
	}
	return nil
}
