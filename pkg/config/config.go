// Package config loads the fcss configuration file.
//
// A configuration names the reg source (inline text or a file), the
// directories whose templates are watched, and how imported files are
// cached. Files are decoded by extension: .toml, .yaml/.yml or .json.
// Unknown keys are rejected so that typos surface instead of being ignored.
//
//	reg_file = "res/main.reg"
//	watch_dir = ["src/components", "src/views"]
//	suffix = "vue"
//	cache = "file"
//	cache_ttl = "1h"
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	fcsserrors "github.com/matzehuels/fcss/pkg/errors"
)

// Cache backends.
const (
	CacheMemory = "memory"
	CacheFile   = "file"
	CacheNone   = "none"
)

// Defaults applied before a file is decoded.
const (
	DefaultSuffix   = "vue"
	DefaultCache    = CacheMemory
	DefaultCacheTTL = 10 * time.Minute
)

// Config is the decoded configuration.
type Config struct {
	// Reg is inline reg source. Exactly one of Reg and RegFile is set.
	Reg string `toml:"reg" yaml:"reg" json:"reg"`
	// RegFile is the path of the root reg file.
	RegFile string `toml:"reg_file" yaml:"reg_file" json:"reg_file"`
	// WatchDirs are walked for template files ending in Suffix.
	WatchDirs []string `toml:"watch_dir" yaml:"watch_dir" json:"watch_dir"`
	Suffix    string   `toml:"suffix" yaml:"suffix" json:"suffix"`
	// Cache selects the import cache backend: memory, file or none.
	Cache    string   `toml:"cache" yaml:"cache" json:"cache"`
	CacheTTL Duration `toml:"cache_ttl" yaml:"cache_ttl" json:"cache_ttl"`
	// MaxRounds caps import nesting; zero means unlimited.
	MaxRounds int `toml:"max_rounds" yaml:"max_rounds" json:"max_rounds"`
}

// Default returns a configuration holding only defaults.
func Default() *Config {
	return &Config{
		Suffix:   DefaultSuffix,
		Cache:    DefaultCache,
		CacheTTL: Duration{DefaultCacheTTL},
	}
}

// Load reads the file at path over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fcsserrors.Wrap(fcsserrors.ErrCodeFileNotFound, err, "config file %s not found", path)
	}
	if err != nil {
		return nil, fcsserrors.Wrap(fcsserrors.ErrCodeIO, err, "read config file %s", path)
	}

	cfg := Default()
	if err := Decode(data, strings.ToLower(filepath.Ext(path)), cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode decodes data in the format named by ext (".toml", ".yaml", ".yml"
// or ".json") into cfg.
func Decode(data []byte, ext string, cfg *Config) error {
	var err error
	switch ext {
	case ".toml":
		var md toml.MetaData
		md, err = toml.Decode(string(data), cfg)
		if err == nil {
			if undecoded := md.Undecoded(); len(undecoded) > 0 {
				err = fmt.Errorf("unknown key %q", undecoded[0].String())
			}
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err = dec.Decode(cfg); errors.Is(err, io.EOF) {
			err = nil
		}
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(cfg)
	default:
		return fcsserrors.New(fcsserrors.ErrCodeUnsupported, "unsupported config format %q (use .toml, .yaml or .json)", ext)
	}
	if err != nil {
		return fcsserrors.Wrap(fcsserrors.ErrCodeInvalidConfig, err, "decode %s config", strings.TrimPrefix(ext, "."))
	}
	return nil
}

var cacheBackends = []string{CacheMemory, CacheFile, CacheNone}

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	var errs error

	switch {
	case c.Reg == "" && c.RegFile == "":
		errs = multierr.Append(errs, errors.New("one of reg or reg_file is required"))
	case c.Reg != "" && c.RegFile != "":
		errs = multierr.Append(errs, errors.New("reg and reg_file are mutually exclusive"))
	case c.RegFile != "":
		errs = multierr.Append(errs, fcsserrors.ValidateImportPath(c.RegFile))
	}
	for i, dir := range c.WatchDirs {
		if strings.TrimSpace(dir) == "" {
			errs = multierr.Append(errs, fmt.Errorf("watch_dir[%d] is empty", i))
		}
	}
	errs = multierr.Append(errs, fcsserrors.ValidateSuffix(c.Suffix))
	if !slices.Contains(cacheBackends, c.Cache) {
		errs = multierr.Append(errs, fmt.Errorf("cache must be one of %s, got %q", strings.Join(cacheBackends, ", "), c.Cache))
	}
	if c.CacheTTL.Duration < 0 {
		errs = multierr.Append(errs, fmt.Errorf("cache_ttl cannot be negative"))
	}
	if c.MaxRounds < 0 {
		errs = multierr.Append(errs, fmt.Errorf("max_rounds cannot be negative"))
	}

	if errs != nil {
		return fcsserrors.Wrap(fcsserrors.ErrCodeInvalidConfig, errs, "invalid configuration")
	}
	return nil
}

// Duration is a time.Duration written as a string such as "90s" or "1h".
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}
