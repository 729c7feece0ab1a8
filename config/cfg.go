package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	validator "github.com/go-playground/validator/v10"
	"github.com/rupor-github/gencfg"
	"golang.org/x/text/encoding/ianaindex"
	yaml "gopkg.in/yaml.v3"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	ConversionConfig struct {
		Include     []string `yaml:"include" validate:"min=1,dive,required"`
		Exclude     []string `yaml:"exclude" validate:"dive,required"`
		Scope       string   `yaml:"scope" validate:"oneof=bounded open"`
		Workers     int      `yaml:"workers" validate:"min=0,max=256"`
		RestoreCase bool     `yaml:"restore_case"`
		Encoding    string   `yaml:"encoding"`
	}

	Config struct {
		Version    int              `yaml:"version" validate:"eq=1"`
		Conversion ConversionConfig `yaml:"conversion"`
		Logging    LoggingConfig    `yaml:"logging"`
		Reporting  ReporterConfig   `yaml:"reporting"`
	}
)

// checkConversion validates what tags cannot: glob pattern syntax and input
// encoding name.
func checkConversion(sl validator.StructLevel) {
	cfg := sl.Current().Interface().(Config)
	conv := cfg.Conversion

	for _, p := range conv.Include {
		if !doublestar.ValidatePattern(p) {
			sl.ReportError(conv.Include, "Include", "include", "globpattern", p)
		}
	}
	for _, p := range conv.Exclude {
		if !doublestar.ValidatePattern(p) {
			sl.ReportError(conv.Exclude, "Exclude", "exclude", "globpattern", p)
		}
	}
	if len(conv.Encoding) > 0 {
		if enc, err := ianaindex.IANA.Encoding(conv.Encoding); err != nil || enc == nil {
			sl.ReportError(conv.Encoding, "Encoding", "encoding", "ianacharset", conv.Encoding)
		}
	}
}

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg, gencfg.WithAdditionalChecks(checkConversion)); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
