// Package config loads evaluator settings from YAML.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultMaxCallDepth bounds recursion when the file does not say otherwise.
const DefaultMaxCallDepth = 10000

// Config is the validated configuration.
type Config struct {
	Path        string
	Interpreter InterpreterConfig
	Logging     LoggingConfig
}

// InterpreterConfig tunes evaluation. MaxCallDepth 0 disables the limit.
type InterpreterConfig struct {
	MaxCallDepth int
}

// LoggingConfig selects the slog handler.
type LoggingConfig struct {
	Level  slog.Level
	Format LogFormat
}

type LogFormat string

const (
	LogFormatText LogFormat = "text"
	LogFormatJSON LogFormat = "json"
)

// ValidationError aggregates configuration failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

type configFile struct {
	Interpreter *interpreterFile `yaml:"interpreter"`
	Logging     *loggingFile     `yaml:"logging"`
}

type interpreterFile struct {
	MaxCallDepth *int `yaml:"max_call_depth"`
}

type loggingFile struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	return &Config{
		Interpreter: InterpreterConfig{MaxCallDepth: DefaultMaxCallDepth},
		Logging:     LoggingConfig{Level: slog.LevelInfo, Format: LogFormatText},
	}
}

// Load parses a YAML configuration file from disk.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	cfg, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", absPath, err)
	}
	cfg.Path = absPath
	return cfg, nil
}

// Parse decodes YAML configuration. Unknown keys are rejected; an empty
// document yields the defaults.
func Parse(r io.Reader) (*Config, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var raw configFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return Default(), nil
		}
		return nil, fmt.Errorf("parse: %w", err)
	}
	return raw.toConfig()
}

func (raw configFile) toConfig() (*Config, error) {
	cfg := Default()
	var errs ValidationError

	if raw.Interpreter != nil && raw.Interpreter.MaxCallDepth != nil {
		depth := *raw.Interpreter.MaxCallDepth
		if depth < 0 {
			errs.Issues = append(errs.Issues, fmt.Sprintf("interpreter.max_call_depth must be >= 0, got %d", depth))
		} else {
			cfg.Interpreter.MaxCallDepth = depth
		}
	}

	if raw.Logging != nil {
		if raw.Logging.Level != "" {
			var level slog.Level
			if err := level.UnmarshalText([]byte(raw.Logging.Level)); err != nil {
				errs.Issues = append(errs.Issues, fmt.Sprintf("logging.level %q is not a log level", raw.Logging.Level))
			} else {
				cfg.Logging.Level = level
			}
		}
		switch LogFormat(strings.ToLower(raw.Logging.Format)) {
		case "":
		case LogFormatText:
			cfg.Logging.Format = LogFormatText
		case LogFormatJSON:
			cfg.Logging.Format = LogFormatJSON
		default:
			errs.Issues = append(errs.Issues, fmt.Sprintf("logging.format must be text or json, got %q", raw.Logging.Format))
		}
	}

	if len(errs.Issues) > 0 {
		return nil, &errs
	}
	return cfg, nil
}
