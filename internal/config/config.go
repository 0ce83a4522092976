// Package config loads optional user settings from a YAML or TOML file.
package config

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// AppName is the application directory name.
const AppName = "smartsched"

// ErrUnknownKeys is returned when a config file contains keys this version doesn't understand.
var ErrUnknownKeys = zerr.New("unknown config keys")

// candidateFiles are tried in order inside the config directory.
var candidateFiles = []string{"config.yaml", "config.yml", "config.toml"} //nolint:gochecknoglobals // read-only lookup table

// Config holds user settings. Zero-valued string fields mean "use the default".
type Config struct {
	// Output is the result format: human, json or yaml.
	Output string `yaml:"output" toml:"output"`

	// LogLevel is the minimum diagnostic level: debug, info, warn or error.
	LogLevel string `yaml:"log_level" toml:"log_level"`

	// LogFormat is the diagnostic format: text, logfmt or json.
	LogFormat string `yaml:"log_format" toml:"log_format"`

	// Color enables styled human output.
	Color bool `yaml:"color" toml:"color"`

	// Path is the file the settings were read from, empty for defaults.
	Path string `yaml:"-" toml:"-"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Output:    "human",
		LogLevel:  "warn",
		LogFormat: "text",
		Color:     true,
	}
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// FindConfigFile returns the first candidate config file present in dir, or "".
func FindConfigFile(dir string) string {
	for _, name := range candidateFiles {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// Load reads settings from path layered over Default. An empty path looks in
// DefaultConfigDir and silently falls back to defaults when nothing is there;
// an explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = FindConfigFile(DefaultConfigDir())
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read config file"), "path", path)
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = decodeTOML(data, cfg)
	} else {
		err = decodeYAML(data, cfg)
	}
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}

	cfg.Path = path
	return cfg, nil
}

func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		// An empty file decodes to EOF; keep the defaults.
		if errors.Is(err, io.EOF) {
			return nil
		}
		return zerr.Wrap(err, "invalid YAML config")
	}
	return nil
}

func decodeTOML(data []byte, cfg *Config) error {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return zerr.Wrap(err, "invalid TOML config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return zerr.With(ErrUnknownKeys, "keys", strings.Join(keys, ", "))
	}
	return nil
}
