package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/kamusis/credscan/internal/jdbcscan"
	"github.com/kamusis/credscan/internal/report"
	"github.com/kamusis/credscan/internal/textenc"
)

// DefaultExpectedJNDINames are the XA datasources every descriptor is checked for.
var DefaultExpectedJNDINames = []string{
	"java:/jboss/jdbc/EPDatabase",
	"java:/jboss/jdbc/EPDatabaseDoc",
	"java:/jboss/jdbc/EPDatabaseID",
	"java:/jboss/jdbc/EPDatabaseIN",
}

type Config struct {
	ExpectedJNDINames []string `yaml:"expected_jndi_names"`
	// Encoding applies to single properties files: auto, utf-8 or latin-1.
	Encoding string `yaml:"encoding"`
	Scan     struct {
		Denylist  []string `yaml:"denylist"`
		Extension string   `yaml:"extension"`
		Encoding  string   `yaml:"encoding"`
	} `yaml:"scan"`
	Output struct {
		Dir    string `yaml:"dir"`
		Format string `yaml:"format"`
		Plain  bool   `yaml:"plain"`
		Color  string `yaml:"color"`
	} `yaml:"output"`
	Log struct {
		Level    string `yaml:"level"`
		Encoding string `yaml:"encoding"`
	} `yaml:"log"`
}

func normalizeColor(mode string) string {
	switch mode {
	case "auto", "always", "never":
		return mode
	default:
		return "auto"
	}
}

func normalizeEncoding(enc string) string {
	if canonical, ok := textenc.Canonical(enc); ok {
		return canonical
	}
	return textenc.Auto
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (cfg *Config) applyDefaults() {
	if cfg.ExpectedJNDINames == nil {
		cfg.ExpectedJNDINames = append([]string(nil), DefaultExpectedJNDINames...)
	}
	cfg.Encoding = normalizeEncoding(cfg.Encoding)
	if cfg.Scan.Denylist == nil {
		cfg.Scan.Denylist = append([]string(nil), jdbcscan.DefaultDenylist...)
	}
	if cfg.Scan.Extension == "" {
		cfg.Scan.Extension = jdbcscan.DefaultExtension
	}
	if cfg.Scan.Encoding == "" {
		cfg.Scan.Encoding = textenc.Latin1
	}
	cfg.Scan.Encoding = normalizeEncoding(cfg.Scan.Encoding)
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "."
	}
	cfg.Output.Format = report.NormalizeFormat(cfg.Output.Format)
	cfg.Output.Color = normalizeColor(cfg.Output.Color)
	if cfg.Log.Level == "" {
		cfg.Log.Level = "warn"
	}
	if cfg.Log.Encoding != "json" {
		cfg.Log.Encoding = "console"
	}
}

func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".credscan"), nil
}

func GetConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// LoadConfig reads path, or the default location when path is empty.
// A missing file yields the defaults; a malformed one is an error.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		p, err := GetConfigPath()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// SaveConfig writes cfg to path, creating parent directories.
func SaveConfig(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
