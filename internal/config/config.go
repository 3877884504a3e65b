package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

// Config captures reel's settings.
type Config struct {
	APIBase           string
	Locale            language.Tag
	LogDir            string
	RequestsPerSecond float64
}

const (
	defaultConfigPath        = "~/.config/reel/config.toml"
	defaultLogDir            = "~/.local/share/reel/logs"
	defaultAPIBase           = "http://127.0.0.1:8000"
	defaultLocale            = "fr"
	defaultRequestsPerSecond = 10
	logFileName              = "reel.log"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIBase:           defaultAPIBase,
		Locale:            language.MustParse(defaultLocale),
		LogDir:            mustExpand(defaultLogDir),
		RequestsPerSecond: defaultRequestsPerSecond,
	}
}

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIBase           string  `toml:"api_base"`
		Locale            string  `toml:"locale"`
		LogDir            string  `toml:"log_dir"`
		RequestsPerSecond float64 `toml:"requests_per_second"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if base := strings.TrimSpace(raw.APIBase); base != "" {
		cfg.APIBase = base
	}

	if locale := strings.TrimSpace(raw.Locale); locale != "" {
		tag, err := language.Parse(locale)
		if err != nil {
			return Config{}, fmt.Errorf("parse config: locale %q: %w", locale, err)
		}
		cfg.Locale = tag
	}

	if dir := strings.TrimSpace(raw.LogDir); dir != "" {
		cfg.LogDir = mustExpand(dir)
	}

	if raw.RequestsPerSecond > 0 {
		cfg.RequestsPerSecond = raw.RequestsPerSecond
	}

	return cfg, nil
}

// LogPath returns the path of reel's log file.
func (c Config) LogPath() string {
	if strings.TrimSpace(c.LogDir) == "" {
		return mustExpand(defaultLogDir + "/" + logFileName)
	}
	return filepath.Join(c.LogDir, logFileName)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
