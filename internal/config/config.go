package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"termfolio/internal/features"

	"github.com/pelletier/go-toml/v2"
)

// Config is the persisted config file schema.
type Config struct {
	Prompt        string          `toml:"prompt"`
	Title         string          `toml:"title"`
	TypingDelayMS int             `toml:"typing_delay_ms"`
	ErrorDelayMS  int             `toml:"error_delay_ms"`
	SubmitDelayMS int             `toml:"submit_delay_ms"`
	HeaderDelayMS int             `toml:"header_delay_ms"`
	ContentFile   string          `toml:"content_file"`
	HistoryFile   string          `toml:"history_file"`
	LogFile       string          `toml:"log_file"`
	LogLevel      string          `toml:"log_level"`
	AltScreen     bool            `toml:"alt_screen"`
	Features      map[string]bool `toml:"features"`
	Server        Server          `toml:"server"`
	Source        string          `toml:"-"`
}

// Server configures `termfolio serve`.
type Server struct {
	Addr       string `toml:"addr"`
	StatsDB    string `toml:"stats_db"`
	RespectDNT bool   `toml:"respect_dnt"`

	// 超过 RetentionDays 天的统计行会被定期清理，0 表示永久保留。
	RetentionDays int `toml:"retention_days"`
}

const (
	envPrompt  = "TERMFOLIO_PROMPT"
	envContent = "TERMFOLIO_CONTENT"
	envLogFile = "TERMFOLIO_LOG_FILE"
	envPort    = "PORT"
)

func Default() Config {
	return Config{
		Prompt:        "puneet@portfolio:~$",
		Title:         "Puneet Goyal | Portfolio",
		TypingDelayMS: 10,
		ErrorDelayMS:  5,
		SubmitDelayMS: 300,
		HeaderDelayMS: 100,
		LogLevel:      "info",
		AltScreen:     true,
		Features:      map[string]bool{},
		Server: Server{
			Addr:          ":8080",
			StatsDB:       "termfolio-stats.db",
			RespectDNT:    true,
			RetentionDays: 90,
		},
	}
}

func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".termfolio")
}

func DefaultPath() string {
	dir := DefaultDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.toml")
}

// DefaultHistoryPath is used when history_file is left empty.
func DefaultHistoryPath() string {
	dir := DefaultDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "history.jsonl")
}

// Load reads the TOML file at path (DefaultPath when empty) and applies
// environment overrides. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}
	if path == "" {
		return cfg, errors.New("config path is empty and $HOME is not set")
	}
	cfg.Source = path

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ApplyEnv(cfg, os.Getenv), nil
		}
		return cfg, err
	}
	if err := toml.Unmarshal(content, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Features == nil {
		cfg.Features = map[string]bool{}
	}
	return ApplyEnv(cfg, os.Getenv), nil
}

// ApplyEnv overlays environment variables read through getenv.
func ApplyEnv(cfg Config, getenv func(string) string) Config {
	if getenv == nil {
		return cfg
	}
	if v := getenv(envPrompt); v != "" {
		cfg.Prompt = v
	}
	if v := strings.TrimSpace(getenv(envContent)); v != "" {
		cfg.ContentFile = v
	}
	if v := strings.TrimSpace(getenv(envLogFile)); v != "" {
		cfg.LogFile = v
	}
	if v := strings.TrimSpace(getenv(envPort)); v != "" {
		if _, err := strconv.Atoi(v); err == nil {
			cfg.Server.Addr = ":" + v
		}
	}
	return cfg
}

// Validate rejects values the terminal cannot work with.
func Validate(cfg Config) error {
	delays := map[string]int{
		"typing_delay_ms": cfg.TypingDelayMS,
		"error_delay_ms":  cfg.ErrorDelayMS,
		"submit_delay_ms": cfg.SubmitDelayMS,
		"header_delay_ms": cfg.HeaderDelayMS,
	}
	for key, v := range delays {
		if v < 0 {
			return fmt.Errorf("%s must be >= 0 (got %d)", key, v)
		}
	}
	if cfg.Server.RetentionDays < 0 {
		return fmt.Errorf("server.retention_days must be >= 0 (got %d)", cfg.Server.RetentionDays)
	}
	for key := range cfg.Features {
		if !features.IsKnown(key) {
			return fmt.Errorf("unknown feature flag: %s", key)
		}
	}
	return nil
}

// FeatureSet exposes the feature table with registry defaults applied.
func (c Config) FeatureSet() features.Set {
	return features.Set(c.Features)
}

func (c Config) TypingDelay() time.Duration { return millis(c.TypingDelayMS) }
func (c Config) ErrorDelay() time.Duration  { return millis(c.ErrorDelayMS) }
func (c Config) SubmitDelay() time.Duration { return millis(c.SubmitDelayMS) }
func (c Config) HeaderDelay() time.Duration { return millis(c.HeaderDelayMS) }

// ResolvedHistoryFile falls back to DefaultHistoryPath.
func (c Config) ResolvedHistoryFile() string {
	if strings.TrimSpace(c.HistoryFile) != "" {
		return c.HistoryFile
	}
	return DefaultHistoryPath()
}

// Retention is the stats retention window; zero disables pruning.
func (s Server) Retention() time.Duration {
	if s.RetentionDays <= 0 {
		return 0
	}
	return time.Duration(s.RetentionDays) * 24 * time.Hour
}

func millis(v int) time.Duration {
	if v < 0 {
		v = 0
	}
	return time.Duration(v) * time.Millisecond
}
