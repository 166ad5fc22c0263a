package main

import (
	"fmt"
	"strings"

	"termfolio/internal/config"
	"termfolio/internal/content"
	"termfolio/internal/terminal"
)

// loadConfig 依次应用配置文件、环境变量和 -c 覆盖项，然后校验。
func loadConfig(path string, overrides []string) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	cfg = config.ApplyKVOverrides(cfg, overrides)
	if err := config.Validate(cfg); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func loadPortfolio(cfg config.Config) (*content.Portfolio, error) {
	p, err := content.Load(cfg.ContentFile)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func newSession(cfg config.Config, p *content.Portfolio) *terminal.Session {
	return terminal.New(terminal.Options{
		Prompt:      strings.TrimRight(cfg.Prompt, " "),
		Portfolio:   p,
		TypingDelay: cfg.TypingDelay(),
		ErrorDelay:  cfg.ErrorDelay(),
		SubmitDelay: cfg.SubmitDelay(),
		HeaderDelay: cfg.HeaderDelay(),
	})
}
