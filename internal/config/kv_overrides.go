package config

import (
	"strconv"
	"strings"

	"termfolio/internal/features"
)

// ApplyKVOverrides applies free-form -c key=value overrides. Unknown keys and
// unparsable values are ignored.
func ApplyKVOverrides(cfg Config, overrides []string) Config {
	if len(overrides) == 0 {
		return cfg
	}
	for _, raw := range overrides {
		parts := strings.SplitN(raw, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		val := strings.TrimSpace(parts[1])
		if name, ok := strings.CutPrefix(key, "features."); ok {
			if b, ok := features.ParseBool(val); ok {
				if cfg.Features == nil {
					cfg.Features = map[string]bool{}
				}
				cfg.Features[name] = b
			}
			continue
		}
		switch key {
		case "prompt":
			cfg.Prompt = parts[1]
		case "title":
			cfg.Title = val
		case "typing_delay_ms":
			setInt(&cfg.TypingDelayMS, val)
		case "error_delay_ms":
			setInt(&cfg.ErrorDelayMS, val)
		case "submit_delay_ms":
			setInt(&cfg.SubmitDelayMS, val)
		case "header_delay_ms":
			setInt(&cfg.HeaderDelayMS, val)
		case "content_file":
			cfg.ContentFile = val
		case "history_file":
			cfg.HistoryFile = val
		case "log_file":
			cfg.LogFile = val
		case "log_level":
			cfg.LogLevel = val
		case "alt_screen":
			if b, ok := features.ParseBool(val); ok {
				cfg.AltScreen = b
			}
		case "server.addr":
			cfg.Server.Addr = val
		case "server.stats_db":
			cfg.Server.StatsDB = val
		case "server.retention_days":
			setInt(&cfg.Server.RetentionDays, val)
		case "server.respect_dnt":
			if b, ok := features.ParseBool(val); ok {
				cfg.Server.RespectDNT = b
			}
		}
	}
	return cfg
}

func setInt(dst *int, val string) {
	if n, err := strconv.Atoi(val); err == nil {
		*dst = n
	}
}
