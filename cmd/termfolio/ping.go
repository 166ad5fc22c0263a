package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"termfolio/internal/server/stats"
)

func pingMain(root rootArgs, args []string) {
	if err := runPing(root, args, os.Stdout); err != nil {
		log.Fatalf("ping failed: %v", err)
	}
}

// runPing 请求运行中的 serve 实例的 /healthz。
func runPing(root rootArgs, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("ping", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var cfgPath string
	var baseURL string
	var timeoutSeconds int
	var withStats bool
	fs.StringVar(&cfgPath, "config", "", "Path to config file")
	fs.StringVar(&baseURL, "url", "", "Server base URL (default http://localhost<server.addr>)")
	fs.IntVar(&timeoutSeconds, "timeout", 5, "Timeout seconds")
	fs.BoolVar(&withStats, "stats", false, "Also print the usage summary from /api/stats")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if strings.TrimSpace(baseURL) == "" {
		cfg, err := loadConfig(cfgPath, root.overrides)
		if err != nil {
			return err
		}
		baseURL = "http://localhost" + cfg.Server.Addr
	}
	if timeoutSeconds <= 0 {
		timeoutSeconds = 5
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSeconds)*time.Second)
	defer cancel()

	baseURL = strings.TrimRight(baseURL, "/")
	var health struct {
		Status string `json:"status"`
	}
	requestID, err := getJSON(ctx, baseURL+"/healthz", &health)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "ok: %s (request %s)\n", health.Status, requestID)
	if !withStats {
		return nil
	}

	var sum stats.Summary
	if _, err := getJSON(ctx, baseURL+"/api/stats", &sum); err != nil {
		return fmt.Errorf("stats: %w", err)
	}
	_, _ = fmt.Fprintf(out, "requests: %d  visitors: %d  today: %d  not found: %d\n",
		sum.Total, sum.UniqueVisitors, sum.Today, sum.NotFound)
	for _, c := range sum.Commands {
		_, _ = fmt.Fprintf(out, "  %-16s %d\n", c.Command, c.Count)
	}
	return nil
}

// getJSON 发起 GET 并解码 JSON 响应，返回服务端的 request id。
func getJSON(ctx context.Context, url string, v any) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("GET %s: unexpected status %s", url, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return "", fmt.Errorf("decode %s: %w", url, err)
	}
	return resp.Header.Get("X-Request-ID"), nil
}
