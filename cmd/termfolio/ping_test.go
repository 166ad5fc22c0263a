package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"termfolio/internal/server"
	"termfolio/internal/server/stats"
)

func TestPingHealthyServer(t *testing.T) {
	srv := httptest.NewServer(server.New(server.Options{Mode: gin.TestMode}).Handler())
	t.Cleanup(srv.Close)

	var out bytes.Buffer
	if err := runPing(rootArgs{}, []string{"--url", srv.URL + "/"}, &out); err != nil {
		t.Fatalf("runPing: %v", err)
	}
	if !strings.HasPrefix(out.String(), "ok: ok (request ") {
		t.Fatalf("ping output = %q", out.String())
	}
}

func TestPingUnhealthyServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	if err := runPing(rootArgs{}, []string{"--url", srv.URL, "--timeout", "1"}, &bytes.Buffer{}); err == nil {
		t.Fatalf("expected error for unhealthy server")
	}
}

func TestPingWithStats(t *testing.T) {
	store, err := stats.Open(filepath.Join(t.TempDir(), "stats.db"), "salt")
	if err != nil {
		t.Fatalf("stats.Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	srv := httptest.NewServer(server.New(server.Options{Stats: store, Mode: gin.TestMode}).Handler())
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL + "/api/command/skills")
	if err != nil {
		t.Fatalf("seed request: %v", err)
	}
	resp.Body.Close()
	var out bytes.Buffer
	if err := runPing(rootArgs{}, []string{"--url", srv.URL, "--stats"}, &out); err != nil {
		t.Fatalf("runPing: %v", err)
	}
	if !strings.Contains(out.String(), "requests: 1") || !strings.Contains(out.String(), "skills") {
		t.Fatalf("ping --stats output = %q", out.String())
	}

	bare := httptest.NewServer(server.New(server.Options{Mode: gin.TestMode}).Handler())
	t.Cleanup(bare.Close)
	if err := runPing(rootArgs{}, []string{"--url", bare.URL, "--stats"}, &bytes.Buffer{}); err == nil {
		t.Fatalf("expected error when stats are disabled")
	}
}
