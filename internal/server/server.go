// Package server exposes the command table over HTTP so a browser front end
// can drive the same dispatcher as the terminal.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"termfolio/internal/command"
	"termfolio/internal/content"
	"termfolio/internal/logger"
	"termfolio/internal/markup"
	"termfolio/internal/server/stats"
)

var log = logger.Named("server")

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
	shutdownTimeout = 5 * time.Second
	pruneInterval   = time.Hour
)

// Options configures the HTTP server.
type Options struct {
	Portfolio *content.Portfolio
	// Stats is optional; without it /api/stats answers 503.
	Stats      *stats.Store
	RespectDNT bool
	// Retention > 0 时 Run 启动后立即并按小时清理过期统计。
	Retention time.Duration
	// Mode is a gin mode (debug, release, test). Empty keeps the current mode.
	Mode string
}

// CommandResponse is the result of resolving one input.
type CommandResponse struct {
	Command    string `json:"command"`
	Recognized bool   `json:"recognized"`
	Output     string `json:"output"`
	Text       string `json:"text"`
	Clear      bool   `json:"clear"`
	// Followup is set for clear: the welcome output shown after the wipe.
	Followup *CommandResponse `json:"followup,omitempty"`
}

type commandRequest struct {
	Input string `json:"input"`
}

type Server struct {
	opts   Options
	engine *gin.Engine
}

func New(opts Options) *Server {
	if opts.Portfolio == nil {
		opts.Portfolio = content.Default()
	}
	if opts.Mode != "" {
		gin.SetMode(opts.Mode)
	}
	s := &Server{opts: opts, engine: gin.New()}
	s.engine.Use(gin.Recovery(), requestID(), accessLog())
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.engine
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	api := r.Group("/api")
	api.GET("/commands", func(c *gin.Context) {
		c.JSON(http.StatusOK, command.Catalog())
	})
	api.GET("/header", func(c *gin.Context) {
		names := make([]string, 0, len(command.HeaderKinds))
		for _, k := range command.HeaderKinds {
			names = append(names, k.String())
		}
		c.JSON(http.StatusOK, names)
	})
	api.GET("/welcome", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.resolve(command.Welcome()))
	})
	api.GET("/command/:name", func(c *gin.Context) {
		s.handleInput(c, c.Param("name"), "path")
	})
	api.POST("/command", func(c *gin.Context) {
		var req commandRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		s.handleInput(c, req.Input, "body")
	})
	api.GET("/stats", s.handleStats)
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if s.opts.Stats != nil && s.opts.Retention > 0 {
		go s.pruneLoop(ctx)
	}
	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", addr).Info("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen on %s: %w", addr, err)
	case <-ctx.Done():
	}

	log.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}

func (s *Server) pruneLoop(ctx context.Context) {
	ticker := time.NewTicker(pruneInterval)
	defer ticker.Stop()
	for {
		s.prune(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *Server) prune(ctx context.Context) {
	if _, err := s.opts.Stats.Prune(ctx, s.opts.Retention); err != nil && ctx.Err() == nil {
		log.WithError(err).Warn("prune usage failed")
	}
}

func (s *Server) handleInput(c *gin.Context, input, source string) {
	cmd := command.Parse(input)
	if cmd.Token == "" {
		c.JSON(http.StatusOK, CommandResponse{})
		return
	}
	resp := s.resolve(cmd)
	s.record(c, cmd, source)
	c.JSON(http.StatusOK, resp)
}

func (s *Server) resolve(cmd command.Command) CommandResponse {
	var out string
	if cmd.Recognized() {
		out = command.Output(cmd, s.opts.Portfolio)
	} else {
		out = command.NotFound(cmd.Token)
	}
	resp := CommandResponse{
		Command:    cmd.Name(),
		Recognized: cmd.Recognized(),
		Output:     out,
		Text:       markup.PlainText(out),
	}
	if cmd.Kind == command.KindClear {
		resp.Clear = true
		welcome := s.resolve(command.Welcome())
		resp.Followup = &welcome
	}
	return resp
}

func (s *Server) record(c *gin.Context, cmd command.Command, source string) {
	if s.opts.Stats == nil {
		return
	}
	if s.opts.RespectDNT && c.GetHeader("DNT") == "1" {
		return
	}
	ev := stats.Event{
		Command:    cmd.Name(),
		Recognized: cmd.Recognized(),
		Source:     source,
		IP:         c.ClientIP(),
		UserAgent:  c.GetHeader("User-Agent"),
	}
	if err := s.opts.Stats.Record(c.Request.Context(), ev); err != nil {
		log.WithError(err).WithField(requestIDKey, c.GetString(requestIDKey)).Warn("record usage failed")
	}
}

func (s *Server) handleStats(c *gin.Context) {
	if s.opts.Stats == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "stats disabled"})
		return
	}
	sum, err := s.opts.Stats.Summary(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("load stats failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "stats unavailable"})
		return
	}
	c.JSON(http.StatusOK, sum)
}

// requestID 复用客户端传入的合法 UUID，否则生成新的。
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithFields(logger.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency":    time.Since(start).Round(time.Microsecond).String(),
			requestIDKey: c.GetString(requestIDKey),
		}).Debug("request")
	}
}
