package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"golang.org/x/term"

	"termfolio/internal/command"
	"termfolio/internal/config"
	"termfolio/internal/features"
	"termfolio/internal/logger"
	"termfolio/internal/markup"
	"termfolio/internal/server"
	"termfolio/internal/server/stats"
)

const defaultPrintWidth = 80

func serveMain(root rootArgs, args []string) {
	var overrides overrideList
	var cfgPath, addr string
	var release bool
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	fs.StringVar(&cfgPath, "config", "", "Path to config file")
	fs.StringVar(&addr, "addr", "", "Listen address (default from config or $PORT)")
	fs.BoolVar(&release, "release", false, "Run gin in release mode")
	fs.Var(&overrides, "c", "Override config value key=value (repeatable)")
	if err := fs.Parse(args); err != nil {
		log.Fatalf("parse serve args: %v", err)
	}
	cfg, err := loadConfig(cfgPath, root.with(overrides))
	if err != nil {
		log.Fatalf("%v", err)
	}
	if err := logger.SetLevel(cfg.LogLevel); err != nil {
		log.Warnf("log level: %v", err)
	}
	if addr == "" {
		addr = cfg.Server.Addr
	}
	portfolio, err := loadPortfolio(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	var store *stats.Store
	if cfg.Server.StatsDB != "" {
		store, err = stats.Open(cfg.Server.StatsDB, os.Getenv("TERMFOLIO_STATS_SALT"))
		if err != nil {
			log.Fatalf("%v", err)
		}
		defer store.Close()
	}

	mode := gin.DebugMode
	if release {
		mode = gin.ReleaseMode
	}
	srv := server.New(server.Options{
		Portfolio:  portfolio,
		Stats:      store,
		RespectDNT: cfg.Server.RespectDNT,
		Retention:  cfg.Server.Retention(),
		Mode:       mode,
	})
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := srv.Run(ctx, addr); err != nil {
		log.Fatalf("serve: %v", err)
	}
}

func printMain(root rootArgs, args []string) {
	if err := runPrint(root, args, os.Stdout); err != nil {
		log.Fatalf("print: %v", err)
	}
}

// runPrint 渲染一个命令的输出（无打字效果）。
func runPrint(root rootArgs, args []string, out io.Writer) error {
	var overrides overrideList
	var cfgPath string
	var width int
	fs := flag.NewFlagSet("print", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfgPath, "config", "", "Path to config file")
	fs.IntVar(&width, "width", 0, "Wrap width (default terminal width)")
	fs.Var(&overrides, "c", "Override config value key=value (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errors.New("usage: termfolio print [--width N] <command>")
	}
	cfg, err := loadConfig(cfgPath, root.with(overrides))
	if err != nil {
		return err
	}
	portfolio, err := loadPortfolio(cfg)
	if err != nil {
		return err
	}
	if width <= 0 {
		width = terminalWidth()
	}

	cmd := command.Parse(fs.Arg(0))
	src := command.Output(cmd, portfolio)
	if !cmd.Recognized() {
		src = command.NotFound(cmd.Token)
	}
	rendered := markup.RenderString(src, markup.Options{
		Width:      width,
		Hyperlinks: cfg.FeatureSet().Enabled(features.Hyperlinks),
	})
	if rendered == "" {
		return nil
	}
	_, err = fmt.Fprintln(out, rendered)
	return err
}

func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return defaultPrintWidth
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return defaultPrintWidth
	}
	return w
}

func initConfigMain(root rootArgs, args []string) {
	if err := runInitConfig(root, args, os.Stdout); err != nil {
		log.Fatalf("init-config: %v", err)
	}
}

func runInitConfig(root rootArgs, args []string, out io.Writer) error {
	var cfgPath string
	fs := flag.NewFlagSet("init-config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfgPath, "config", "", "Path to write (default ~/.termfolio/config.toml)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if cfgPath == "" {
		cfgPath = config.DefaultPath()
	}
	cfg := config.ApplyKVOverrides(config.Default(), root.overrides)
	if err := config.SaveNew(cfgPath, cfg); err != nil {
		if errors.Is(err, config.ErrExists) {
			_, _ = fmt.Fprintf(out, "config already exists: %s\n", cfgPath)
			return nil
		}
		return err
	}
	_, err := fmt.Fprintf(out, "wrote %s\n", cfgPath)
	return err
}

func featuresMain(root rootArgs, args []string) {
	if err := runFeatures(root, args, os.Stdout); err != nil {
		log.Fatalf("features: %v", err)
	}
}

func runFeatures(root rootArgs, args []string, out io.Writer) error {
	var overrides overrideList
	var cfgPath string
	fs := flag.NewFlagSet("features", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfgPath, "config", "", "Path to config file")
	fs.Var(&overrides, "c", "Override config value key=value (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := loadConfig(cfgPath, root.with(overrides))
	if err != nil {
		return err
	}
	set := cfg.FeatureSet()
	for _, spec := range features.Specs {
		_, _ = fmt.Fprintf(out, "%s\t%s\t%t\t%s\n", spec.Key, spec.Stage, set.Enabled(spec.Key), spec.Description)
	}
	return nil
}
