package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	_ "github.com/joho/godotenv/autoload"

	"termfolio/internal/features"
	"termfolio/internal/history"
	"termfolio/internal/logger"
	"termfolio/internal/tui"
)

var log = logger.Named("cli")

func main() {
	logger.Configure()

	root, rest, err := parseRootArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "termfolio: %v\n", err)
		os.Exit(2)
	}
	if len(rest) > 0 {
		switch rest[0] {
		case "serve":
			serveMain(root, rest[1:])
			return
		case "print":
			printMain(root, rest[1:])
			return
		case "init-config":
			initConfigMain(root, rest[1:])
			return
		case "features":
			featuresMain(root, rest[1:])
			return
		case "ping":
			pingMain(root, rest[1:])
			return
		case "completion":
			completionMain(rest[1:])
			return
		}
	}

	runInteractive(root, rest)
}

type interactiveArgs struct {
	cfgPath         string
	configOverrides overrideList
	noAltScreen     bool
}

func newInteractiveFlagSet(name string) (*flag.FlagSet, *interactiveArgs) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	args := &interactiveArgs{}
	fs.StringVar(&args.cfgPath, "config", "", "Path to config file (default ~/.termfolio/config.toml)")
	fs.Var(&args.configOverrides, "c", "Override config value key=value (repeatable)")
	fs.BoolVar(&args.noAltScreen, "no-alt-screen", false, "Render inline instead of the alternate screen")
	return fs, args
}

func runInteractive(root rootArgs, args []string) {
	fs, cli := newInteractiveFlagSet("termfolio")
	if err := fs.Parse(args); err != nil {
		log.Fatalf("parse args: %v", err)
	}
	cfg, err := loadConfig(cli.cfgPath, root.with(cli.configOverrides))
	if err != nil {
		log.Fatalf("%v", err)
	}
	if err := logger.SetLevel(cfg.LogLevel); err != nil {
		log.Warnf("log level: %v", err)
	}
	logPath := cfg.LogFile
	if logPath == "" {
		logPath = logger.DefaultLogPath
	}
	if logFile, _, err := logger.SetupFile(logPath); err != nil {
		// 交互模式下不能把日志写到终端上
		logger.Discard()
	} else {
		defer logFile.Close()
	}

	portfolio, err := loadPortfolio(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	sessionID := uuid.NewString()
	runLog := logger.ForSession(log, sessionID)
	fset := cfg.FeatureSet()

	var store *history.Store
	var entries []string
	if path := cfg.ResolvedHistoryFile(); path != "" && fset.Enabled(features.History) {
		store = history.New(path, sessionID)
		if entries, err = store.LoadTexts(); err != nil {
			runLog.WithError(err).Warn("load history failed")
		}
		if n, err := store.Compact(); err != nil {
			runLog.WithError(err).Warn("compact history failed")
		} else if n > 0 {
			runLog.WithField("dropped", n).Debug("history compacted")
		}
	}

	runLog.WithField("config", cfg.Source).Info("starting terminal")
	result, err := tui.Run(tui.Options{
		Session:        newSession(cfg, portfolio),
		Title:          cfg.Title,
		Features:       fset,
		History:        store,
		HistoryEntries: entries,
		Badge:          portfolio.Badge,
		AltScreen:      cfg.AltScreen && !cli.noAltScreen,
		SessionID:      sessionID,
	})
	if err != nil {
		log.Fatalf("program exit: %v", err)
	}
	runLog.WithField("executed", result.Executed).Info("terminal exited")
}
