package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"classdiag/internal/app"
	"classdiag/internal/config"
)

var (
	configPath   = flag.String("config", "./classdiag.toml", "Path to config file")
	once         = flag.Bool("once", false, "Generate once and exit")
	ui           = flag.Bool("ui", false, "Enable terminal UI mode")
	verbose      = flag.Bool("verbose", false, "Enable verbose logging")
	version      = flag.Bool("version", false, "Print version and exit")
	title        = flag.String("title", "", "Diagram title (overrides config)")
	snapshot     = flag.String("snapshot", "", "Type snapshot file instead of parsing sources")
	systemPrefix = flag.String("system-prefix", "", "Namespace prefix treated as platform library")
	group        = flag.Bool("group", false, "Group entities by namespace")
	nested       = flag.Bool("nested", false, "Emit the whole inheritance chain, not just direct bases")
	noClasses    = flag.Bool("no-classes", false, "Exclude classes from the diagram")
	noInterfaces = flag.Bool("no-interfaces", false, "Exclude interfaces from the diagram")
	noEnums      = flag.Bool("no-enums", false, "Exclude enums from the diagram")
	output       = flag.String("out", "", "Mermaid output path (overrides config)")
)

const VERSION = "1.0.0"

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("classdiag v%s\n", VERSION)
		os.Exit(0)
	}

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}

	logOutput := os.Stdout
	if *ui {
		// In UI mode, avoid stdout logs corrupting the TUI.
		logPath := resolveLogPath()
		if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to create log dir for %s: %v\n", logPath, err)
		} else if f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600); err == nil {
			logOutput = f
		} else {
			fmt.Fprintf(os.Stderr, "warning: failed to open log file %s: %v\n", logPath, err)
		}
	}

	logger := slog.New(slog.NewTextHandler(logOutput, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	cfg := loadConfig()
	applyFlags(cfg)

	if flag.NArg() > 0 {
		cfg.SourcePaths = flag.Args()
	}

	a, err := app.New(cfg)
	if err != nil {
		slog.Error("failed to initialize", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	update, err := a.GenerateOnce()
	if err != nil {
		slog.Error("generation failed", "error", err)
		os.Exit(1)
	}

	if !*ui {
		printSummary(update)
	}

	if *once {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if *ui {
		if err := runUI(ctx, cancel, a, update); err != nil {
			slog.Error("failed to run UI", "error", err)
			os.Exit(1)
		}
		return
	}

	a.SetUpdateHandler(func(u app.Update) { printSummary(u) })
	if err := a.Watch(ctx); err != nil {
		slog.Error("watch mode failed", "error", err)
		os.Exit(1)
	}
}

func loadConfig() *config.Config {
	cfg, err := config.Load(*configPath)
	if err == nil {
		return cfg
	}
	if *configPath == "./classdiag.toml" {
		if cfg, err2 := config.Load("./classdiag.example.toml"); err2 == nil {
			return cfg
		}
		if os.IsNotExist(err) {
			return config.Default()
		}
	}
	slog.Error("failed to load config", "path", *configPath, "error", err)
	os.Exit(1)
	return nil
}

func applyFlags(cfg *config.Config) {
	if *title != "" {
		cfg.Title = *title
	}
	if *snapshot != "" {
		cfg.Snapshot = *snapshot
	}
	if *systemPrefix != "" {
		cfg.SystemPrefix = *systemPrefix
	}
	if *group {
		cfg.Diagram.GroupByNamespace = true
	}
	if *nested {
		cfg.Diagram.NestedInheritance = true
	}
	if *noClasses {
		cfg.Diagram.ExcludeClasses = true
	}
	if *noInterfaces {
		cfg.Diagram.ExcludeInterfaces = true
	}
	if *noEnums {
		cfg.Diagram.ExcludeEnums = true
	}
	if *output != "" {
		cfg.Output.Mermaid = *output
	}
}

func printSummary(update app.Update) {
	fmt.Println(strings.Repeat("-", 40))
	fmt.Printf("Diagram: %d classes, %d interfaces, %d enums, %d relationships in %v\n",
		update.Run.Classes, update.Run.Interfaces, update.Run.Enums,
		update.Run.Relationships(), update.Run.Duration)

	if update.Trend.Entities != 0 || update.Trend.Relationships != 0 {
		fmt.Printf("Trend: %+d entities, %+d relationships since last run\n",
			update.Trend.Entities, update.Trend.Relationships)
	}

	for _, path := range update.Written {
		fmt.Printf("Wrote %s\n", path)
	}
}

func resolveLogPath() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "classdiag", "classdiag.log")
	}

	home, err := os.UserHomeDir()
	if err == nil && home != "" {
		return filepath.Join(home, ".local", "state", "classdiag", "classdiag.log")
	}

	return "classdiag.log"
}
