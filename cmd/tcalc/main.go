package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/vidyasagar/tcalc/internal/app"
	"github.com/vidyasagar/tcalc/internal/logging"
	"github.com/vidyasagar/tcalc/internal/mcpserver"
	"github.com/vidyasagar/tcalc/internal/storage"
	"github.com/vidyasagar/tcalc/internal/theme"
)

var (
	version = "0.1.0"
)

func main() {
	var (
		themeName   string
		logLevel    string
		showVersion bool
		serveMCP    bool
	)

	flag.StringVar(&themeName, "theme", "", "color theme ("+strings.Join(theme.List(), ", ")+")")
	flag.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error); overrides the config file")
	flag.BoolVar(&showVersion, "version", false, "show version")
	flag.BoolVar(&serveMCP, "mcp", false, "serve the calculator as MCP tools on stdio instead of the TUI")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "tcalc - a keyboard-first terminal calculator\n\n")
		fmt.Fprintf(os.Stderr, "Usage: tcalc [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  tcalc                    # start the calculator\n")
		fmt.Fprintf(os.Stderr, "  tcalc --theme nord       # use the nord theme\n")
		fmt.Fprintf(os.Stderr, "  tcalc --mcp              # expose calc.* tools to an MCP client\n")
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("tcalc %s\n", version)
		os.Exit(0)
	}

	if themeName != "" && !theme.Set(themeName) {
		fmt.Fprintf(os.Stderr, "Unknown theme: %s\nAvailable: %s\n", themeName, strings.Join(theme.List(), ", "))
		os.Exit(1)
	}

	cfg, err := storage.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v; using defaults\n", err)
		def := storage.DefaultConfig()
		cfg = &def
	}
	if logLevel == "" {
		logLevel = cfg.LogLevel
	}

	dataDir, err := storage.DataDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v; history will not be saved\n", err)
		dataDir = ""
	}

	if serveMCP {
		os.Exit(runMCP(cfg, dataDir, logLevel))
	}
	os.Exit(runTUI(cfg, dataDir, logLevel, themeName))
}

// runMCP logs to stderr since stdout carries the protocol.
func runMCP(cfg *storage.Config, dataDir, logLevel string) int {
	log, err := logging.Console(logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	session := app.OpenSession(cfg, dataDir, log)
	defer session.Close()

	srv := mcpserver.New("tcalc", version, session.Engine, log)
	if err := srv.Serve(); err != nil {
		log.Error().Err(err).Msg("mcp server stopped")
		return 1
	}
	return 0
}

func runTUI(cfg *storage.Config, dataDir, logLevel, themeFlag string) int {
	log := zerolog.Nop()
	if dataDir != "" {
		fileLog, closer, err := logging.OpenFile(logLevel, dataDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		} else {
			log = fileLog
			defer closer.Close()
		}
	}
	log.Info().Str("version", version).Str("config", cfg.Path()).Msg("starting")

	session := app.OpenSession(cfg, dataDir, log)
	defer session.Close()

	// The flag wins, then the last theme picked in the app, then the config.
	if themeFlag == "" {
		name := cfg.Theme
		if session.DB != nil {
			if saved, err := session.DB.ThemePreference(); err != nil {
				log.Warn().Err(err).Msg("reading theme preference")
			} else if saved != "" {
				name = saved
			}
		}
		if !theme.Set(name) {
			log.Warn().Str("theme", name).Msg("unknown theme, using default")
		}
	}

	p := tea.NewProgram(app.New(app.Options{Session: session, Config: cfg, Log: log}),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if path := cfg.Path(); path != "" {
		watcher, err := storage.WatchConfig(path, log, func(c *storage.Config) {
			p.Send(app.ConfigReloadedMsg{Config: c})
		})
		if err != nil {
			log.Warn().Err(err).Msg("config changes will not be picked up")
		} else {
			defer watcher.Close()
		}
	}

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
