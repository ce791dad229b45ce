// Copyright 2026 The Lantern Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the Lantern search server and CLI [DBG] application.

Lantern is the query-processing core of a launcher: it scopes raw typed text
through a prefix state machine, fans the query out to independent providers
(application search, calculator, prefix suggestions) and merges their
results into one deterministically ordered list. It can operate as a
MessagePack IPC server for integration with a launcher frontend, or as a CLI
application for testing and debugging.

# Usage

Start the server with default settings:

	lanternd

Use a custom config and enable debug mode:

	lanternd -config /path/to/config.toml -d

Run in CLI mode for interactive testing:

	lanternd -c -limit 10

# Configuration

Runtime configuration is managed through a TOML file covering the
aggregator, the fuzzy tuning table, scope triggers and an optional app
catalog:

	[engine]
	workers = 0
	max_results = 64
	provider_timeout_ms = 0

	[fuzzy]
	density_weight = 0.55
	consecutive_weight = 0.25
	length_weight = 0.10
	start_bonus = 0.08
	floor = 0.60
	cap = 0.84

	[[prefix]]
	trigger = "a"
	provider = "apps"
	title = "Applications"

	[[app]]
	name = "Visual Studio Code"
	path = "/usr/bin/code"

The config file is automatically created with defaults if it doesn't exist.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout. Search requests
are processed synchronously with microsecond timing information included in
responses.

Send a search request:

	{"id": "req1", "op": "search", "q": "vsc"}

Or drive a scoped session through text-field edits and key events:

	{"id": "req2", "op": "input", "text": "a code"}
	{"id": "req3", "op": "backspace"}

Receive ranked results with scope information:

	{"id": "req2", "items": [{"title": "Visual Studio Code", ...}], "c": 1, "t": 180, "scope": "apps", "text": "code"}

# Providers

Providers are injected explicitly at startup; there is no ambient registry.
The application provider matches against an immutable name-index snapshot
(normalized names, tokens, acronyms, pinyin, aliases) rebuilt off the
search path and swapped atomically. The calculator answers math-like
queries. Prefix suggestions surface configured scope triggers.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/ferrith/lantern/internal/cli"
	"github.com/ferrith/lantern/internal/logger"
	"github.com/ferrith/lantern/pkg/config"
	"github.com/ferrith/lantern/pkg/engine"
	"github.com/ferrith/lantern/pkg/index"
	"github.com/ferrith/lantern/pkg/match"
	"github.com/ferrith/lantern/pkg/providers"
	"github.com/ferrith/lantern/pkg/scope"
	"github.com/ferrith/lantern/pkg/server"
)

const (
	Version = "0.3.0-beta"
	AppName = "lantern"
	gh      = "https://github.com/ferrith/lantern"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main calls other packages to initialize the server or CLI inputs.
// main() does not implement logic for them and only manages the flow.
func main() {
	sigHandler()
	defaultConfig := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	configPath := flag.String("config", "", "Path to config.toml")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	limit := flag.Int("limit", defaultConfig.CLI.DefaultLimit, "Number of results to return")

	flag.Parse()

	if *showVersion {
		logger := log.NewWithOptions(os.Stderr, log.Options{
			ReportCaller:    false,
			ReportTimestamp: false,
			Prefix:          "",
		})

		styles := log.DefaultStyles()
		styles.Values["version"] = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
		styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
		logger.SetStyles(styles)

		logger.Print("")
		logger.Print("[ Lantern ] Scoped, ranked launcher searches!")
		logger.Print("", "version", Version)
		logger.Print("")
		logger.Print("use -h or --help to see available options")
		logger.Print("Github Repo", "gh", gh)

		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	cfg, activePath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config at: %s", config.GetActiveConfigPath(activePath))

	registry := scope.NewRegistry()
	for _, p := range cfg.Prefixes {
		entry := scope.Entry{
			ID:         p.Trigger,
			ProviderID: p.Provider,
			Title:      p.Title,
			Subtitle:   p.Subtitle,
			Icon:       p.Icon,
		}
		if err := registry.Register(entry); err != nil {
			log.Warnf("Skipping prefix %q: %v", p.Trigger, err)
		}
	}

	matcher := match.NewMatcher(match.Tuning{
		DensityWeight:     cfg.Fuzzy.DensityWeight,
		ConsecutiveWeight: cfg.Fuzzy.ConsecutiveWeight,
		LengthWeight:      cfg.Fuzzy.LengthWeight,
		StartBonus:        cfg.Fuzzy.StartBonus,
		Floor:             cfg.Fuzzy.Floor,
		Cap:               cfg.Fuzzy.Cap,
	})

	apps := providers.NewApps(matcher, index.NewPinyin(), logger.New("apps"))
	apps.SetEntries(appEntries(cfg))
	log.Debugf("App catalog loaded: %d entries", apps.Len())

	eng, err := engine.New([]engine.Provider{
		apps,
		providers.NewCalc(),
		providers.NewPrefixes(registry),
	}, engine.Options{
		Workers:         cfg.Engine.Workers,
		MaxResults:      cfg.Engine.MaxResults,
		ProviderTimeout: time.Duration(cfg.Engine.ProviderTimeoutMs) * time.Millisecond,
		Logger:          logger.New("engine"),
	})
	if err != nil {
		log.Fatalf("Failed to init engine: %v", err)
	}
	defer eng.Close()

	if *cliMode {
		inputHandler := cli.NewInputHandler(eng, registry, *limit)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI closed: %v", err)
		}
		return
	}

	srv := server.NewServer(eng, registry, *limit)
	if err := srv.Start(); err != nil {
		log.Fatalf("Server closed: %v", err)
	}
}

// appEntries converts the config catalog rows into provider entries.
func appEntries(cfg *config.Config) []providers.AppEntry {
	entries := make([]providers.AppEntry, 0, len(cfg.Apps))
	for _, a := range cfg.Apps {
		var alias *index.AliasEntry
		if len(a.AliasFull)+len(a.AliasInitials)+len(a.AliasExtra) > 0 {
			alias = &index.AliasEntry{
				Full:     a.AliasFull,
				Initials: a.AliasInitials,
				Extra:    a.AliasExtra,
			}
		}
		entries = append(entries, providers.AppEntry{
			Name:  a.Name,
			Path:  a.Path,
			Icon:  a.Icon,
			Alias: alias,
		})
	}
	return entries
}
