// Copyright 2025 The WordServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the wordhint corpus service and its interactive client.

WordHint helps with Wheel of Fortune, crossword and cryptogram puzzles. Given a letter
pattern with wildcards and the letters known to be absent, it lists the matching words by
corpus frequency and ranks the letters not yet guessed by how many of those words (weighted
by frequency) contain them.

# Usage

Serve a corpus over HTTP:

	wordhint -serve

Serve it over msgpack IPC on stdin/stdout instead:

	wordhint -ipc

Query interactively against the configured endpoint, or against the local corpus:

	wordhint -c
	wordhint -c -local

Run a single query:

	wordhint -pattern "??ai?" -absent er
	wordhint -mode Cryptogram -pattern "XYX"

# Patterns

Letters are literal and '?' (or '.' and '*') stands for one unknown letter. In
WheelOfFortune mode a wildcard never stands for a letter already shown in the pattern or
listed as absent. Crossword wildcards may be any letter. Cryptogram patterns use upper case
placeholders for enciphered letters: equal placeholders are equal letters, distinct ones are
distinct letters, and no placeholder stands for its own letter.

# Configuration

Configuration is read from [UserConfigDir]/wordhint/config.toml, created with defaults on
first run, or from the file given with -config:

	[client]
	endpoint = "http://localhost:8080/search_corpus"
	mode = "WheelOfFortune"
	timeout_seconds = 10

	[display]
	word_limit = 10
	letter_limit = 5

	[server]
	addr = ":8080"
	max_pattern_len = 20
	cache_size = 512
	fst_wildcard_threshold = 6

	[corpus]
	path = "data/processed/word_frequency.txt"
	frequency_cutoff = 10000

A relative corpus path is looked up from the working directory and the executable's
directory, and up to five of their parents. Use corpusprep to build the corpus.

# Command Line Flags

	-serve      Serve the corpus over HTTP
	-ipc        Serve the corpus over msgpack IPC
	-c          Interactive client (the default without -serve, -ipc or -pattern)
	-local      Client queries the local corpus instead of the endpoint
	-pattern    Run one query and exit
	-absent     Letters known to be absent, with -pattern
	-mode       WheelOfFortune, Crossword or Cryptogram
	-corpus     Corpus file, overriding the config
	-config     Config file path
	-d          Debug logging
	-version    Show version
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/wordhint/internal/cli"
	"github.com/bastiangx/wordhint/internal/logger"
	"github.com/bastiangx/wordhint/internal/utils"
	"github.com/bastiangx/wordhint/pkg/client"
	"github.com/bastiangx/wordhint/pkg/config"
	"github.com/bastiangx/wordhint/pkg/corpus"
	"github.com/bastiangx/wordhint/pkg/hint"
	"github.com/bastiangx/wordhint/pkg/puzzle"
	"github.com/bastiangx/wordhint/pkg/server"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
)

const (
	Version = "0.3.0"
	AppName = "wordhint"
	gh      = "https://github.com/bastiangx/wordhint"
)

// sigContext is cancelled on the first interrupt; a second one exits right away.
func sigContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	c := make(chan os.Signal, 2)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		cancel()
		<-c
		os.Exit(1)
	}()
	return ctx
}

// main only wires configuration into the server or client; it holds no logic of its own.
func main() {
	ctx := sigContext()

	showVersion := flag.Bool("version", false, "Show current version")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	serveMode := flag.Bool("serve", false, "Serve the corpus over HTTP")
	ipcMode := flag.Bool("ipc", false, "Serve the corpus over msgpack IPC on stdin/stdout")
	cliMode := flag.Bool("c", false, "Run the interactive client")
	localMode := flag.Bool("local", false, "Query the local corpus instead of the configured endpoint")
	pattern := flag.String("pattern", "", "Run a single query for this pattern")
	absent := flag.String("absent", "", "Letters known to be absent (with -pattern)")
	modeName := flag.String("mode", "", "Puzzle mode: WheelOfFortune, Crossword or Cryptogram")
	corpusPath := flag.String("corpus", "", "Corpus file (.txt or .msgpack), overrides the config")
	configPath := flag.String("config", "", "Path to config.toml")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}
	if *ipcMode {
		logger.UseStderr()
	}

	cfg, usedPath := config.LoadConfigWithPriority(*configPath)
	log.Debugf("Using config: %s", config.GetActiveConfigPath(usedPath))
	if *corpusPath != "" {
		cfg.Corpus.Path = *corpusPath
	}

	switch {
	case *serveMode:
		svc := mustLoadService(cfg)
		if !*debugMode {
			gin.SetMode(gin.ReleaseMode)
		}
		showStartupInfo(cfg, svc)
		if err := server.Serve(ctx, cfg.Server.Addr, server.NewRouter(svc)); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case *ipcMode:
		svc := mustLoadService(cfg)
		if err := server.NewIPCServer(svc).Start(ctx); err != nil {
			log.Fatalf("IPC error: %v", err)
		}
	default:
		runClient(ctx, cfg, *localMode, *cliMode, *modeName, *pattern, *absent)
	}
}

func runClient(ctx context.Context, cfg *config.Config, local, interactive bool, modeName, pattern, absent string) {
	if modeName == "" {
		modeName = cfg.Client.Mode
	}
	mode := puzzle.WheelOfFortune
	if modeName != "" {
		m, err := puzzle.ParseMode(modeName)
		if err != nil {
			log.Fatalf("%v", err)
		}
		mode = m
	}

	var fetcher hint.Fetcher
	if local {
		fetcher = mustLoadService(cfg)
	} else {
		c := client.New(cfg.Client.Endpoint, cfg.Client.Timeout())
		log.Debugf("Querying %s", c.Endpoint())
		fetcher = c
	}

	assistant := hint.Assistant{WordLimit: cfg.Display.WordLimit, LetterLimit: cfg.Display.LetterLimit}
	handler := cli.NewInputHandler(fetcher, assistant, mode, cfg.Server.MaxPatternLen, os.Stdout)

	if pattern != "" && !interactive {
		handler.Query(ctx, pattern, absent)
		return
	}
	log.SetReportTimestamp(false)
	if err := handler.Start(ctx); err != nil {
		log.Fatalf("CLI error: %v", err)
	}
}

// mustLoadService finds, loads and indexes the corpus, exiting if it can't.
func mustLoadService(cfg *config.Config) *server.Service {
	path, err := utils.ResolveDataFile(cfg.Corpus.Path)
	if err != nil {
		log.Fatalf("Corpus %s not found: %v", cfg.Corpus.Path, err)
	}
	log.Debugf("Using corpus at: %s", path)

	idx, err := corpus.Load(path)
	if err != nil {
		log.Fatalf("Failed to load corpus: %v", err)
	}
	idx.SetWildcardThreshold(cfg.Server.WildcardThreshold)

	return server.NewService(corpus.NewCache(idx, cfg.Server.CacheSize), cfg.Server.MaxPatternLen)
}

func printVersion() {
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	l.SetStyles(styles)

	l.Print("")
	l.Print("[ WordHint ] Word and letter hints for word puzzles")
	l.Print("", "version", Version)
	l.Print("")
	l.Print("use -h or --help to see available options")
	l.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the loaded corpus.
func showStartupInfo(cfg *config.Config, svc *server.Service) {
	info := logger.New(AppName)
	info.SetLevel(log.InfoLevel)

	info.Infof("Version: %s", Version)
	info.Infof("Process ID: [ %d ]", os.Getpid())
	info.Infof("corpus: ( %s )", cfg.Corpus.Path)
	info.Info("stats", "words", svc.Stats()["totalWords"], "cache", cfg.Server.CacheSize)
	info.Infof("listening: %s", cfg.Server.Addr)
	info.Info("Press Ctrl+C to exit")
}
