package main

import (
	"context"
	"fmt"
	rand "math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/DaAlbrecht/tichu/internal/gameid"
	"github.com/DaAlbrecht/tichu/internal/randutil"
	"github.com/DaAlbrecht/tichu/internal/server"
)

var CLI struct {
	Config      string `short:"c" long:"config" default:"tichu-server.hcl" help:"Path to HCL configuration file"`
	Addr        string `short:"a" long:"addr" help:"Server address to bind to (overrides config)"`
	LogLevel    string `short:"l" long:"log-level" help:"Log level (overrides config)"`
	TargetScore int    `short:"t" long:"target-score" help:"Score a team needs to win the game (overrides config)"`
	Seed        int64  `short:"s" long:"seed" help:"Deterministic deal seed, 0 means random (overrides config)"`
}

func main() {
	kctx := kong.Parse(&CLI)

	cfg, err := server.LoadServerConfig(CLI.Config)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		kctx.Exit(1)
	}

	// Apply command line overrides
	if CLI.Addr != "" {
		cfg.Server.Address = CLI.Addr
	}
	if CLI.LogLevel != "" {
		cfg.Server.LogLevel = CLI.LogLevel
	}
	if CLI.TargetScore > 0 {
		cfg.Game.TargetScore = CLI.TargetScore
	}
	if CLI.Seed != 0 {
		cfg.Game.Seed = CLI.Seed
	}

	if err := cfg.Validate(); err != nil {
		fmt.Printf("Invalid configuration: %v\n", err)
		kctx.Exit(1)
	}

	// Setup logging
	logger := log.New(os.Stderr)
	switch cfg.Server.LogLevel {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "info":
		logger.SetLevel(log.InfoLevel)
	case "warn":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}

	logger.Info("Starting Tichu Server",
		"addr", cfg.GetServerAddress(),
		"targetScore", cfg.Game.TargetScore,
		"exchangeTimeoutMs", cfg.Game.ExchangeTimeoutMs)

	// Every lobby gets its own deal sequence. With a configured seed the
	// sequence of lobbies is reproducible end to end.
	seedCounter := cfg.Game.Seed
	newRNG := func() *rand.Rand {
		if cfg.Game.Seed == 0 {
			return randutil.New(time.Now().UnixNano())
		}
		seedCounter++
		return randutil.New(seedCounter)
	}

	wsServer := server.NewServer(cfg.GetServerAddress(), logger)
	store := server.NewStore()
	timers := server.NewExchangeTimers(quartz.NewReal())
	dispatcher := server.NewDispatcher(
		store,
		wsServer,
		timers,
		logger,
		gameid.Generate,
		newRNG,
		cfg.Game.TargetScore,
		time.Duration(cfg.Game.ExchangeTimeoutMs)*time.Millisecond,
	)
	wsServer.SetDispatcher(dispatcher)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return wsServer.Start()
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down server...")
		return wsServer.Stop()
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server failed", "error", err)
		kctx.Exit(1)
	}
}
