package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mineskin/skinbot/internal/bot"
	"github.com/mineskin/skinbot/internal/config"
	"github.com/mineskin/skinbot/internal/discord"
	"github.com/mineskin/skinbot/internal/mineskin"
	"github.com/mineskin/skinbot/internal/queue"
	"github.com/mineskin/skinbot/internal/tracing"
)

const (
	// The MineSkin public tier allows one generation per ~20s.
	generateInterval = 20 * time.Second
	generateTimeout  = 25 * time.Second

	registerTimeout = 30 * time.Second
	shutdownTimeout = 10 * time.Second
)

func runServe() {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))

	cfg, err := config.Load(resolveConfigPath())
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Setup(ctx, cfg.Telemetry)
	if err != nil {
		slog.Error("failed to set up tracing", "error", err)
		os.Exit(1)
	}

	publicKey, err := discord.DecodePublicKey(cfg.Discord.PublicKey)
	if err != nil {
		slog.Error("invalid discord public key", "error", err)
		os.Exit(1)
	}

	// Clients and queues, owned here and passed down explicitly.
	discordClient := discord.NewClient(cfg.Discord)
	defer discordClient.Close()

	mineskinClient := mineskin.NewClient(cfg.MineSkin)

	generateQueue := queue.New("mineskin", generateInterval, generateTimeout, mineskinClient.Generate)
	defer generateQueue.Close()

	interp := bot.NewInterpreter(mineskinClient)
	dispatcher := bot.NewDispatcher(discordClient)
	handler := bot.NewHandler(publicKey, cfg.Server.BasePath, interp, generateQueue, dispatcher)
	server := bot.NewServer(cfg.Server, handler)

	slog.Info("registering application commands", "app_id", cfg.Discord.AppID)
	regCtx, cancel := context.WithTimeout(ctx, registerTimeout)
	err = discordClient.RegisterCommands(regCtx)
	cancel()
	if err != nil {
		slog.Error("failed to register commands", "error", err)
		os.Exit(1)
	}

	presence, err := discord.NewPresence(cfg.Discord.Token)
	if err != nil {
		slog.Error("failed to create discord session", "error", err)
		os.Exit(1)
	}
	if err := presence.Start(); err != nil {
		slog.Error("failed to connect to discord gateway", "error", err)
		os.Exit(1)
	}
	defer presence.Stop()

	if err := presence.SetWatching("idle", "out for requests"); err != nil {
		slog.Warn("initial presence update failed", "error", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(server.Start)
	g.Go(func() error {
		bot.RunStatusLoop(gctx, presence, generateQueue)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("server exited", "error", err)
	}

	if err := shutdownTracing(context.Background()); err != nil {
		slog.Warn("tracing shutdown failed", "error", err)
	}
}
