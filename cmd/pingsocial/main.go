// Command pingsocial serves the PingSocial feed, friends, messaging and admin
// moderation API.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sanjay-k-alt/PingSocial-A-Complete-Social-Media-Website/api"
	"github.com/sanjay-k-alt/PingSocial-A-Complete-Social-Media-Website/api/validator"
	"github.com/sanjay-k-alt/PingSocial-A-Complete-Social-Media-Website/chat"
	"github.com/sanjay-k-alt/PingSocial-A-Complete-Social-Media-Website/config"
	"github.com/sanjay-k-alt/PingSocial-A-Complete-Social-Media-Website/delay"
	"github.com/sanjay-k-alt/PingSocial-A-Complete-Social-Media-Website/feed"
	"github.com/sanjay-k-alt/PingSocial-A-Complete-Social-Media-Website/friends"
	"github.com/sanjay-k-alt/PingSocial-A-Complete-Social-Media-Website/hub"
	"github.com/sanjay-k-alt/PingSocial-A-Complete-Social-Media-Website/moderation"
	"github.com/sanjay-k-alt/PingSocial-A-Complete-Social-Media-Website/notify"
	"github.com/sanjay-k-alt/PingSocial-A-Complete-Social-Media-Website/redis"
	"github.com/sanjay-k-alt/PingSocial-A-Complete-Social-Media-Website/sqlstore"
)

var (
	friendRequests = []string{"John Doe", "Jane Smith", "Alex Johnson"}
	contacts       = []chat.Contact{
		{ID: "sarah", Name: "Sarah Johnson"},
		{ID: "mike", Name: "Mike Chen"},
		{ID: "emma", Name: "Emma Wilson"},
	}
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server failed", "error", err.Error())
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := sqlstore.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer store.Close()
	if cfg.Seed {
		if err := store.Seed(ctx); err != nil {
			return err
		}
	}

	mod := &moderation.Service{Store: store, Logger: logger}
	if cfg.RedisAddr != "" {
		cache, err := redis.Connect(ctx, cfg.RedisAddr, cfg.CacheTTL)
		if err != nil {
			return err
		}
		defer cache.Close()
		mod.Cache = cache
	}

	live := hub.New(logger)
	notifier := notify.Fanout{notify.Log{Logger: logger}, live}
	mod.Notifier = notifier

	f := feed.New()
	conversations := chat.NewService(logger, delay.Timer{}, contacts...)
	limiter := api.NewRateLimiter(cfg.PostRateLimit, 1)
	go limiter.Run(ctx, time.Minute)

	a := &api.API{
		Logger:   logger,
		Feed:     f,
		Composer: feed.NewComposer(f, notifier),
		Posts: &feed.Handler{
			Feed:      f,
			Notifier:  notifier,
			Clipboard: &feed.MemoryClipboard{},
			PageURL:   cfg.PageURL,
			Logger:    logger,
		},
		Friends:    friends.NewService(delay.Timer{}, notifier, friendRequests),
		Chat:       conversations,
		Moderation: mod,
		Hub:        live,
		Val:        validator.New(),
		PostLimit:  limiter,
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           a,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	conversations.Wait()
	logger.Info("Server exiting")
	return nil
}
