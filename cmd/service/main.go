package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/subwatch/subwatch/internal/auth"
	"github.com/subwatch/subwatch/internal/bot"
	"github.com/subwatch/subwatch/internal/client/tgbot"
	"github.com/subwatch/subwatch/internal/client/tguser"
	"github.com/subwatch/subwatch/internal/config"
	"github.com/subwatch/subwatch/internal/databus/participant"
	"github.com/subwatch/subwatch/internal/logging"
	"github.com/subwatch/subwatch/internal/notifier"
	"github.com/subwatch/subwatch/internal/repository/sqlite"
	"github.com/subwatch/subwatch/internal/rest"
	"github.com/subwatch/subwatch/internal/tracker"
)

func main() {
	cfg := config.MustLoad()

	logger, err := logging.New(cfg.Log.Level)
	if err != nil {
		log.Fatal("failed to build logger: ", err)
	}
	defer func() { _ = logger.Sync() }()

	dbRepo := sqlite.New(cfg)
	defer dbRepo.Close()

	botClient, err := tgbot.New(cfg, logger)
	if err != nil {
		logger.Fatal("failed to authenticate bot", zap.Error(err))
	}

	userClient := tguser.New(cfg, logger)

	notify := notifier.New(botClient, cfg.Telegram.AdminChatID, logger)
	defer notify.Close()

	trk := tracker.New(dbRepo, userClient, notify, logger)
	login := auth.New(userClient, notify, auth.DefaultPromptTimeout, logger)

	events := participant.New(trk, dbRepo, logger)
	userClient.OnChannelParticipant(events.Handle)

	dispatcher := bot.New(botClient, dbRepo, userClient, login, trk, cfg.Telegram.AdminChatID, logger)

	router := chi.NewRouter()
	rest.New(dbRepo, userClient, logger).Register(router)
	httpServer := &http.Server{
		Addr:    ":" + cfg.HTTP.Port,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	scheduler := cron.New(cron.WithSeconds(), cron.WithChain(cron.Recover(cron.DefaultLogger)))
	_, err = scheduler.AddFunc(fmt.Sprintf("@every %ds", cfg.Poll.IntervalSeconds), func() {
		// keep each cycle bounded by the poll interval
		rctx, cancel := context.WithTimeout(ctx, cfg.Poll.Interval())
		defer cancel()

		if _, err := trk.Reconcile(rctx); err != nil {
			logger.Error("reconcile cycle failed", zap.Error(err))
		}
	})
	if err != nil {
		logger.Fatal("failed to schedule reconcile", zap.Error(err))
	}
	scheduler.Start()
	defer scheduler.Stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := userClient.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("user client error: %v", err)
		}
		return nil
	})

	g.Go(func() error {
		if err := dispatcher.Run(gctx, botClient.Updates()); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("dispatcher error: %v", err)
		}
		return nil
	})

	g.Go(func() error {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %v", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		botClient.Close()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	logger.Info("subwatch started",
		zap.Int("poll_interval_seconds", cfg.Poll.IntervalSeconds),
		zap.String("http_port", cfg.HTTP.Port))

	if err := g.Wait(); err != nil {
		logger.Error(fmt.Sprintf("server error: %v", err))
	}
}
