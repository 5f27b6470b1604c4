package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"CryptoDash/internal/collector"
	"CryptoDash/internal/config"
	"CryptoDash/internal/dashboard"
	"CryptoDash/internal/display"
	"CryptoDash/internal/model"
	"CryptoDash/internal/notifier"
	"CryptoDash/internal/recorder"
	"CryptoDash/internal/web"

	log "github.com/sirupsen/logrus"
)

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.Info("CryptoDash starting...")

	if err := config.LoadEnvFile(".env"); err != nil {
		log.Fatalf("load .env: %v", err)
	}

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config validation: %v", err)
	}
	setupLogging(cfg)

	// Init fetcher
	fetcher := collector.NewCMCFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy, cfg.RequestTimeout())
	log.Infof("data source: %s", fetcher.Name())

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Warnf("init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dash := dashboard.New(cfg.Assets, fetcher, dashboard.Options{
		Interval: cfg.PollInterval(),
		Recorder: rec,
	})
	if err := dash.Start(ctx); err != nil {
		log.Fatalf("start dashboard: %v", err)
	}
	defer dash.Stop()

	chart := model.DefaultChartConfig()

	// Start Telegram polling
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
	if tn.Enabled() {
		go tn.StartPolling(ctx, notifier.Commands(func() []display.View { return dash.Views(chart) }))
		log.Info("Telegram polling started")
	}

	h := web.NewServer(fmt.Sprintf(":%d", cfg.Server.Port), dash, chart, cfg.PollInterval())
	go func() {
		if err := h.Run(); err != nil {
			log.Errorf("http server: %v", err)
			cancel()
		}
	}()

	log.Infof("CryptoDash is running on :%d. Press Ctrl+C to stop.", cfg.Server.Port)

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
		log.Info("shutdown signal received, stopping...")
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := h.Shutdown(shutdownCtx); err != nil {
		log.Warnf("http shutdown: %v", err)
	}
	cancel()
	log.Info("CryptoDash stopped")
}

func setupLogging(cfg *config.Config) {
	if cfg.Log.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	}
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		log.Warnf("unknown log level %q, using info", cfg.Log.Level)
		level = log.InfoLevel
	}
	log.SetLevel(level)
}
