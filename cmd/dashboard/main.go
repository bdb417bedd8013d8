package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"DataRizzer/internal/collector"
	"DataRizzer/internal/config"
	"DataRizzer/internal/dashboard"
	"DataRizzer/internal/engine"
	"DataRizzer/internal/logger"
	"DataRizzer/internal/metrics"
	"DataRizzer/internal/notifier"
	"DataRizzer/internal/scheduler"
	"DataRizzer/internal/server"

	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config validation: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cfg.Log.Output})
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	log.Info("DataRizzer starting", logger.String("config", cfgPath))

	var fetcher collector.Fetcher
	if cfg.DataSource.BaseURL != "" {
		fetcher = collector.NewRESTFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy, cfg.DataSource.Timeout)
	} else {
		fetcher = collector.NewYahooFetcher(cfg.DataSource.YahooBaseURL, cfg.Proxy, cfg.DataSource.Timeout)
	}
	log.Info("data source selected", logger.String("source", fetcher.Name()))

	eng, err := engine.New(engine.Config{
		ShortWindow: cfg.Engine.ShortWindow,
		LongWindow:  cfg.Engine.LongWindow,
		RSIPeriod:   cfg.Engine.RSIPeriod,
	})
	if err != nil {
		log.Fatal("init engine", logger.Error(err))
	}

	rec := metrics.New(prometheus.DefaultRegisterer)
	svc := dashboard.NewService(fetcher, eng, rec, log)

	opts := []server.ServerOption{
		server.WithHost(cfg.Server.Host),
		server.WithPort(cfg.Server.Port),
		server.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		server.WithCORS(cfg.Server.CORS),
	}
	if cfg.Metrics.Enabled {
		opts = append(opts, server.WithMetrics(rec, prometheus.DefaultGatherer, cfg.Metrics.Path))
	}
	handler := server.NewDashboardHandler(svc, cfg.Dashboard.Tickers, cfg.Dashboard.DefaultLookbackYears, log)
	srv := server.NewServer(log, handler, opts...)
	if err := srv.Start(); err != nil {
		log.Fatal("start http server", logger.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var sched *scheduler.Scheduler
	if cfg.NotifierEnabled() {
		tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Telegram.APIBase, cfg.Proxy, log)
		sched = scheduler.NewScheduler(ctx, svc, tn, cfg.Digest.Watchlist, cfg.Digest.LookbackYears, log)

		if cfg.Digest.Enabled {
			if err := sched.RegisterDigest(cfg.Digest.Cron); err != nil {
				log.Fatal("register digest", logger.Error(err))
			}
			sched.Start()
		}
		if cfg.Telegram.Polling {
			go tn.StartPolling(ctx, sched.HandleCommand)
			log.Info("telegram polling started")
		}
		if os.Getenv("RUN_ON_START") == "true" {
			log.Info("RUN_ON_START enabled, sending digest now")
			go sched.RunDigestNow()
		}
	}

	log.Info("DataRizzer is running, press Ctrl+C to stop")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("shutdown signal received, stopping")
	cancel()
	if sched != nil && cfg.Digest.Enabled {
		sched.Stop()
	}
	if err := srv.Stop(context.Background()); err != nil {
		log.Error("stop http server", logger.Error(err))
	}
	log.Info("DataRizzer stopped")
}
