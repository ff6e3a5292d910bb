// cmd/worker-manager/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"rfq-lead-workers/internal/common/aws"
	"rfq-lead-workers/internal/common/camunda"
	"rfq-lead-workers/internal/common/config"
	"rfq-lead-workers/internal/common/database"
	"rfq-lead-workers/internal/common/logger"
	"rfq-lead-workers/internal/common/observability"
	"rfq-lead-workers/internal/leadscoring"
	"rfq-lead-workers/pkg/registry"

	getscore "rfq-lead-workers/internal/workers/lead/get-rfq-lead-score"
	indexlead "rfq-lead-workers/internal/workers/lead/index-rfq-lead"
	notifylead "rfq-lead-workers/internal/workers/lead/notify-hot-lead"
	scorelead "rfq-lead-workers/internal/workers/lead/score-rfq-lead"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

// resolveWorkerConfig prefers the config file entry and falls back to the
// activity registry defaults for workers the file does not mention.
func resolveWorkerConfig(workers map[string]config.WorkerConfig, reg *registry.ActivityRegistry, taskType string, log *zap.Logger) config.WorkerConfig {
	if wc, ok := workers[taskType]; ok {
		return wc
	}

	wc := config.WorkerConfig{Enabled: true, MaxJobsActive: 5, Timeout: 30000, MaxRetries: 3}
	if reg == nil {
		return wc
	}
	activity, ok := reg.Find(taskType)
	if !ok {
		log.Warn("task type missing from activity registry", zap.String("taskType", taskType))
		return wc
	}
	if d := activity.TimeoutDuration(); d > 0 {
		wc.Timeout = int(d.Milliseconds())
	}
	if activity.Retries > 0 {
		wc.MaxRetries = activity.Retries
	}
	return wc
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("info", "console")
		bootLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs, err := observability.New(cfg.App.Name)
	if err != nil {
		zapLog.Fatal("observability init failed", zap.Error(err))
	}

	ctx := context.Background()

	// --- Zeebe ---
	var zeebe *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebe, err = camunda.NewClientWithConfig(&camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
			ConnectionTimeout:      config.GetDuration(cfg.Camunda.RequestTimeout),
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	defer zeebe.Close()
	zapLog.Info("Zeebe client connected successfully")

	// --- PostgreSQL ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		return err
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	if cfg.Database.Postgres.AutoMigrate {
		applied, err := pg.ApplyMigrations(ctx, cfg.Database.Postgres.MigrationsDir)
		if err != nil {
			zapLog.Fatal("migrations failed", zap.Error(err), zap.Strings("applied", applied))
		}
		zapLog.Info("Migrations applied", zap.Strings("files", applied))
	}

	// --- Redis ---
	var rdb *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		rdb, err = database.NewRedis(cfg.Database.Redis)
		return err
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer rdb.Close()
	zapLog.Info("Redis connected successfully")

	// --- Elasticsearch ---
	var es *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		es, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		return es.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")
	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	// --- AWS notification channels ---
	var (
		emailSender notifylead.EmailSender
		smsSender   notifylead.SMSSender
	)
	if cfg.Notifications.AnyEnabled() {
		awsCfg, err := aws.LoadConfig(ctx, cfg.Notifications.Region)
		if err != nil {
			zapLog.Fatal("aws config load failed", zap.Error(err))
		}
		if cfg.Notifications.Email.Enabled {
			emailSender = aws.NewSESClient(awsCfg, cfg.Notifications.Email.FromEmail)
		}
		if cfg.Notifications.SMS.Enabled {
			smsSender = aws.NewSNSClient(awsCfg)
		}
		zapLog.Info("AWS notification clients initialized",
			zap.String("region", cfg.Notifications.Region),
			zap.Bool("email", cfg.Notifications.Email.Enabled),
			zap.Bool("sms", cfg.Notifications.SMS.Enabled),
		)
	}

	// --- Activity registry ---
	reg, err := registry.LoadRegistry(cfg.Registry.Path)
	if err != nil {
		zapLog.Warn("activity registry not loaded, using built-in worker defaults",
			zap.String("path", cfg.Registry.Path), zap.Error(err))
		reg = nil
	} else {
		for _, problem := range reg.Validate() {
			zapLog.Warn("activity registry problem", zap.Error(problem))
		}
	}

	// --- Lead scoring ---
	store := leadscoring.NewPostgresStore(pg.DB)
	scorer := leadscoring.NewScorer(store, log)
	cache := leadscoring.NewCache(rdb.Client, cfg.Leads.TTL())

	pool := camunda.NewWorkerPool(zeebe.GetClient(), zapLog)
	workerCfg := func(taskType string) config.WorkerConfig {
		return resolveWorkerConfig(cfg.Workers, reg, taskType, zapLog)
	}

	{
		wc := workerCfg(scorelead.TaskType)
		hcfg := scorelead.LoadConfig()
		hcfg.Timeout = config.GetDuration(wc.Timeout)
		hcfg.MaxRetries = wc.MaxRetries
		handler, err := scorelead.NewHandler(hcfg, scorer, cache, obs, log)
		if err != nil {
			zapLog.Fatal("failed to create score-rfq-lead handler", zap.Error(err))
		}
		pool.Start(scorelead.TaskType, wc, handler)
	}

	{
		wc := workerCfg(getscore.TaskType)
		hcfg := getscore.LoadConfig()
		hcfg.Timeout = config.GetDuration(wc.Timeout)
		hcfg.MaxRetries = wc.MaxRetries
		pool.Start(getscore.TaskType, wc, getscore.NewHandler(hcfg, store, cache, obs, log))
	}

	{
		wc := workerCfg(indexlead.TaskType)
		hcfg := indexlead.LoadConfig()
		hcfg.IndexName = cfg.Leads.IndexName
		hcfg.Timeout = config.GetDuration(wc.Timeout)
		hcfg.MaxRetries = wc.MaxRetries
		pool.Start(indexlead.TaskType, wc, indexlead.NewHandler(hcfg, es, obs, log))
	}

	{
		wc := workerCfg(notifylead.TaskType)
		hcfg := notifylead.LoadConfig(cfg.Notifications)
		hcfg.Timeout = config.GetDuration(wc.Timeout)
		hcfg.MaxRetries = wc.MaxRetries
		pool.Start(notifylead.TaskType, wc, notifylead.NewHandler(hcfg, emailSender, smsSender, obs, log))
	}

	zapLog.Info("Workers registered", zap.Strings("taskTypes", pool.Running()))

	// --- Health, readiness and metrics ---
	status := &statusServer{
		checks: map[string]readinessCheck{
			"zeebe":         zeebe.HealthCheck,
			"postgres":      pg.Ping,
			"redis":         rdb.Ping,
			"elasticsearch": es.Ping,
		},
		workers: pool.Running,
		timeout: 5 * time.Second,
	}
	srv := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           newRouter(status),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		zapLog.Info("HTTP server listening", zap.String("addr", cfg.Server.Address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Error("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	pool.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Warn("HTTP server shutdown failed", zap.Error(err))
	}
	if err := obs.Shutdown(shutdownCtx); err != nil {
		zapLog.Warn("observability shutdown failed", zap.Error(err))
	}
	zapLog.Info("Worker manager stopped")
}
