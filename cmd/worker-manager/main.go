package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"resume-workers/internal/common/api"
	"resume-workers/internal/common/config"
	"resume-workers/internal/common/logger"
	"resume-workers/internal/common/oracle"
	"resume-workers/internal/common/queue"
	"resume-workers/internal/common/storage"
	"resume-workers/internal/scoring"

	extractresume "resume-workers/internal/workers/extract-resume"
	scoreapplicant "resume-workers/internal/workers/score-applicant"
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

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...",
		zap.String("environment", cfg.App.Environment))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- Init Redis with retry ---
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	err = retryWithBackoff(func() error {
		return redisClient.Ping(ctx).Err()
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redisClient.Close()
	zapLog.Info("Redis connected successfully")

	// --- Init Object Storage ---
	store, err := storage.NewClient(ctx, cfg.Storage)
	if err != nil {
		zapLog.Fatal("object storage client failed", zap.Error(err))
	}
	zapLog.Info("Object storage client initialized",
		zap.String("bucket", cfg.Storage.Bucket))

	// --- Init Platform API Client ---
	apiClient := api.NewClient(cfg.API)
	zapLog.Info("Platform API client initialized",
		zap.String("baseUrl", cfg.API.BaseURL))

	// --- Init Oracle Client ---
	oracleClient, err := oracle.NewClient(ctx, cfg.Oracle)
	if err != nil {
		zapLog.Fatal("oracle client failed", zap.Error(err))
	}
	zapLog.Info("Oracle client initialized")

	// --- Register Workers ---
	consumer := queue.NewConsumer(redisClient, cfg.Redis.QueueName, log)

	if wcfg, ok := cfg.Workers[extractresume.TaskType]; !ok || wcfg.Enabled {
		handler := extractresume.NewHandler(
			workerConfigOrDefault(cfg, extractresume.TaskType, extractresume.LoadConfig()),
			store, oracleClient, apiClient, log,
		)
		consumer.Register(extractresume.TaskType, handler)
		zapLog.Info("worker registered", zap.String("taskType", extractresume.TaskType))
	}

	if wcfg, ok := cfg.Workers[scoreapplicant.TaskType]; !ok || wcfg.Enabled {
		engine := scoring.NewEngine(
			scoring.NewSkillsScorer(oracleClient),
			scoring.NewEducationScorer(oracleClient),
			scoring.NewExperienceScorer(oracleClient, time.Now),
		)
		handler := scoreapplicant.NewHandler(
			scoreConfigOrDefault(cfg, scoreapplicant.TaskType, scoreapplicant.LoadConfig()),
			engine, apiClient, log,
		)
		consumer.Register(scoreapplicant.TaskType, handler)
		zapLog.Info("worker registered", zap.String("taskType", scoreapplicant.TaskType))
	}

	// --- Health/Metrics Server ---
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if err := redisClient.Ping(r.Context()).Err(); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				json.NewEncoder(w).Encode(map[string]string{"status": "not ready", "error": err.Error()})
				return
			}
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "ready",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.Handle("/metrics", promhttp.Handler())
		addr := fmt.Sprintf(":%d", cfg.App.MetricsPort)
		zapLog.Info("Health/Metrics server listening", zap.String("addr", addr))
		if err := http.ListenAndServe(addr, nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Run Consumer until shutdown ---
	done := make(chan error, 1)
	go func() {
		done <- consumer.Run(ctx)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigCh:
		zapLog.Info("Shutdown signal received, stopping workers...")
		cancel()
		select {
		case <-done:
		case <-time.After(30 * time.Second):
			zapLog.Warn("consumer did not stop in time")
		}
	case err := <-done:
		if err != nil && err != context.Canceled {
			zapLog.Error("consumer stopped unexpectedly", zap.Error(err))
		}
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func workerConfigOrDefault(cfg *config.Config, taskType string, def *extractresume.Config) *extractresume.Config {
	if wcfg, ok := cfg.Workers[taskType]; ok && wcfg.Timeout > 0 {
		return &extractresume.Config{Timeout: time.Duration(wcfg.Timeout) * time.Second}
	}
	return def
}

func scoreConfigOrDefault(cfg *config.Config, taskType string, def *scoreapplicant.Config) *scoreapplicant.Config {
	if wcfg, ok := cfg.Workers[taskType]; ok && wcfg.Timeout > 0 {
		return &scoreapplicant.Config{Timeout: time.Duration(wcfg.Timeout) * time.Second}
	}
	return def
}
