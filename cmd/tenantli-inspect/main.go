package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tenantli-inspect/internal/assembler"
	"tenantli-inspect/internal/config"
	httpapi "tenantli-inspect/internal/http"
	"tenantli-inspect/internal/logger"
	"tenantli-inspect/internal/repository"
	"tenantli-inspect/internal/service"
	"tenantli-inspect/internal/store"
	"tenantli-inspect/internal/uploader"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "tenantli-inspect")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	kv := store.NewRedisKV(redisClient)
	cache := repository.NewFallbackCache(kv, log)

	policy := repository.ResiliencePolicy{
		Retries: cfg.Upload.Retries,
		Backoff: cfg.Upload.Backoff,
		Timeout: cfg.Upload.Timeout,
	}
	client := repository.NewAPIClient(cfg.API.BaseURL, policy, log)

	reportsRepo := repository.NewAPIReportsRepo(client, log)
	propertiesRepo := repository.NewAPIPropertiesRepo(client, log)
	roomsRepo := repository.NewAPIRoomsRepo(client, log)
	photosRepo := repository.NewAPIPhotosRepo(client, log)

	asm := assembler.NewAssembler(cfg.API.BaseURL, log)
	reports := service.NewReportService(reportsRepo, propertiesRepo, roomsRepo, photosRepo, asm, log)
	rooms := service.NewRoomService(roomsRepo, cache, log)

	up := uploader.New(cfg.API.BaseURL, policy, log)

	router := httpapi.NewRouter(log)
	router.RegisterReportRoutes(httpapi.NewReportHandler(reports, log))
	router.RegisterRoomRoutes(httpapi.NewRoomHandler(rooms, log), httpapi.NewUploadHandler(up, log))

	srv := service.NewServer(cfg.HTTP.Addr, router, log)

	_, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	log.Info("tenantli-inspect started",
		zap.String("addr", cfg.HTTP.Addr),
		zap.String("api_base", cfg.API.BaseURL),
		zap.String("env", cfg.Env),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		cancel()
	case <-errCh:
		cancel()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Stop(shutdownCtx)
	_ = redisClient.Close()
}
