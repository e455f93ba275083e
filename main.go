package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"churnpredict/config"
	chttp "churnpredict/http"
	"churnpredict/logging"
	"churnpredict/ml"
)

func main() {
	// .env is optional; the process environment still applies without it.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to read .env: %v", err)
	}

	defaultPath := config.DefaultPath
	if v := os.Getenv(config.EnvConfigPath); v != "" {
		defaultPath = v
	}
	configPath := flag.String("config", defaultPath, "path to config.yaml")
	flag.Parse()

	// 1. Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// 2. Load the model once; without it no request can be served
	predictor, err := ml.LoadPredictor(cfg.Model.Path)
	if err != nil {
		logger.Fatal("failed to load model", zap.String("path", cfg.Model.Path), zap.Error(err))
	}
	info := predictor.Info()
	logger.Info("model loaded",
		zap.String("type", info.Type),
		zap.String("version", info.Version),
		zap.String("path", info.Path))

	pipeline, err := ml.NewPipeline(predictor)
	if err != nil {
		logger.Fatal("failed to build pipeline", zap.Error(err))
	}
	display := chttp.NewDisplay(cfg.Display)
	handler, err := chttp.NewHandler(pipeline, display, logger)
	if err != nil {
		logger.Fatal("failed to build handler", zap.Error(err))
	}

	// 3. Start HTTP server
	server, err := chttp.NewServer(chttp.ServerConfig{
		Port:              cfg.HTTP.Port,
		Timeout:           cfg.HTTP.Timeout,
		AllowedOrigins:    cfg.HTTP.AllowedOrigins,
		RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
		MaxClients:        cfg.RateLimit.MaxClients,
	}, handler, logger)
	if err != nil {
		logger.Fatal("failed to build server", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := config.Watch(ctx, *configPath, cfg, logger, display.Set); err != nil {
			logger.Warn("config hot reload disabled", zap.Error(err))
		}
	}()

	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// 4. Handle graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	cancel()
	if err := server.Stop(); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	logger.Info("exiting")
}
