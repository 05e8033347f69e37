package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	assistbiz "github.com/haideraly09/trove-api-integration/internal/assist/biz"
	assistservice "github.com/haideraly09/trove-api-integration/internal/assist/service"
	"github.com/haideraly09/trove-api-integration/internal/conf"
	"github.com/haideraly09/trove-api-integration/internal/pkg/logger"
	"github.com/haideraly09/trove-api-integration/internal/server"
	troveclient "github.com/haideraly09/trove-api-integration/internal/trove/client"
	troveservice "github.com/haideraly09/trove-api-integration/internal/trove/service"
	trovetypes "github.com/haideraly09/trove-api-integration/internal/trove/types"
)

var configFile = flag.String("config", "config.yaml", "config file path")

func main() {
	flag.Parse()

	config, err := conf.LoadConfig(*configFile)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logConfig := &logger.Config{
		Level:            config.Log.Level,
		Format:           config.Log.Format,
		Output:           config.Log.Output,
		EnableCaller:     config.Log.EnableCaller,
		EnableStacktrace: config.Log.EnableStacktrace,
		File: logger.FileConfig{
			Filename:   config.Log.File.Filename,
			MaxSize:    config.Log.File.MaxSize,
			MaxAge:     config.Log.File.MaxAge,
			MaxBackups: config.Log.File.MaxBackups,
			Compress:   config.Log.File.Compress,
		},
	}

	log, err := logger.New(logConfig)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	if err := logger.InitGlobal(logConfig); err != nil {
		log.Fatal("failed to initialize global logger", zap.Error(err))
	}

	log.Info("config loaded successfully")

	trove, err := troveclient.New(&trovetypes.ClientConfig{
		APIHost:      config.Trove.APIHost,
		APIKey:       config.Trove.APIKey,
		Timeout:      config.Trove.Timeout,
		MaxRetries:   config.Trove.MaxRetries,
		RetryBackoff: config.Trove.RetryBackoff,
	}, log)
	if err != nil {
		log.Fatal("failed to create trove client", zap.Error(err))
	}

	if !trove.HasAPIKey() {
		log.Warn("TROVE_API_KEY not set; search requests will return a configuration error")
	}

	assistUseCase := assistbiz.NewAssistUseCase(&assistbiz.Config{
		APIKey:      config.Assist.APIKey,
		BaseURL:     config.Assist.APIHost,
		Model:       config.Assist.Model,
		MaxTokens:   config.Assist.MaxTokens,
		Temperature: config.Assist.Temperature,
		Timeout:     time.Duration(config.Assist.Timeout) * time.Second,
	}, log)

	troveService := troveservice.NewTroveService(trove, log)
	assistService := assistservice.NewAssistService(assistUseCase, log)

	httpServer := server.NewHTTPServer(config, log, troveService, assistService)

	go func() {
		if err := httpServer.Start(); err != nil {
			log.Fatal("failed to start HTTP server", zap.Error(err))
		}
	}()

	log.Info("server started successfully")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Stop(ctx); err != nil {
		log.Error("HTTP server forced to shutdown", zap.Error(err))
	}

	log.Info("server exited")
}
