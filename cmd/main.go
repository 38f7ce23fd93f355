package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wb-go/wbf/config"
	"github.com/wb-go/wbf/zlog"

	"csaweb/cmd/buildCFG"
	"csaweb/internal/api/api"
	"csaweb/internal/backend"
	"csaweb/internal/mailer"
	"csaweb/internal/notifier"
	"csaweb/internal/rabbit"
	"csaweb/internal/service"
	"csaweb/internal/session"
)

func main() {
	zlog.Init()
	log := zlog.Logger

	cfg := config.New()
	if err := cfg.Load("config.yaml", "", "'"); err != nil {
		log.Fatal().Msgf("failed to load configuration: %v", err)
	}
	serverCfg := buildCFG.BuildServerConfig(cfg, &log)
	port := serverCfg.Port

	backendCfg, err := buildCFG.BuildBackendConfig(cfg, &log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build backend config")
	}
	apiClient := backend.NewClient(backendCfg.BaseURL, backendCfg.Timeout)

	sessionCfg := buildCFG.BuildSessionConfig(cfg)
	sessions := session.NewStore(sessionCfg.TTL)

	rabbitCfg, err := buildCFG.BuildRabbitConfig(cfg, &log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load RabbitMQ config")
	}
	rmq, err := rabbit.NewRabbit(rabbitCfg.Url, rabbitCfg.Exchange, rabbitCfg.Queue)
	if err != nil {
		log.Fatal().Msgf("Failed to connect to RabbitMQ: %v", err)
	}
	defer rmq.Close()

	smtpCfg, err := buildCFG.BuildSMTPConfig(cfg, &log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load SMTP config")
	}
	mail := mailer.New(smtpCfg.Host, smtpCfg.Port, smtpCfg.From, smtpCfg.Password, &log)

	workerCtx, cancelWorkers := context.WithCancel(context.Background())

	reader := notifier.NewReader(rmq, mail)
	reader.Start(workerCtx)

	serviceInstance := service.NewService(apiClient, sessions, &log, rmq)
	app := api.NewRouters(&api.Routers{Service: serviceInstance})

	serverErrChan := make(chan error, 1)
	go func() {
		log.Info().Msgf("Starting server on %s", port)
		if err := app.Run(":" + port); err != nil {
			serverErrChan <- fmt.Errorf("failed to start server: %w", err)
		}
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-signalChan:
		log.Info().Msgf("Received signal %s. Initiating shutdown...", sig)
	case err := <-serverErrChan:
		log.Error().Msgf("Server error: %v", err)
	}

	cancelWorkers()
	reader.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if closer, ok := interface{}(app).(interface{ Close(context.Context) error }); ok {
		if err := closer.Close(shutdownCtx); err != nil {
			log.Error().Msgf("Error shutting down server: %v", err)
		}
	}

	log.Info().Msg("Shutdown complete")
}
