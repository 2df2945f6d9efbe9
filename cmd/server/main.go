package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"keyword-radar/internal/config"
	"keyword-radar/internal/handler"
	"keyword-radar/internal/service"
	"keyword-radar/pkg/logger"
)

const shutdownTimeout = 5 * time.Second

type Application struct {
	configPath string
	debug      bool
}

func main() {
	app := &Application{}

	flag.StringVar(&app.configPath, "config", os.Getenv("KEYWORD_RADAR_CONFIG"), "Configuration file path")
	flag.BoolVar(&app.debug, "debug", false, "Enable debug mode")
	flag.Parse()

	if err := app.Run(); err != nil {
		log.Fatalf("Application failed: %v", err)
	}
}

func (app *Application) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := config.NewManager()
	cfg, err := manager.Load(app.configPath)
	if err != nil {
		return err
	}

	settings := cfg.LoggerSettings()
	if app.debug {
		settings.Level = "debug"
	}
	logger.SetGlobalLogger(logger.New(settings))
	appLog := logger.GetLogger().WithField("component", "server")

	rt, err := service.Build(cfg)
	if err != nil {
		return err
	}
	defer rt.Close()

	if app.configPath != "" {
		err := manager.Watch(func(next *config.Config) {
			// Clients and component loggers are bound at startup; a reload
			// only replaces the global logger.
			logger.SetGlobalLogger(logger.New(next.LoggerSettings()))
			appLog.WithField("config", app.configPath).Info("Configuration reloaded")
		})
		if err != nil {
			appLog.WithError(err).Warn("Config watch disabled")
		}
	}

	controller := handler.NewController(rt.Analysis, rt.History, handler.ControllerConfig{
		AnalyzeTimeout: 2 * time.Minute,
	})
	server := controller.App()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	errCh := make(chan error, 1)
	go func() {
		appLog.WithField("addr", addr).Info("Starting keyword-radar server")
		errCh <- server.Listen(addr)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		appLog.Info("Shutdown signal received")
		cancel()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server stopped: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	appLog.Info("Shutting down gracefully")
	if err := server.ShutdownWithTimeout(shutdownTimeout); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	appLog.Info("Server stopped")
	return nil
}
