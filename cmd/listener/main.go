package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"yard-monitor/internal/config"
	"yard-monitor/internal/infrastructure/database/postgres"
	"yard-monitor/internal/ingestion"
	"yard-monitor/internal/logger"
	pkgmqtt "yard-monitor/pkg/mqtt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("Failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	env := cfg.Server.Environment
	if env == "" {
		env = "development"
	}
	if err := logger.Init(env); err != nil {
		os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting yard monitor listener",
		zap.String("environment", env),
		zap.String("broker", cfg.MQTT.Broker),
	)

	if cfg.Database.Host == "" || cfg.Database.DBName == "" {
		logger.Fatal("Database configuration is missing. Please set DB_HOST and DB_NAME environment variables.")
	}

	db, err := postgres.NewDB(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	repo := ingestion.NewRepository(db)
	processor := ingestion.NewProcessor(repo)

	clientID := cfg.MQTT.ClientID
	if clientID == "" {
		clientID = "yard-monitor-listener"
	}

	ingestClient, err := ingestion.NewMQTTIngestionClient(&ingestion.MQTTIngestionConfig{
		ClientConfig: &pkgmqtt.Config{
			Broker:         cfg.MQTT.Broker,
			ClientID:       clientID,
			Username:       cfg.MQTT.Username,
			Password:       cfg.MQTT.Password,
			CleanSession:   true,
			KeepAlive:      cfg.MQTT.KeepAlive,
			ConnectTimeout: cfg.MQTT.ConnectTimeout,
			// Reconnection is an operational concern: losing the long-lived
			// connection is fatal and supervision restarts the process.
			AutoReconnect: false,
			OnConnectionLost: func(err error) {
				logger.Fatal("MQTT connection lost", zap.Error(err))
			},
		},
		StatusTopic: cfg.MQTT.StatusTopic,
		QoS:         byte(cfg.MQTT.QoS),
	}, processor)
	if err != nil {
		logger.Fatal("Failed to build MQTT ingestion client", zap.Error(err))
	}

	if err := ingestClient.Start(); err != nil {
		logger.Fatal("Failed to start MQTT ingestion client", zap.Error(err))
	}

	// Periodic ingest counters, useful when supervising the process.
	metricsDone := make(chan struct{})
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				m := processor.Metrics()
				logger.Info("ingest metrics",
					zap.Int64("received", m.ReportsReceived),
					zap.Int64("applied", m.ReportsApplied),
					zap.Int64("assignments_cleared", m.AssignmentsCleared),
					zap.Int64("rejected", m.ReportsRejected),
					zap.Int64("failed", m.ReportsFailed),
				)
			case <-metricsDone:
				return
			}
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down listener ...")

	close(metricsDone)
	ingestClient.Stop()

	logger.Info("Listener exited properly")
}
