package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/portacharging/charger-audit/internal/app"
	"github.com/portacharging/charger-audit/internal/audit"
	"github.com/portacharging/charger-audit/internal/config"
	"github.com/portacharging/charger-audit/internal/mqtt"
	"github.com/portacharging/charger-audit/internal/porta"
	"github.com/portacharging/charger-audit/internal/report"
	"github.com/portacharging/charger-audit/internal/transmission"
)

// version is injected at build time via ldflags
var version = "dev"

func main() {
	cfg := parseFlags()

	logger, logClose := setupLogger(cfg)
	defer logClose()

	logger.WithFields(logrus.Fields{
		"version": version,
		"region":  cfg.Region,
		"network": cfg.Network,
		"delay":   cfg.FetchDelay,
	}).Info("Starting charger-audit")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		logger.Info("Shutdown signal received")
		cancel()
	}()

	// Core clients ---------------------------------------------------------------
	client := porta.NewClient(cfg.APIBaseURL, cfg.AuthToken, cfg.GetAPITimeout(), logger)
	auditor := audit.New(logger)

	// Transmitter ----------------------------------------------------------------
	var tx transmission.Transmitter
	var mqttTx *transmission.MQTTTransmitter
	if cfg.HasMQTT() {
		mqttClient, err := mqtt.NewClient(cfg.MQTTUrl, cfg.MQTTTopic, logger)
		if err != nil {
			logger.WithError(err).Fatal("Failed to create MQTT client")
		}
		defer mqttClient.Disconnect(250)
		mqttTx = transmission.NewMQTTTransmitter(mqttClient, logger)
		tx = mqttTx
		logger.Info("MQTT transmitter ready")
	}

	// Run audit ------------------------------------------------------------------
	results, err := app.Run(ctx, cfg, client, auditor, tx, logger)
	if err != nil {
		logger.WithError(err).Error("Audit run failed")
		os.Exit(1)
	}

	if mqttTx != nil {
		if err := mqttTx.TransmitSummary(report.Summarize(results)); err != nil {
			logger.WithError(err).Warn("Summary transmit failed")
		}
	}

	if err := report.Render(results); err != nil {
		logger.WithError(err).Error("Failed to render report")
		os.Exit(1)
	}
}

// -----------------------------------------------------------------------------
// Helpers & Flags
// -----------------------------------------------------------------------------

func parseFlags() *config.Config {
	cfg := config.GetDefaultConfig()

	showVersion := flag.Bool("version", false, "Show version and exit")

	flag.StringVar(&cfg.APIBaseURL, "api-url", getEnv("CHARGER_AUDIT_API_URL", cfg.APIBaseURL), "Porta API base URL")
	flag.StringVar(&cfg.AuthToken, "auth-token", getEnv("CHARGER_AUDIT_TOKEN", cfg.AuthToken), "Bearer token for the Porta API")
	flag.StringVar(&cfg.Region, "region", getEnv("CHARGER_AUDIT_REGION", cfg.Region), "Region to audit")
	flag.StringVar(&cfg.Network, "network", getEnv("CHARGER_AUDIT_NETWORK", cfg.Network), "Charging network to audit")
	flag.StringVar(&cfg.LogFile, "log-file", getEnv("CHARGER_AUDIT_LOG_FILE", cfg.LogFile), "Also write logs to this file")
	flag.StringVar(&cfg.MQTTUrl, "mqtt-url", getEnv("CHARGER_AUDIT_MQTT_URL", cfg.MQTTUrl), "MQTT URL for result publishing (optional)")
	flag.StringVar(&cfg.MQTTTopic, "mqtt-topic", getEnv("CHARGER_AUDIT_MQTT_TOPIC", cfg.MQTTTopic), "Base MQTT topic")
	flag.BoolVar(&cfg.Verbose, "verbose", getEnv("CHARGER_AUDIT_VERBOSE", "false") == "true", "Verbose logging")
	flag.IntVar(&cfg.APITimeout, "api-timeout", cfg.APITimeout, "API request timeout in seconds")

	fetchDelayStr := flag.String("fetch-delay", getEnv("CHARGER_AUDIT_FETCH_DELAY", ""), "Delay between per-charger fetches (e.g. 500ms, 2s)")

	flag.Parse()

	if *showVersion {
		fmt.Printf("charger-audit %s\n", version)
		os.Exit(0)
	}

	if *fetchDelayStr != "" {
		if d, err := time.ParseDuration(*fetchDelayStr); err == nil && d >= 0 {
			cfg.FetchDelay = d
		}
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(2)
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// setupLogger builds the run logger, optionally teeing output into a log
// file. The returned func closes the file, if any.
func setupLogger(cfg *config.Config) (*logrus.Logger, func()) {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339})
	if cfg.Verbose {
		l.SetLevel(logrus.DebugLevel)
	} else {
		l.SetLevel(logrus.InfoLevel)
	}

	closeFn := func() {}
	if cfg.LogFile != "" {
		f, err := os.Create(cfg.LogFile)
		if err != nil {
			l.WithError(err).Warn("Could not open log file, logging to stderr only")
		} else {
			l.SetOutput(io.MultiWriter(os.Stderr, f))
			closeFn = func() { _ = f.Close() }
		}
	}
	return l, closeFn
}
