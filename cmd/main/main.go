package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"stock-monitor/src/config"
	"stock-monitor/src/logger"
	"stock-monitor/src/retry"
)

// -----------------------------------------------------------------------------

func main() {

	// Parse command line flags
	logFile := flag.String("log-file", "stock_price_monitor.log", "path to the log file")
	configOut := flag.String("write-config", "", "optional path to persist the effective config as YAML")
	flag.Parse()

	// Load config from the environment (.env honoured when present)
	config, err := config.NewConfig()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	appLogger, err := logger.GetLogger("StockPriceMonitor", *logFile, logger.ParseLevel(config.LogLevel))
	if err != nil {
		fmt.Printf("Error setting up logger: %v\n", err)
		os.Exit(1)
	}

	appLogger.Info("Configuration loaded: %d symbols (%s), poll interval %ds",
		len(config.Symbols), strings.Join(config.Symbols, ","), config.PollInterval)
	appLogger.Debug("API base URL: %s, server URL: %s", config.BaseURL, config.ServerURL)

	// Optionally persist the effective configuration
	if *configOut != "" {
		if err := config.Save(*configOut); err != nil {
			appLogger.Critical("Failed to write config: %v", err)
		}
		appLogger.Info("Effective config written to %s", *configOut)
	}

	// Backoff settings for anything unreliable the monitor invokes
	retryCfg := retry.Config{
		MaxRetries: config.RetryCount,
		BaseDelay:  time.Duration(config.RetryDelay) * time.Second,
		MaxDelay:   60 * time.Second,
	}

	// Readiness probe: the poller wires its fetch through the same wrapper
	err = retry.Do(retryCfg, "startup probe", appLogger, func() error {
		return nil
	})
	if err != nil {
		appLogger.Critical("Startup probe failed: %v", err)
	}

	appLogger.Info("Monitor core ready")
}
