package main

import (
	"context"
	"fmt"
	"log"

	"monthlyBars/config"
	"monthlyBars/internal/adapters/binanceclient"
	"monthlyBars/internal/adapters/logger"
	"monthlyBars/internal/domain"
	"monthlyBars/internal/utils"
)

func main() {
	ctx := context.Background()

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err) // Use standard log before logger is ready
	}

	// 2. Initialize Logger
	appLogger := logger.NewStdLogger(cfg.LogLevel)

	// 3. Initialize Exchange Client (Binance Adapter)
	binanceClient, err := binanceclient.New(binanceclient.Config{
		APIKey:     cfg.APIKey,
		SecretKey:  cfg.SecretKey,
		UseTestnet: cfg.IsTestnet,
		Logger:     appLogger,
	})
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize Binance client: %v", err)
	}
	if err := binanceClient.Ping(ctx); err != nil {
		log.Fatalf("FATAL: Binance is unreachable: %v", err)
	}

	// 4. Fetch every symbol into one table in loader format
	var all []domain.DailyRecord
	for _, symbol := range cfg.FetchSymbols {
		records, err := binanceClient.GetDailyRecords(ctx, symbol, cfg.FetchStart, cfg.FetchEnd)
		if err != nil {
			log.Fatalf("Error fetching daily klines for %s: %v", symbol, err)
		}
		appLogger.Info(ctx, "Fetched daily klines", map[string]interface{}{"symbol": symbol, "count": len(records)})
		all = append(all, records...)
	}

	if err := utils.WriteDailyRecordsToCSV(all, cfg.InputPath); err != nil {
		log.Fatalf("Error writing CSV: %v", err)
	}
	appLogger.Info(ctx, "Saved daily input", map[string]interface{}{
		"path":  cfg.InputPath,
		"rows":  len(all),
		"range": fmt.Sprintf("%s..%s", cfg.FetchStart.Format("2006-01-02"), cfg.FetchEnd.Format("2006-01-02")),
	})
}
