package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/ndmitry/pricetrack/internal/client/api"
	"github.com/ndmitry/pricetrack/internal/client/auth"
	"github.com/ndmitry/pricetrack/internal/client/cache"
	"github.com/ndmitry/pricetrack/internal/client/cli"
	"github.com/ndmitry/pricetrack/internal/client/iocli"
	"github.com/ndmitry/pricetrack/internal/client/products"
	"github.com/ndmitry/pricetrack/internal/client/session"
	"github.com/ndmitry/pricetrack/internal/client/storage/boltdb"
	"github.com/ndmitry/pricetrack/internal/config"
	"github.com/ndmitry/pricetrack/internal/crypto"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Глобальные флаги; значения по умолчанию берутся из окружения
	showVersion := flag.Bool("version", false, "Show version information")
	serverURL := flag.String("server", "", "API base URL (overrides "+config.EnvBaseURL+")")
	dbPath := flag.String("db", "", "Path to local token database (overrides "+config.EnvDBPath+")")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage()
		os.Exit(1)
	}

	command := args[0]

	cfg, err := config.Load()
	if err != nil {
		// Флаг --server позволяет работать без переменной окружения
		if *serverURL == "" {
			fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
			os.Exit(1)
		}
		cfg = &config.Config{
			DBPath:      "pricetrack-client.db",
			HTTPTimeout: config.DefaultHTTPTimeout,
		}
	}
	if *serverURL != "" {
		cfg.BaseURL = *serverURL
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}

	ctx := context.Background()

	boltStorage, err := boltdb.New(ctx, cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := boltStorage.Close(); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()

	// Ключ шифрования токенов деривируется из секрета устройства
	deviceSecret, err := crypto.LoadOrCreateDeviceSecret(cfg.DBPath + ".key")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load device secret: %v\n", err)
		os.Exit(1)
	}
	storeKey, err := crypto.DeriveStoreKey(deviceSecret)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to derive store key: %v\n", err)
		os.Exit(1)
	}

	apiClient := api.NewClient(cfg.BaseURL, cfg.HTTPTimeout)
	tokenStore := auth.NewTokenStore(boltStorage, storeKey)
	manager := auth.NewManager(tokenStore, apiClient)

	// Один кеш на процесс: logout чистит и сессию, и данные продуктов
	queryCache := cache.New()

	sess := session.New(apiClient, manager, queryCache)
	productService := products.NewService(apiClient, tokenStore, queryCache)

	app := cli.New(iocli.NewStdio(), sess, productService)

	if err := app.Run(ctx, command, args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printVersion() {
	fmt.Printf("PriceTrack Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
