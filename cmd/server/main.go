package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/simplifymoney/kuberai-backend/internal/api"
	"github.com/simplifymoney/kuberai-backend/internal/assistant"
	"github.com/simplifymoney/kuberai-backend/internal/classify"
	"github.com/simplifymoney/kuberai-backend/internal/config"
	"github.com/simplifymoney/kuberai-backend/internal/db"
	"github.com/simplifymoney/kuberai-backend/internal/goldprice"
	"github.com/simplifymoney/kuberai-backend/internal/llm"
	"github.com/simplifymoney/kuberai-backend/internal/notifications"
	"github.com/simplifymoney/kuberai-backend/internal/purchase"
	"github.com/simplifymoney/kuberai-backend/internal/repository"
)

const banner = `
╔══════════════════════════════════════╗
║     KuberAI Gold Assistant v0.1      ║
║                                      ║
╚══════════════════════════════════════╝
`

func main() {
	fmt.Print(banner)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	cfg.Print()

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	// Database
	fmt.Printf("\n[DB] Connecting to %s:%d/%s ...\n", cfg.DBHost, cfg.DBPort, cfg.DBName)
	pool, err := db.Connect(cfg.DSN())
	if err != nil {
		fmt.Fprintf(os.Stderr, "[DB] Connection failed: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		pool.Close()
		fmt.Println("[DB] Connection pool closed")
	}()

	if err := db.TestConnection(pool); err != nil {
		fmt.Fprintf(os.Stderr, "[DB] Test query failed: %v\n", err)
		os.Exit(1)
	}

	ctxBoot, cancelBoot := context.WithTimeout(context.Background(), 10*time.Second)
	if err := db.EnsureSchema(ctxBoot, pool); err != nil {
		cancelBoot()
		fmt.Fprintf(os.Stderr, "[DB] Schema bootstrap failed: %v\n", err)
		os.Exit(1)
	}
	cancelBoot()

	// Repos
	userRepo := repository.NewUserRepo(pool)
	txnRepo := repository.NewTransactionRepo(pool)

	// Price pipeline: live client only when a credential is present,
	// backup snapshot always.
	backup := goldprice.NewBackupStore(cfg.BackupDataFile, logger)
	var goldClient *goldprice.Client
	if cfg.GoldAPIKey != "" {
		goldClient = goldprice.NewClient(cfg.GoldAPIBaseURL, cfg.GoldAPIKey)
	}
	prices := goldprice.NewService(goldClient, backup, logger)

	// Classifier: keyword base, LLM-decorated when a credential is present.
	var (
		classifier classify.Classifier = classify.Keyword{}
		generator  classify.TextGenerator
	)
	if cfg.GeminiAPIKey != "" {
		gemini := llm.NewGeminiClient(cfg.GeminiAPIKey, llm.GeminiOptions{
			BaseURL: cfg.GeminiBaseURL,
			Model:   cfg.GeminiModel,
		})
		classifier = classify.NewLLM(classifier, gemini, logger)
		generator = gemini
	}

	askService := assistant.New(classifier, prices, backup, generator, logger)

	// Purchases
	notify := notifications.NewSender(cfg.WebhookURL, cfg.BotName, logger)
	recorder := purchase.NewRecorder(userRepo, txnRepo, notify, logger)

	// Graceful shutdown context
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := api.NewServer(pool, askService, recorder, cfg.Port, cfg.CORSAllowOrigin, logger)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fmt.Fprintf(os.Stderr, "[API] Server error: %v\n", err)
			os.Exit(1)
		}
	}()

	fmt.Println("\nAll services started successfully")

	// Wait for shutdown signal
	<-ctx.Done()
	fmt.Println("\nShutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintf(os.Stderr, "[API] Shutdown error: %v\n", err)
	}
	fmt.Println("[API] Server closed")
	fmt.Println("Shutdown complete")
}
