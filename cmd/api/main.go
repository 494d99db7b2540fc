package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"centavo/internal/account"
	accountStore "centavo/internal/account/store"
	"centavo/internal/category"
	categoryStore "centavo/internal/category/store"
	"centavo/internal/config"
	"centavo/internal/database"
	centavoHttp "centavo/internal/http"
	accountHandler "centavo/internal/http/account"
	categoryHandler "centavo/internal/http/category"
	importHandler "centavo/internal/http/importcsv"
	txHandler "centavo/internal/http/transaction"
	"centavo/internal/importer"
	"centavo/internal/transaction"
	txStore "centavo/internal/transaction/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(context.Background(), db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	var (
		accountService     = account.NewService(accountStore.New(db))
		categoryService    = category.NewService(categoryStore.New(db))
		transactionService = transaction.NewService(txStore.New(db))
		importService      = importer.NewService()
	)

	var (
		accountsH     = accountHandler.NewHandler(accountService)
		categoriesH   = categoryHandler.NewHandler(categoryService)
		transactionsH = txHandler.NewHandler(transactionService)
		importH       = importHandler.NewHandler(importService, transactionService)
	)

	router := centavoHttp.New(
		cfg.Auth.JWTSecret,
		cfg.CORS.AllowedOrigins,
		accountsH,
		categoriesH,
		transactionsH,
		importH,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
