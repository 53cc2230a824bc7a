package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/alexmenard/e2ee-api/config"
	conversationsRepository "github.com/alexmenard/e2ee-api/internal/conversations/repository"
	conversationsUsecase "github.com/alexmenard/e2ee-api/internal/conversations/usecase"
	identityModels "github.com/alexmenard/e2ee-api/internal/identity/model"
	identityRepository "github.com/alexmenard/e2ee-api/internal/identity/repository"
	identityUsecase "github.com/alexmenard/e2ee-api/internal/identity/usecase"
	keysModels "github.com/alexmenard/e2ee-api/internal/keys/model"
	keysRepository "github.com/alexmenard/e2ee-api/internal/keys/repository"
	keysUsecase "github.com/alexmenard/e2ee-api/internal/keys/usecase"
	messagingModels "github.com/alexmenard/e2ee-api/internal/messaging/model"
	messagingRepository "github.com/alexmenard/e2ee-api/internal/messaging/repository"
	messagingUsecase "github.com/alexmenard/e2ee-api/internal/messaging/usecase"
	"github.com/alexmenard/e2ee-api/internal/server"
	"github.com/alexmenard/e2ee-api/pkg/logger"
)

var configName string

var rootCmd = &cobra.Command{
	Use:   "e2ee-api",
	Short: "End-to-end encrypted messaging backend",
	Long:  "Prekey distribution and store-and-forward message delivery for E2EE clients.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

func init() {
	rootCmd.Flags().StringVar(&configName, "config", "config", "config file name (without extension) under ./config")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	v, err := config.LoadConfig(configName)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg, err := config.ParseConfig(v)
	if err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	log, err := logger.NewLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Bun.DSN)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	if err := createSchema(ctx, db); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	identityRepo := identityRepository.NewIdentityRepository(db, *log)
	keysRepo := keysRepository.NewKeysRepository(db, *log)
	messagingRepo := messagingRepository.NewMessagingRepository(db, *log)
	conversationsRepo := conversationsRepository.NewConversationsRepository(db, *log)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	srv := server.NewServer(*cfg, *log, server.Deps{
		Identity:      identityUsecase.NewIdentityUsecase(identityRepo, *log, *cfg),
		Keys:          keysUsecase.NewKeysUsecase(keysRepo, *log, *cfg),
		Messaging:     messagingUsecase.NewMessagingUsecase(messagingRepo, *log),
		Conversations: conversationsUsecase.NewConversationsUsecase(conversationsRepo, *log),
		Registry:      registry,
	})

	return srv.Run(ctx)
}

func createSchema(ctx context.Context, db *bun.DB) error {
	tables := []any{
		(*identityModels.User)(nil),
		(*identityModels.Device)(nil),
		(*identityModels.Session)(nil),
		(*keysModels.SignedPreKey)(nil),
		(*keysModels.OneTimePreKey)(nil),
		(*messagingModels.Message)(nil),
	}
	for _, table := range tables {
		if _, err := db.NewCreateTable().Model(table).IfNotExists().Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}
