package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"coinedge/internal/config"
	"coinedge/internal/logger"
	"coinedge/internal/storages/mongodb"
)

// Одноразовая миграция: дозаполняет отсутствующие поля у старых документов пользователей.
func main() {
	configPath := flag.String("c", "", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logger.Level)
	log.Info("Starting user fields migration...")

	storage, err := mongodb.New(&mongodb.Config{
		URI:         cfg.Mongo.URI,
		Database:    cfg.Mongo.Database,
		Timeout:     cfg.Mongo.Timeout,
		MaxPoolSize: cfg.Mongo.MaxPoolSize,
		MinPoolSize: cfg.Mongo.MinPoolSize,
	}, log)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := storage.Close(ctx); err != nil {
			log.Errorf("Failed to close MongoDB connection: %v", err)
		}
	}()

	ctx := context.Background()

	userIDs, err := storage.ListUserIDs(ctx)
	if err != nil {
		log.Fatalf("Failed to list users: %v", err)
	}

	updated := 0
	skipped := 0
	for _, userID := range userIDs {
		fields, err := storage.EnsureUserFields(ctx, userID)
		if err != nil {
			log.Errorf("Failed to migrate user %s: %v", userID, err)
			continue
		}
		if len(fields) == 0 {
			skipped++
			continue
		}
		log.Infof("Migrated user %s: added fields %v", userID, fields)
		updated++
	}

	log.Infof("Migration finished: %d users updated, %d already up to date", updated, skipped)
}
