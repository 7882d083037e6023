package main

import (
	"context"
	"encoding/csv"
	"flag"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	"cpsGrowth/domain"
	psqlRepo "cpsGrowth/internal/repository/postgres"
	"cpsGrowth/pkg/config"
	"cpsGrowth/pkg/database"
	"cpsGrowth/pkg/logger"

	"github.com/google/uuid"
)

// Imports a Tianchi UserBehavior CSV (user_id,item_id,category_id,behavior,
// timestamp) into the user_behavior table in batches.
func main() {
	var (
		filePath  = flag.String("file", "", "path to the UserBehavior CSV")
		batchSize = flag.Int("batch-size", 5000, "rows per insert batch")
	)
	flag.Parse()

	if *filePath == "" {
		log.Fatal("missing -file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	if err := db.AutoMigrate(&domain.Item{}, &domain.BehaviorEvent{}); err != nil {
		logger.Fatal("Failed to migrate schema", "error", err)
	}

	f, err := os.Open(*filePath)
	if err != nil {
		logger.Fatal("Failed to open CSV", "error", err)
	}
	defer f.Close()

	batchID := uuid.NewString()
	repo := psqlRepo.NewBehaviorRepository(db)
	ctx := context.Background()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	batch := make([]domain.BehaviorEvent, 0, *batchSize)
	imported, skipped := 0, 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			logger.Fatal("Failed to read CSV", "error", err)
		}

		ev, ok := parseRow(record, batchID)
		if !ok {
			skipped++
			continue
		}

		batch = append(batch, ev)
		if len(batch) >= *batchSize {
			if err := repo.CreateBatch(ctx, batch); err != nil {
				logger.Fatal("Failed to insert batch", "error", err)
			}
			imported += len(batch)
			batch = batch[:0]
		}
	}

	if len(batch) > 0 {
		if err := repo.CreateBatch(ctx, batch); err != nil {
			logger.Fatal("Failed to insert batch", "error", err)
		}
		imported += len(batch)
	}

	logger.Info("Import finished", "batch_id", batchID, "imported", imported, "skipped", skipped)
}

func parseRow(record []string, batchID string) (domain.BehaviorEvent, bool) {
	if len(record) < 5 {
		return domain.BehaviorEvent{}, false
	}

	behavior := normalizeBehavior(record[3])
	if behavior == "" {
		return domain.BehaviorEvent{}, false
	}

	epoch, err := strconv.ParseInt(record[4], 10, 64)
	if err != nil {
		return domain.BehaviorEvent{}, false
	}

	return domain.BehaviorEvent{
		UserID:   record[0],
		ItemID:   record[1],
		Behavior: behavior,
		Ts:       time.Unix(epoch, 0).UTC(),
		BatchID:  batchID,
	}, true
}

// normalizeBehavior accepts both the Tianchi short names and the spelled-out
// event kinds some exports use.
func normalizeBehavior(kind string) string {
	if domain.ValidBehavior(kind) {
		return kind
	}
	switch kind {
	case "view":
		return domain.BehaviorView
	case "favorite":
		return domain.BehaviorFavorite
	case "cart-add":
		return domain.BehaviorCartAdd
	case "purchase":
		return domain.BehaviorPurchase
	}
	return ""
}
