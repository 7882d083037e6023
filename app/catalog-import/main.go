package main

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/json"
	"flag"
	"io"
	"log"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"cpsGrowth/domain"
	psqlRepo "cpsGrowth/internal/repository/postgres"
	"cpsGrowth/pkg/config"
	"cpsGrowth/pkg/database"
	"cpsGrowth/pkg/logger"
)

// Imports an Amazon Reviews 2023 metadata JSONL file (optionally gzipped)
// into the items table in batches. One JSON object per line:
// parent_asin, title, main_category, store, price, average_rating,
// rating_number.
func main() {
	var (
		filePath  = flag.String("file", "", "path to the metadata JSONL file (.jsonl or .jsonl.gz)")
		batchSize = flag.Int("batch-size", 2000, "rows per insert batch")
		category  = flag.String("category", "", "category label to stamp on every row (defaults to main_category)")
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

	if err := db.AutoMigrate(&domain.Item{}); err != nil {
		logger.Fatal("Failed to migrate schema", "error", err)
	}

	f, err := os.Open(*filePath)
	if err != nil {
		logger.Fatal("Failed to open metadata file", "error", err)
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(*filePath, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			logger.Fatal("Failed to open gzip stream", "error", err)
		}
		defer gz.Close()
		reader = gz
	}

	repo := psqlRepo.NewItemRepository(db)
	ctx := context.Background()

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)

	batch := make([]domain.Item, 0, *batchSize)
	imported, skipped := 0, 0

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		it, ok := parseItemLine(line, *category, time.Now())
		if !ok {
			skipped++
			continue
		}

		batch = append(batch, it)
		if len(batch) >= *batchSize {
			if err := repo.CreateBatch(ctx, batch); err != nil {
				logger.Fatal("Failed to insert batch", "error", err)
			}
			imported += len(batch)
			batch = batch[:0]
		}
	}
	if err := scanner.Err(); err != nil {
		logger.Fatal("Failed to read metadata file", "error", err)
	}

	if len(batch) > 0 {
		if err := repo.CreateBatch(ctx, batch); err != nil {
			logger.Fatal("Failed to insert batch", "error", err)
		}
		imported += len(batch)
	}

	logger.Info("Import finished", "imported", imported, "skipped", skipped)
}

// metaRow mirrors the metadata JSONL fields this importer consumes. Price
// arrives as a string ("$12.99"), a number, or null depending on the export.
type metaRow struct {
	ParentASIN    string          `json:"parent_asin"`
	Title         string          `json:"title"`
	MainCategory  string          `json:"main_category"`
	Store         string          `json:"store"`
	Price         json.RawMessage `json:"price"`
	AverageRating *float64        `json:"average_rating"`
	RatingNumber  int64           `json:"rating_number"`
}

func parseItemLine(line, category string, now time.Time) (domain.Item, bool) {
	var row metaRow
	if err := json.Unmarshal([]byte(line), &row); err != nil {
		return domain.Item{}, false
	}
	if row.ParentASIN == "" {
		return domain.Item{}, false
	}

	if category == "" {
		category = row.MainCategory
	}

	return domain.Item{
		ItemID:      row.ParentASIN,
		Title:       row.Title,
		Price:       parsePrice(row.Price),
		AvgRating:   row.AverageRating,
		RatingCount: row.RatingNumber,
		Category:    category,
		Brand:       row.Store,
		CreatedAt:   now,
	}, true
}

var priceRe = regexp.MustCompile(`\d+(?:\.\d+)?`)

// parsePrice extracts the first number from whatever shape the price field
// takes. Unparseable prices stay nil rather than defaulting to zero.
func parsePrice(raw json.RawMessage) *float64 {
	if len(raw) == 0 {
		return nil
	}

	s := strings.ReplaceAll(strings.Trim(string(raw), `"`), ",", "")
	m := priceRe.FindString(s)
	if m == "" {
		return nil
	}

	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return nil
	}

	return &v
}
