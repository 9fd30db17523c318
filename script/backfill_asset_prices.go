package main

import (
	"context"
	"flag"
	"log"

	"github.com/pixeldock/pixeldock/biz/dal/model"
	"github.com/pixeldock/pixeldock/pkg/config"
	"github.com/pixeldock/pixeldock/pkg/database"
	"gorm.io/gorm"
)

// Backfill script: set a price on assets created before per-asset pricing
// existed. Usage: go run script/backfill_asset_prices.go -price=5.00

var (
	price  = flag.Float64("price", 0, "price to set; 0 uses pricing.default_price from config")
	dryRun = flag.Bool("dry-run", false, "report affected rows without writing")
)

func main() {
	flag.Parse()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	target := *price
	if target == 0 {
		target = cfg.Pricing.DefaultPrice
	}
	if target <= 0 {
		log.Fatalf("no usable price: flag=%v config=%v", *price, cfg.Pricing.DefaultPrice)
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}

	if err := backfill(context.Background(), db, target, *dryRun); err != nil {
		log.Fatalf("backfill failed: %v", err)
	}
}

func backfill(ctx context.Context, db *gorm.DB, target float64, dryRun bool) error {
	var count int64
	if err := db.WithContext(ctx).
		Model(&model.Asset{}).
		Where("price = ? OR price IS NULL", 0).
		Count(&count).Error; err != nil {
		return err
	}
	log.Printf("assets without a price: %d", count)

	if dryRun || count == 0 {
		log.Printf("nothing written (dry-run=%v)", dryRun)
		return nil
	}

	result := db.WithContext(ctx).
		Model(&model.Asset{}).
		Where("price = ? OR price IS NULL", 0).
		Update("price", target)
	if result.Error != nil {
		return result.Error
	}
	log.Printf("updated %d assets to price %.2f", result.RowsAffected, target)
	return nil
}
