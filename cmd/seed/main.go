package main

// Loads products, coupons and pricing settings from a YAML seed file.

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/murshadpk/storefront/internal/auth"
	"github.com/murshadpk/storefront/internal/catalog"
	"github.com/murshadpk/storefront/internal/config"
	"github.com/murshadpk/storefront/internal/db"
	"github.com/murshadpk/storefront/internal/logging"
	"github.com/murshadpk/storefront/internal/pricing"
)

func main() {
	var (
		file       = flag.String("file", "seed.yaml", "path to the seed file (see seed.example.yaml)")
		dryRun     = flag.Bool("dry-run", false, "validate the file and print sale prices without writing")
		adminID    = flag.Int64("admin-id", 0, "when set, print an admin token for this user id")
		adminEmail = flag.String("admin-email", "", "email claim for the admin token")
		tokenTTL   = flag.Duration("token-ttl", 24*time.Hour, "lifetime of the admin token")
	)
	flag.Parse()

	logger := logging.New(os.Stderr, logging.Options{Level: slog.LevelInfo})

	if err := run(logger, *file, *dryRun, *adminID, *adminEmail, *tokenTTL); err != nil {
		logger.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, file string, dryRun bool, adminID int64, adminEmail string, tokenTTL time.Duration) error {
	content, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}

	seed, err := catalog.NewParser().Parse(content)
	if err != nil {
		return err
	}

	if dryRun {
		if err := catalog.NewValidator().Validate(seed); err != nil {
			return err
		}
		return printPreview(seed)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	seeder := catalog.NewSeeder(db.NewProductStore(pool), db.NewCouponStore(pool), db.NewSettingsStore(pool), logger)
	if _, err := seeder.Apply(ctx, seed); err != nil {
		return err
	}

	if adminID > 0 {
		token, err := auth.NewTokens(cfg.JWTSecret).Sign(auth.Claims{
			UserID:   adminID,
			Username: "admin",
			Email:    adminEmail,
			Role:     auth.RoleAdmin,
		}, tokenTTL)
		if err != nil {
			return fmt.Errorf("failed to sign admin token: %w", err)
		}
		fmt.Println(token)
	}
	return nil
}

func printPreview(seed *catalog.SeedFile) error {
	previews, err := catalog.NewPricer().Preview(seed)
	if err != nil {
		return err
	}
	formatter := pricing.NewFormatter("")
	for _, preview := range previews {
		fmt.Printf("%-32s %12s %6s %12s\n", preview.Slug, formatter.Format(preview.Price), formatter.Percent(preview.Discount), formatter.Format(preview.SalePrice))
	}
	return nil
}
