package infra

import (
	"context"
	"fmt"

	"github.com/IAmPiHi/StockSystem/internal/config"
	"github.com/IAmPiHi/StockSystem/internal/model"
	"github.com/IAmPiHi/StockSystem/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and runs
// AutoMigrate to create / update all tables.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := db.AutoMigrate(
		&model.Category{},
		&model.Product{},
		&model.Sale{},
		&model.User{},
	); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}

	return db, nil
}

// Seed inserts the first-run fixtures: the default category every uncategorized
// product falls back to, and an admin user when the users table is empty.
func Seed(ctx context.Context, db *gorm.DB, cfg *config.Config) error {
	var category model.Category
	err := db.WithContext(ctx).
		Where(model.Category{Name: repository.DefaultCategoryName}).
		FirstOrCreate(&category).Error
	if err != nil {
		return fmt.Errorf("seed default category: %w", err)
	}

	var users int64
	if err := db.WithContext(ctx).Model(&model.User{}).Count(&users).Error; err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if users > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	admin := model.User{
		Username:     cfg.AdminUsername,
		PasswordHash: string(hash),
		Role:         "admin",
	}
	if err := db.WithContext(ctx).Create(&admin).Error; err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	return nil
}
