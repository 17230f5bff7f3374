package infra

import (
	"fmt"

	"github.com/thomasasfar/api-apotek/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate
// for all tables, and seeds the default master rows.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
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

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations applies the schema and seed rows. Also used by the
// integration test suite against a containerized Postgres.
func RunMigrations(db *gorm.DB) error {
	// gen_random_uuid() needs pgcrypto on Postgres < 13
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		return fmt.Errorf("pgcrypto: %w", err)
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Supplier{},
		&model.Category{},
		&model.Group{},
		&model.Unit{},
		&model.Product{},
		&model.ProductUnit{},
		&model.UnitConversion{},
		&model.Stock{},
		&model.Purchase{},
		&model.PurchaseDetail{},
		&model.Sale{},
		&model.SaleDetail{},
		&model.SaleStock{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}

	return seedDefaults(db)
}

// seedDefaults creates the fallback "None" category and group referenced by
// products created without an explicit classification.
func seedDefaults(db *gorm.DB) error {
	var category model.Category
	if err := db.Where(model.Category{IsDefault: true}).
		Attrs(model.Category{Name: "None"}).
		FirstOrCreate(&category).Error; err != nil {
		return fmt.Errorf("seed default category: %w", err)
	}
	var group model.Group
	if err := db.Where(model.Group{IsDefault: true}).
		Attrs(model.Group{Name: "None"}).
		FirstOrCreate(&group).Error; err != nil {
		return fmt.Errorf("seed default group: %w", err)
	}
	return nil
}
