package database

import (
	"fmt"
	"time"

	"memberhub_backend/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open connects to the configured engine. driver is "postgres" or "sqlite".
// nowFunc, when set, becomes gorm's timestamp source for CreatedAt/UpdatedAt.
func Open(driver, dsn string, nowFunc func() time.Time) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "", "postgres":
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	gormCfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	}
	if nowFunc != nil {
		gormCfg.NowFunc = nowFunc
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to GORM: %w", err)
	}

	if driver == "sqlite" {
		// one connection: in-memory databases are per-connection and
		// sqlite serialises writers anyway
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

// AutoMigrate creates or updates every table the service owns
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Business{},
		&models.Member{},
		&models.SubscriptionPlan{},
		&models.Membership{},
		&models.Payment{},
		&models.Notification{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
