package database

import (
	"fmt"
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/pkg/utils"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// InitGorm opens the store of the payment and notification services. Driver
// "sqlite" takes DSN as a file path (or ":memory:"); anything else is Postgres.
// gorm warnings and query errors go to log.
func InitGorm(config utils.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch config.Driver {
	case "sqlite":
		path := config.DSN
		if path == "" {
			path = config.Name + ".db"
		}
		dialector = sqlite.Open(path)
	default:
		dialector = postgres.Open(PostgresDSN(config))
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: NewGormLogger(log).LogMode(gormlogger.Warn),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("gorm open: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("db.DB(): %w", err)
	}
	if config.MaxConns > 0 {
		sqlDB.SetMaxOpenConns(int(config.MaxConns))
	}
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}

// AutoMigrate creates or updates the tables of the given service.
func AutoMigrate(db *gorm.DB, service string) error {
	var models []any
	switch service {
	case "payment":
		models = []any{&entity.Payment{}}
	case "notification":
		models = []any{&entity.Notification{}}
	default:
		return fmt.Errorf("no gorm models for service %q", service)
	}

	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto migrate %s: %w", service, err)
	}
	return nil
}
