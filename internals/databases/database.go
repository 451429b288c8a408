package database

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"akcert_backend/internals/configs"
	authModel "akcert_backend/internals/features/auth/model"
	certificateModel "akcert_backend/internals/features/certificates/model"
)

// ConnectDB opens the configured store and migrates the schema.
func ConnectDB(cfg *configs.Config) (*gorm.DB, error) {
	log.Info().Str("driver", cfg.DBDriver).Msg("🔌 Connecting to database...")

	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case configs.DriverPostgres:
		dialector = postgres.New(postgres.Config{
			DSN:                  cfg.DBDSN,
			PreferSimpleProtocol: true, // PgBouncer (transaction pooling)
		})
	default:
		dialector = sqlite.Open(cfg.DBDSN)
	}

	db, err := Open(dialector)
	if err != nil {
		return nil, err
	}
	if cfg.DBDriver == configs.DriverPostgres {
		TunePool(db)
	}
	log.Info().Msg("✅ DB connected.")
	return db, nil
}

// Open applies the app gorm config (zerolog logger, error translation) and migrates.
func Open(dialector gorm.Dialector) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         configs.NewGormLogger(),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&certificateModel.CertificateModel{},
		&authModel.AdminSessionModel{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func TunePool(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Warn().Err(err).Msg("pool tune err")
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func WarmUpQueries(db *gorm.DB) {
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := Ping(context.Background(), db); err != nil {
			log.Warn().Err(err).Msg("warm-up ping err")
		}
	}()
}

func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func Close(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
