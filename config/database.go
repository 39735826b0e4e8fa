package config

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	// LedgerDB is the raw pgx pool over the shared laundry database. Used
	// where GORM is the wrong tool (advisory run locks need a pinned
	// session).
	LedgerDB *pgxpool.Pool

	// LedgerGorm is the GORM handle over the same database: order ledger
	// reads and the forecast_records table.
	LedgerGorm *gorm.DB
)

func InitDB() {
	initPgx()
	initGORM()
}

func initPgx() {
	dbURL := os.Getenv("LEDGER_DB_URL")
	if dbURL == "" {
		dbURL = fmt.Sprintf(
			"postgres://%s:%s@%s:%s/laundryao?sslmode=disable",
			getEnv("DB_USER", "postgres"),
			getEnv("DB_PASSWORD", ""),
			getEnv("DB_HOST", "localhost"),
			getEnv("DB_PORT", "5432"),
		)
		log.Println("⚠️ LEDGER_DB_URL not set, using local default")
	}

	var err error
	LedgerDB, err = pgxpool.New(context.Background(), dbURL)
	if err != nil {
		log.Fatalf("❌ Unable to connect to ledger database: %v", err)
	}

	if err = LedgerDB.Ping(context.Background()); err != nil {
		log.Fatalf("❌ Ledger database ping failed: %v", err)
	}

	log.Println("✅ Ledger database connected (pgx)")
}

func initGORM() {
	gormLogger := logger.Default.LogMode(logger.Info)
	if os.Getenv("APP_ENV") == "production" {
		gormLogger = logger.Default.LogMode(logger.Silent)
	}

	var dsn string
	if os.Getenv("LEDGER_DB_URL") != "" {
		dsn = os.Getenv("LEDGER_DB_URL")
	} else {
		dsn = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=laundryao port=%s sslmode=disable TimeZone=UTC",
			getEnv("DB_HOST", "localhost"),
			getEnv("DB_USER", "postgres"),
			getEnv("DB_PASSWORD", ""),
			getEnv("DB_PORT", "5432"),
		)
		log.Println("⚠️ LEDGER_DB_URL not set, using local GORM default")
	}

	var err error
	LedgerGorm, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:  gormLogger,
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		log.Fatalf("❌ Failed to connect to ledger database with GORM: %v", err)
	}
	if sqlDB, err := LedgerGorm.DB(); err == nil {
		sqlDB.SetMaxOpenConns(5)
		sqlDB.SetMaxIdleConns(2)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
		sqlDB.SetConnMaxIdleTime(2 * time.Minute)
	}
	log.Println("✅ Ledger database connected (GORM)")
}

func CloseDB() {
	if LedgerDB != nil {
		LedgerDB.Close()
		log.Println("✅ Ledger database connection closed (pgx)")
	}
	if LedgerGorm != nil {
		sqlDB, _ := LedgerGorm.DB()
		if sqlDB != nil {
			sqlDB.Close()
			log.Println("✅ Ledger database connection closed (GORM)")
		}
	}
}

// WithTimeout returns a context with a 10s timeout (bumped from 5s for Neon cold starts)
func WithTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

func WithCustomTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
