// Package database holds the shared GORM connection used across the
// app. Connect is called once at boot; everything else reaches the
// handle through DB.
package database

import (
	"fmt"
	"time"

	"github.com/careerloft/careerloft/config"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DB is the process-wide connection. Tests swap it for an in-memory
// sqlite handle.
var DB *gorm.DB

// Connect opens the configured database, tunes the pool and verifies
// the connection with a ping.
func Connect() error {
	dialector, err := dialectorFor(config.DatabaseDriver(), config.DatabaseDSN())
	if err != nil {
		return err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		// SQL tracing goes through pkg/logger, keep GORM quiet.
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return fmt.Errorf("database: open %s: %w", config.DatabaseDriver(), err)
	}

	pool, err := db.DB()
	if err != nil {
		return fmt.Errorf("database: pool handle: %w", err)
	}
	pool.SetMaxOpenConns(25)
	pool.SetMaxIdleConns(10)
	pool.SetConnMaxLifetime(5 * time.Minute)
	pool.SetConnMaxIdleTime(2 * time.Minute)

	if err := pool.Ping(); err != nil {
		return fmt.Errorf("database: ping: %w", err)
	}

	DB = db
	return nil
}

// Close releases the connection pool. Called on shutdown.
func Close() error {
	if DB == nil {
		return nil
	}
	pool, err := DB.DB()
	if err != nil {
		return err
	}
	return pool.Close()
}

func dialectorFor(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "sqlite":
		return sqlite.Open(dsn), nil
	case "postgres":
		return postgres.Open(dsn), nil
	case "mysql":
		return mysql.Open(dsn), nil
	case "sqlserver":
		return sqlserver.Open(dsn), nil
	}
	return nil, fmt.Errorf("database: unknown DB_DRIVER %q", driver)
}
