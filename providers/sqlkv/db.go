// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package sqlkv

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/north-config/internal/logger"
	"github.com/MKhiriev/north-config/migrations"
)

// Open connects to the database and pings it. driver is "pgx" or "sqlite3";
// for SQLite the database file is created when it does not exist.
func Open(ctx context.Context, driver, dsn string, log *logger.Logger) (*sql.DB, error) {
	if log == nil {
		log = logger.Nop()
	}

	if driver == migrations.DriverSQLite {
		if err := createLocalDBFileIfNotExists(dsn); err != nil {
			log.Err(err).Str("func", "Open").Msg("error creating database file")
			return nil, err
		}
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		log.Err(err).Str("func", "Open").Msg("error opening database")
		return nil, fmt.Errorf("error opening connection to DB: %w", err)
	}

	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "Open").Msg("error connecting database (ping)")
		_ = conn.Close()
		return nil, fmt.Errorf("error connecting database: %w", err)
	}
	log.Debug().Str("func", "Open").Str("driver", driver).Msg("connected to database successfully")

	return conn, nil
}

// PlaceholderFor returns the bind-parameter style of a driver: $1 for
// PostgreSQL, ? otherwise.
func PlaceholderFor(driver string) sq.PlaceholderFormat {
	switch driver {
	case migrations.DriverPostgres, "postgres":
		return sq.Dollar
	default:
		return sq.Question
	}
}

func createLocalDBFileIfNotExists(dbFile string) error {
	// URIs and in-memory databases are left to the driver.
	if dbFile == "" || strings.HasPrefix(dbFile, "file:") || strings.Contains(dbFile, ":memory:") {
		return nil
	}
	if _, err := os.Stat(dbFile); os.IsNotExist(err) {
		f, err := os.Create(dbFile)
		if err != nil {
			return fmt.Errorf("error creating DB file: %w", err)
		}
		f.Close()
	}
	return nil
}
