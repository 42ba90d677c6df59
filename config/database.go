package config

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// mysqlDuplicateEntry is ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062

// Supported database drivers.
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// OpenDB connects to the configured database, pings it and runs migrations.
func OpenDB(cfg *Config, log *zap.SugaredLogger) (*sql.DB, error) {
	db, err := sql.Open(cfg.DB.Driver, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if cfg.DB.Driver == DriverSQLite {
		// One connection keeps in-memory databases alive and serialises writers.
		db.SetMaxOpenConns(1)
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if err = Migrate(db, cfg.DB.Driver, log); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Infow("database connected and migrated", "driver", cfg.DB.Driver)
	return db, nil
}

// IsUniqueViolation reports whether err came from a UNIQUE or PRIMARY KEY
// constraint on either supported driver.
func IsUniqueViolation(err error) bool {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlDuplicateEntry
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		case sqlite3.SQLITE_CONSTRAINT:
			// Extended result codes disabled.
			return strings.Contains(liteErr.Error(), "UNIQUE constraint failed")
		}
	}
	return false
}

// Migration is a named schema change with per-dialect SQL.
type Migration struct {
	Name   string
	MySQL  string
	SQLite string
}

// sqlFor picks the statement for driver.
func (m Migration) sqlFor(driver string) string {
	if driver == DriverSQLite {
		return m.SQLite
	}
	return m.MySQL
}

// Migrate runs every migration that has not been recorded yet.
func Migrate(db *sql.DB, driver string, log *zap.SugaredLogger) error {
	if err := createMigrationsTable(db, driver); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	for _, migration := range getMigrations() {
		if err := runMigrationIfNotExists(db, driver, migration, log); err != nil {
			return fmt.Errorf("failed to run migration %s: %w", migration.Name, err)
		}
	}
	return nil
}

// createMigrationsTable creates the bookkeeping table.
func createMigrationsTable(db *sql.DB, driver string) error {
	createSQL := `
	CREATE TABLE IF NOT EXISTS migrations (
		id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL UNIQUE,
		executed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)
	`
	if driver == DriverSQLite {
		createSQL = `
		CREATE TABLE IF NOT EXISTS migrations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			executed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
		`
	}
	_, err := db.Exec(createSQL)
	return err
}

// getMigrations lists schema changes in execution order.
func getMigrations() []Migration {
	return []Migration{
		{
			Name: "001_create_users_table",
			MySQL: `
			CREATE TABLE IF NOT EXISTS users (
				id INT AUTO_INCREMENT PRIMARY KEY,
				username VARCHAR(255) NOT NULL UNIQUE,
				password VARCHAR(255) NOT NULL,
				created_at VARCHAR(32) NOT NULL
			)
			`,
			SQLite: `
			CREATE TABLE IF NOT EXISTS users (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				username TEXT NOT NULL UNIQUE,
				password TEXT NOT NULL,
				created_at TEXT NOT NULL
			)
			`,
		},
		{
			Name: "002_create_plants_table",
			MySQL: `
			CREATE TABLE IF NOT EXISTS plants (
				id VARCHAR(128) PRIMARY KEY,
				name VARCHAR(255) NOT NULL,
				species VARCHAR(255) NOT NULL,
				sort_order INT NOT NULL DEFAULT 0,
				INDEX idx_sort_order (sort_order)
			)
			`,
			SQLite: `
			CREATE TABLE IF NOT EXISTS plants (
				id TEXT PRIMARY KEY,
				name TEXT NOT NULL,
				species TEXT NOT NULL,
				sort_order INTEGER NOT NULL DEFAULT 0
			)
			`,
		},
		{
			Name: "003_create_watering_records_table",
			MySQL: `
			CREATE TABLE IF NOT EXISTS watering_records (
				id INT AUTO_INCREMENT PRIMARY KEY,
				public_id VARCHAR(32) NOT NULL UNIQUE,
				user_id INT NOT NULL,
				plant_id VARCHAR(128) NOT NULL,
				month INT NOT NULL,
				temperature DOUBLE NOT NULL,
				pot_volume DOUBLE NOT NULL,
				plant_factor DOUBLE NOT NULL,
				volume_ml INT NOT NULL,
				created_at VARCHAR(32) NOT NULL,
				INDEX idx_user_plant (user_id, plant_id),
				FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
			)
			`,
			SQLite: `
			CREATE TABLE IF NOT EXISTS watering_records (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				public_id TEXT NOT NULL UNIQUE,
				user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				plant_id TEXT NOT NULL,
				month INTEGER NOT NULL,
				temperature REAL NOT NULL,
				pot_volume REAL NOT NULL,
				plant_factor REAL NOT NULL,
				volume_ml INTEGER NOT NULL,
				created_at TEXT NOT NULL
			)
			`,
		},
	}
}

// runMigrationIfNotExists applies migration once and records its name.
func runMigrationIfNotExists(db *sql.DB, driver string, migration Migration, log *zap.SugaredLogger) error {
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM migrations WHERE name = ?", migration.Name).Scan(&count)
	if err != nil {
		return err
	}

	if count > 0 {
		log.Debugw("migration already executed, skipping", "migration", migration.Name)
		return nil
	}

	log.Infow("running migration", "migration", migration.Name)
	if _, err := db.Exec(migration.sqlFor(driver)); err != nil {
		return err
	}

	_, err = db.Exec("INSERT INTO migrations (name) VALUES (?)", migration.Name)
	return err
}
