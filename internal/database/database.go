// Package database открывает подключение GORM к PostgreSQL или SQLite
// и применяет встроенные миграции goose для выбранного диалекта.
package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hrms-lite-api/internal/config"
	"github.com/pressly/goose/v3"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

//go:embed migrations
var embedMigrations embed.FS

// Open подключается к БД, повторяя попытки до cfg.ConnectAttempts раз
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	for attempt := range cfg.ConnectAttempts {
		db, err = gorm.Open(dialector(cfg), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Warn),
		})
		if err == nil {
			if err = configure(db, cfg.Driver); err == nil {
				return db, nil
			}
		}
		if attempt+1 < cfg.ConnectAttempts {
			time.Sleep(time.Second)
		}
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", cfg.ConnectAttempts, err)
}

func dialector(cfg config.DatabaseConfig) gorm.Dialector {
	if cfg.Driver == config.DriverSQLite {
		return sqlite.Open(sqliteDSN(cfg.DSN()))
	}
	return postgres.Open(cfg.DSN())
}

// sqliteDSN включает внешние ключи: без них SQLite не каскадирует удаление
func sqliteDSN(path string) string {
	if strings.Contains(path, "_foreign_keys") {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on"
}

func configure(db *gorm.DB, driver string) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	if driver == config.DriverSQLite {
		// SQLite допускает одного писателя; одно соединение сохраняет и in-memory базу
		sqlDB.SetMaxOpenConns(1)
	}
	return sqlDB.Ping()
}

// Migrate применяет все новые миграции
func Migrate(db *gorm.DB, driver string, logger *slog.Logger) error {
	return runGoose(db, driver, logger, func(sqlDB *sql.DB, dir string) error {
		return goose.Up(sqlDB, dir)
	})
}

// Rollback откатывает последнюю применённую миграцию
func Rollback(db *gorm.DB, driver string, logger *slog.Logger) error {
	return runGoose(db, driver, logger, func(sqlDB *sql.DB, dir string) error {
		return goose.Down(sqlDB, dir)
	})
}

// Status выводит в лог состояние миграций
func Status(db *gorm.DB, driver string, logger *slog.Logger) error {
	return runGoose(db, driver, logger, func(sqlDB *sql.DB, dir string) error {
		return goose.Status(sqlDB, dir)
	})
}

// Version возвращает номер последней применённой миграции
func Version(ctx context.Context, db *gorm.DB, driver string) (int64, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return 0, err
	}
	if err := goose.SetDialect(gooseDialect(driver)); err != nil {
		return 0, fmt.Errorf("failed to set dialect: %w", err)
	}
	return goose.GetDBVersionContext(ctx, sqlDB)
}

func runGoose(db *gorm.DB, driver string, logger *slog.Logger, fn func(*sql.DB, string) error) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(&gooseLogger{logger: logger})

	if err := goose.SetDialect(gooseDialect(driver)); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	if err := fn(sqlDB, migrationsDir(driver)); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func gooseDialect(driver string) string {
	if driver == config.DriverSQLite {
		return "sqlite3"
	}
	return "postgres"
}

func migrationsDir(driver string) string {
	if driver == config.DriverSQLite {
		return "migrations/sqlite"
	}
	return "migrations/postgres"
}

// gooseLogger перенаправляет вывод goose в slog
type gooseLogger struct {
	logger *slog.Logger
}

func (l *gooseLogger) Printf(format string, v ...any) {
	l.logger.Info(strings.TrimSpace(fmt.Sprintf(format, v...)), slog.String("component", "goose"))
}

func (l *gooseLogger) Fatalf(format string, v ...any) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, v...)), slog.String("component", "goose"))
}
