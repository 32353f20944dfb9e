package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"SERVER_PORT", "DB_DRIVER", "DB_NAME", "DB_CONNECT_ATTEMPTS", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "hrms", cfg.Database.DBName)
	assert.Equal(t, 30, cfg.Database.ConnectAttempts)
	assert.Equal(t, slog.LevelInfo, cfg.Log.Level)
	assert.NoError(t, cfg.Database.Validate())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DB_SQLITE_PATH", "/tmp/hrms-test.db")
	t.Setenv("DB_CONNECT_ATTEMPTS", "3")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "/tmp/hrms-test.db", cfg.Database.DSN())
	assert.Equal(t, 3, cfg.Database.ConnectAttempts)
	assert.Equal(t, slog.LevelDebug, cfg.Log.Level)
}

func TestDSN_Postgres(t *testing.T) {
	cfg := DatabaseConfig{
		Driver: DriverPostgres, Host: "db", Port: "5432", User: "u",
		Password: "p", DBName: "hrms", SSLMode: "disable",
	}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=hrms sslmode=disable", cfg.DSN())
}

func TestValidate(t *testing.T) {
	assert.Error(t, (&DatabaseConfig{Driver: "mysql", ConnectAttempts: 1}).Validate())
	assert.Error(t, (&DatabaseConfig{Driver: DriverSQLite}).Validate())
	assert.NoError(t, (&DatabaseConfig{Driver: DriverSQLite, ConnectAttempts: 1}).Validate())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelWarn, parseLevel("warn"))
	assert.Equal(t, slog.LevelError, parseLevel("ERROR"))
	assert.Equal(t, slog.LevelInfo, parseLevel("chatty"))
}
