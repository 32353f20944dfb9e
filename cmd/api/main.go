package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hrms-lite-api/internal/config"
	"github.com/hrms-lite-api/internal/database"
	"github.com/hrms-lite-api/internal/handler"
	"github.com/hrms-lite-api/internal/repository"
	"github.com/hrms-lite-api/internal/service"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// app - общие зависимости команд: конфигурация и логгер
type app struct {
	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "hrms-api",
		Short:         "HRMS Lite: сотрудники и посещаемость",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.cfg = config.Load()

			// Инициализация логгера
			a.logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: a.cfg.Log.Level,
			}))
			slog.SetDefault(a.logger)

			return a.runOrLog(a.cfg.Database.Validate)
		},
	}

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Применить миграции и запустить HTTP сервер",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runOrLog(a.serve)
		},
	}

	// Без подкоманды запускается сервер
	root.RunE = serve.RunE
	root.AddCommand(serve, newMigrateCmd(a))

	return root
}

// runOrLog выполняет команду и пишет ошибку в структурированный лог
func (a *app) runOrLog(fn func() error) error {
	if err := fn(); err != nil {
		a.logger.Error("command failed", slog.Any("error", err))
		return err
	}
	return nil
}

// openDB подключается к БД; вызывающий закрывает соединение через closeDB
func (a *app) openDB() (*gorm.DB, error) {
	a.logger.Info("connecting to database", slog.String("driver", a.cfg.Database.Driver))
	db, err := database.Open(a.cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func (a *app) closeDB(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		a.logger.Warn("failed to close database", slog.Any("error", err))
	}
}

func (a *app) serve() error {
	db, err := a.openDB()
	if err != nil {
		return err
	}
	defer a.closeDB(db)

	// Запуск миграций
	if err := database.Migrate(db, a.cfg.Database.Driver, a.logger); err != nil {
		return err
	}

	// Инициализация репозиториев
	empRepo := repository.NewEmployeeRepository(db)
	attRepo := repository.NewAttendanceRepository(db)

	// Инициализация сервисов
	empService := service.NewEmployeeService(empRepo)
	attService := service.NewAttendanceService(attRepo, empRepo)

	// Инициализация хендлеров
	empHandler := handler.NewEmployeeHandler(empService, a.logger)
	attHandler := handler.NewAttendanceHandler(attService, a.logger)

	// Настройка роутера
	router := handler.NewRouter(empHandler, attHandler, a.logger)

	// Настройка HTTP сервера
	server := &http.Server{
		Addr:         ":" + a.cfg.Server.Port,
		Handler:      router.Setup(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	done := make(chan struct{})
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		a.logger.Info("server is shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			a.logger.Error("could not gracefully shutdown the server", slog.Any("error", err))
		}
		close(done)
	}()

	a.logger.Info("server is starting", slog.String("port", a.cfg.Server.Port))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("could not listen on port %s: %w", a.cfg.Server.Port, err)
	}

	<-done
	a.logger.Info("server stopped")
	return nil
}
