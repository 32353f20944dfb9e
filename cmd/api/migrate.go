package main

import (
	"context"
	"log/slog"

	"github.com/hrms-lite-api/internal/database"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func newMigrateCmd(a *app) *cobra.Command {
	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Управление схемой БД",
	}

	withDB := func(fn func(db *gorm.DB) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			return a.runOrLog(func() error {
				db, err := a.openDB()
				if err != nil {
					return err
				}
				defer a.closeDB(db)
				return fn(db)
			})
		}
	}

	migrate.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Применить все миграции",
			Args:  cobra.NoArgs,
			RunE: withDB(func(db *gorm.DB) error {
				if err := database.Migrate(db, a.cfg.Database.Driver, a.logger); err != nil {
					return err
				}
				return a.logVersion(db)
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Откатить последнюю миграцию",
			Args:  cobra.NoArgs,
			RunE: withDB(func(db *gorm.DB) error {
				if err := database.Rollback(db, a.cfg.Database.Driver, a.logger); err != nil {
					return err
				}
				return a.logVersion(db)
			}),
		},
		&cobra.Command{
			Use:   "status",
			Short: "Показать состояние миграций",
			Args:  cobra.NoArgs,
			RunE: withDB(func(db *gorm.DB) error {
				return database.Status(db, a.cfg.Database.Driver, a.logger)
			}),
		},
	)

	return migrate
}

func (a *app) logVersion(db *gorm.DB) error {
	version, err := database.Version(context.Background(), db, a.cfg.Database.Driver)
	if err != nil {
		return err
	}
	a.logger.Info("schema version", slog.Int64("version", version))
	return nil
}
