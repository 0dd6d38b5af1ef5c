package infra

import (
	"database/sql"
	"fmt"
	"log"

	"accounts-auth/internal/config"
	"accounts-auth/internal/shared/storage"
	"accounts-auth/internal/shared/storage/dbutil"
	"accounts-auth/internal/shared/storage/driver/postgres"
	"accounts-auth/internal/shared/storage/driver/sqlite"
	"accounts-auth/internal/shared/storage/mongostore"
	"accounts-auth/internal/shared/storage/repository"
)

// NewAccountStore 按配置的数据库驱动创建账号存储
func NewAccountStore(cfg *config.Config) (storage.AccountStore, error) {
	switch cfg.DatabaseDriver {
	case config.DriverMongoDB:
		store, err := mongostore.NewStore(cfg.DatabaseURL, cfg.DatabaseName)
		if err != nil {
			return nil, err
		}
		return store, nil

	case config.DriverPostgres:
		db, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return newSQLStore(db, postgres.NewDialect())

	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return newSQLStore(db, sqlite.NewDialect())

	default:
		return nil, fmt.Errorf("infra: unsupported database driver %q", cfg.DatabaseDriver)
	}
}

// newSQLStore 建表后返回 SQL 仓储
func newSQLStore(db *sql.DB, dialect dbutil.Dialect) (storage.AccountStore, error) {
	if err := dialect.AutoMigrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("infra: auto migrate (%s) failed: %w", dialect.DriverType(), err)
	}
	log.Printf("[infra] SQL store ready (driver=%s)", dialect.DriverType())
	return repository.NewStore(db, dialect), nil
}
