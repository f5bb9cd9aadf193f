// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	"github.com/dalemusser/quotebook/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"go.uber.org/zap"
)

//go:embed schema/schema.sql
var schemaSQL string

// ConnectDB opens the Postgres pool and verifies it answers a ping.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	db, err := sql.Open("pgx", appCfg.PostgresURI)
	if err != nil {
		return DBDeps{}, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(appCfg.PostgresMaxConns)
	db.SetMaxIdleConns(appCfg.PostgresMaxConns)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, timeouts.Ping())
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		logger.Error("postgres ping failed", zap.Error(err))
		return DBDeps{}, fmt.Errorf("ping postgres: %w", err)
	}

	logger.Info("connected to postgres", zap.Int("max_conns", appCfg.PostgresMaxConns))
	return DBDeps{DB: db}, nil
}

// EnsureSchema creates the tables and indexes in dev. Other environments
// are expected to be migrated out of band.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if coreCfg.Env != "dev" {
		return nil
	}
	return applySchema(ctx, deps.DB, logger)
}

func applySchema(ctx context.Context, db *sql.DB, logger *zap.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Long())
	defer cancel()

	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	logger.Info("schema ensured")
	return nil
}
