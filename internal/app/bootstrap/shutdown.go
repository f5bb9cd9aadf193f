// internal/app/bootstrap/shutdown.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Shutdown closes the Postgres pool.
func Shutdown(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.DB != nil {
		logger.Info("closing Postgres pool")
		if err := deps.DB.Close(); err != nil {
			logger.Error("Postgres close failed", zap.Error(err))
			return err
		}
	}
	return nil
}
