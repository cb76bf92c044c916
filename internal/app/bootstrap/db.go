// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/tourhub/internal/app/system/indexes"
	"github.com/dalemusser/tourhub/internal/app/system/validators"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// EnsureSchema creates the collections with their JSON-Schema validators
// and the indexes the stores rely on. Both paths are idempotent, so this
// runs unconditionally on every startup.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if err := validators.EnsureAll(ctx, deps.MongoDatabase); err != nil {
		logger.Error("collection validator setup failed", zap.Error(err))
		return err
	}
	if err := indexes.EnsureAll(ctx, deps.MongoDatabase); err != nil {
		logger.Error("index setup failed", zap.Error(err))
		return err
	}
	logger.Info("schema ensured", zap.String("database", appCfg.MongoDatabase))
	return nil
}
