// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	auditstore "github.com/opencircle/seekerhub/internal/app/store/audit"
	benefitstore "github.com/opencircle/seekerhub/internal/app/store/benefits"
	humanstore "github.com/opencircle/seekerhub/internal/app/store/humans"
	staffstore "github.com/opencircle/seekerhub/internal/app/store/staff"
	"go.uber.org/zap"
)

// EnsureSchema creates the indexes each collection depends on. The unique
// indexes double as invariants: duplicate human and staff emails and
// duplicate benefit type names are rejected by the database itself.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	db := deps.MongoDatabase

	if err := humanstore.New(db).EnsureIndexes(ctx); err != nil {
		logger.Error("humans index setup failed", zap.Error(err))
		return err
	}
	if err := staffstore.New(db).EnsureIndexes(ctx); err != nil {
		logger.Error("staff index setup failed", zap.Error(err))
		return err
	}
	if err := benefitstore.New(db).EnsureIndexes(ctx); err != nil {
		logger.Error("benefits index setup failed", zap.Error(err))
		return err
	}
	if err := auditstore.New(db).EnsureIndexes(ctx); err != nil {
		logger.Error("audit index setup failed", zap.Error(err))
		return err
	}

	return nil
}
