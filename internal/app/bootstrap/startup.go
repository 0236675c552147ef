// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	staffstore "github.com/opencircle/seekerhub/internal/app/store/staff"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built. SeekerHub
// uses it to seed the first admin staff user so a fresh deployment has a
// working login.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	staff := staffstore.New(deps.MongoDatabase)
	if err := staff.EnsureAdmin(ctx, appCfg.AdminName, appCfg.AdminEmail, appCfg.AdminPassword); err != nil {
		logger.Error("admin seed failed", zap.Error(err), zap.String("email", appCfg.AdminEmail))
		return err
	}
	return nil
}
