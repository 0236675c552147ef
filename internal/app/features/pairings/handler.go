// internal/app/features/pairings/handler.go
package pairings

import (
	uierrors "github.com/opencircle/seekerhub/internal/app/features/errors"
	humanstore "github.com/opencircle/seekerhub/internal/app/store/humans"
	pairingstore "github.com/opencircle/seekerhub/internal/app/store/pairings"
	"github.com/opencircle/seekerhub/internal/app/system/auditlog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level handler for the Pairings screens.
type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
	AuditLog *auditlog.Logger
	Humans   *humanstore.Store
	Pairings *pairingstore.Store
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Log:      logger,
		ErrLog:   errLog,
		AuditLog: audit,
		Humans:   humanstore.New(db),
		Pairings: pairingstore.New(db),
	}
}
