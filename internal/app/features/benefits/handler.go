// internal/app/features/benefits/handler.go
package benefits

import (
	uierrors "github.com/opencircle/seekerhub/internal/app/features/errors"
	benefitstore "github.com/opencircle/seekerhub/internal/app/store/benefits"
	humanstore "github.com/opencircle/seekerhub/internal/app/store/humans"
	"github.com/opencircle/seekerhub/internal/app/system/auditlog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level handler for the Benefits screens: the usage
// dashboard, the spreadsheet export, type management, and disbursements.
type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
	AuditLog *auditlog.Logger
	Benefits *benefitstore.Store
	Humans   *humanstore.Store
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Log:      logger,
		ErrLog:   errLog,
		AuditLog: audit,
		Benefits: benefitstore.New(db),
		Humans:   humanstore.New(db),
	}
}
