// internal/app/features/partners/handler.go
package partners

import (
	uierrors "github.com/opencircle/seekerhub/internal/app/features/errors"
	"github.com/opencircle/seekerhub/internal/app/mailchimp"
	humanstore "github.com/opencircle/seekerhub/internal/app/store/humans"
	notestore "github.com/opencircle/seekerhub/internal/app/store/notes"
	"github.com/opencircle/seekerhub/internal/app/system/auditlog"
	"github.com/opencircle/seekerhub/internal/app/system/mailtags"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level handler for the Community Partners screens.
type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
	AuditLog *auditlog.Logger
	Humans   *humanstore.Store
	Notes    *notestore.Store

	Mail        mailchimp.Service
	Tags        mailtags.Set
	DefaultTags map[string][]string
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, audit *auditlog.Logger, mail mailchimp.Service, tags mailtags.Set, defaultTags map[string][]string, logger *zap.Logger) *Handler {
	return &Handler{
		DB:          db,
		Log:         logger,
		ErrLog:      errLog,
		AuditLog:    audit,
		Humans:      humanstore.New(db),
		Notes:       notestore.New(db),
		Mail:        mail,
		Tags:        tags,
		DefaultTags: defaultTags,
	}
}
