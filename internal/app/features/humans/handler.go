// internal/app/features/humans/handler.go
package humans

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

// Handler is the feature-level handler for the Humans screen: the intake
// list of prospects, plus creation, editing, enrollment, and bulk actions.
type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
	AuditLog *auditlog.Logger
	Humans   *humanstore.Store
	Notes    *notestore.Store

	// Mailing-list integration. Mail may be nil when no vendor is
	// configured; all mailing side effects are skipped in that case.
	Mail        mailchimp.Service
	Tags        mailtags.Set
	DefaultTags map[string][]string // role -> tags applied on subscribe
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
