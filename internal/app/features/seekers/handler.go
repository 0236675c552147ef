// internal/app/features/seekers/handler.go
package seekers

import (
	uierrors "github.com/opencircle/seekerhub/internal/app/features/errors"
	"github.com/opencircle/seekerhub/internal/app/mailchimp"
	benefitstore "github.com/opencircle/seekerhub/internal/app/store/benefits"
	humanstore "github.com/opencircle/seekerhub/internal/app/store/humans"
	milestonestore "github.com/opencircle/seekerhub/internal/app/store/milestones"
	notestore "github.com/opencircle/seekerhub/internal/app/store/notes"
	pairingstore "github.com/opencircle/seekerhub/internal/app/store/pairings"
	"github.com/opencircle/seekerhub/internal/app/system/auditlog"
	"github.com/opencircle/seekerhub/internal/app/system/mailtags"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level handler for the Seekers screens: the enrolled
// participant list, profile editing, ride matching, and bulk downgrade.
type Handler struct {
	DB         *mongo.Database
	Log        *zap.Logger
	ErrLog     *uierrors.ErrorLogger
	AuditLog   *auditlog.Logger
	Humans     *humanstore.Store
	Notes      *notestore.Store
	Milestones *milestonestore.Store
	Pairings   *pairingstore.Store
	Benefits   *benefitstore.Store

	// Mailing-list integration; nil Mail skips all mailing side effects.
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
		Milestones:  milestonestore.New(db),
		Pairings:    pairingstore.New(db),
		Benefits:    benefitstore.New(db),
		Mail:        mail,
		Tags:        tags,
		DefaultTags: defaultTags,
	}
}
