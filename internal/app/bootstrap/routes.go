// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	benefitsfeature "github.com/opencircle/seekerhub/internal/app/features/benefits"
	errorsfeature "github.com/opencircle/seekerhub/internal/app/features/errors"
	healthfeature "github.com/opencircle/seekerhub/internal/app/features/health"
	homefeature "github.com/opencircle/seekerhub/internal/app/features/home"
	humansfeature "github.com/opencircle/seekerhub/internal/app/features/humans"
	loginfeature "github.com/opencircle/seekerhub/internal/app/features/login"
	logoutfeature "github.com/opencircle/seekerhub/internal/app/features/logout"
	pairingsfeature "github.com/opencircle/seekerhub/internal/app/features/pairings"
	partnersfeature "github.com/opencircle/seekerhub/internal/app/features/partners"
	seekersfeature "github.com/opencircle/seekerhub/internal/app/features/seekers"
	"github.com/opencircle/seekerhub/internal/app/mailchimp"
	auditstore "github.com/opencircle/seekerhub/internal/app/store/audit"
	"github.com/opencircle/seekerhub/internal/app/system/auditlog"
	"github.com/opencircle/seekerhub/internal/app/system/auth"
	"github.com/opencircle/seekerhub/internal/app/system/mailtags"
	"github.com/opencircle/seekerhub/internal/domain/models"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. SeekerHub initializes the template
// engine, applies session middleware, and mounts feature routers for all
// application areas: humans, seekers, community partners, pairings, and
// benefits.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	errLog := errorsfeature.NewErrorLogger(logger)

	audit := auditlog.New(auditstore.New(deps.MongoDatabase), logger, auditlog.Config{
		Auth:  appCfg.AuditLogAuth,
		Admin: appCfg.AuditLogAdmin,
	})

	// The mailing-list integration is optional: when unconfigured, mail
	// stays nil and the handlers save records without touching Mailchimp.
	var mail mailchimp.Service
	if appCfg.MailchimpAPIKey != "" && appCfg.MailchimpListID != "" {
		mail = mailchimp.New(appCfg.MailchimpBaseURL, appCfg.MailchimpAPIKey, appCfg.MailchimpListID, logger)
	}
	tags := mailtags.New(appCfg.MailchimpTags)
	defaultTags := map[string][]string{
		models.RoleProspect: appCfg.ProspectTags,
		models.RoleSeeker:   appCfg.SeekerTags,
		models.RolePartner:  appCfg.PartnerTags,
	}

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	// This makes the current user available to all handlers via auth.CurrentUser(r).
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	homeHandler := homefeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	// Authentication
	loginHandler := loginfeature.NewHandler(deps.MongoDatabase, sessionMgr, errLog, audit, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, audit, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler, sessionMgr))

	// Error pages
	errorsHandler := errorsfeature.NewHandler()
	r.Get("/forbidden", errorsHandler.Forbidden)
	r.Get("/unauthorized", errorsHandler.Unauthorized)

	// Record management
	humansHandler := humansfeature.NewHandler(deps.MongoDatabase, errLog, audit, mail, tags, defaultTags, logger)
	r.Mount("/humans", humansfeature.Routes(humansHandler, sessionMgr))

	seekersHandler := seekersfeature.NewHandler(deps.MongoDatabase, errLog, audit, mail, tags, defaultTags, logger)
	r.Mount("/seekers", seekersfeature.Routes(seekersHandler, sessionMgr))

	partnersHandler := partnersfeature.NewHandler(deps.MongoDatabase, errLog, audit, mail, tags, defaultTags, logger)
	r.Mount("/partners", partnersfeature.Routes(partnersHandler, sessionMgr))

	pairingsHandler := pairingsfeature.NewHandler(deps.MongoDatabase, errLog, audit, logger)
	r.Mount("/pairings", pairingsfeature.Routes(pairingsHandler, sessionMgr))

	benefitsHandler := benefitsfeature.NewHandler(deps.MongoDatabase, errLog, audit, logger)
	r.Mount("/benefits", benefitsfeature.Routes(benefitsHandler, sessionMgr))

	return r, nil
}
