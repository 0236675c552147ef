// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"strings"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for SeekerHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: SEEKERHUB_MONGO_URI, SEEKERHUB_SESSION_NAME, etc.
//   - Command-line flags: --mongo_uri, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "seeker_hub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "seekerhub-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},

	// Mailchimp mailing-list integration. Leaving the API key or list ID
	// blank disables the integration; records are still saved normally.
	{Name: "mailchimp_base_url", Default: "", Desc: "Mailchimp API base URL (e.g., https://us1.api.mailchimp.com/3.0)"},
	{Name: "mailchimp_api_key", Default: "", Desc: "Mailchimp API key"},
	{Name: "mailchimp_list_id", Default: "", Desc: "Mailchimp audience (list) ID"},
	{Name: "mailchimp_tags", Default: "", Desc: "Comma-separated interest tags staff may assign to subscribers"},
	{Name: "mailchimp_default_prospect_tags", Default: "", Desc: "Comma-separated tags applied when a prospect is first subscribed"},
	{Name: "mailchimp_default_seeker_tags", Default: "", Desc: "Comma-separated tags applied when a seeker is first subscribed"},
	{Name: "mailchimp_default_partner_tags", Default: "", Desc: "Comma-separated tags applied when a community partner is first subscribed"},

	// Audit logging settings
	{Name: "audit_log_auth", Default: "all", Desc: "Auth event logging: 'all' (db+log), 'db', 'log', or 'off'"},
	{Name: "audit_log_admin", Default: "all", Desc: "Admin event logging: 'all' (db+log), 'db', 'log', or 'off'"},

	// First-login bootstrap
	{Name: "admin_name", Default: "Administrator", Desc: "Full name for the seeded admin staff user"},
	{Name: "admin_email", Default: "", Desc: "Email of the seeded admin staff user (created on startup if missing)"},
	{Name: "admin_password", Default: "", Desc: "Password for the seeded admin staff user"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "SEEKERHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),

		MailchimpBaseURL: appValues.String("mailchimp_base_url"),
		MailchimpAPIKey:  appValues.String("mailchimp_api_key"),
		MailchimpListID:  appValues.String("mailchimp_list_id"),
		MailchimpTags:    splitTags(appValues.String("mailchimp_tags")),
		ProspectTags:     splitTags(appValues.String("mailchimp_default_prospect_tags")),
		SeekerTags:       splitTags(appValues.String("mailchimp_default_seeker_tags")),
		PartnerTags:      splitTags(appValues.String("mailchimp_default_partner_tags")),

		AuditLogAuth:  appValues.String("audit_log_auth"),
		AuditLogAdmin: appValues.String("audit_log_admin"),

		AdminName:     appValues.String("admin_name"),
		AdminEmail:    appValues.String("admin_email"),
		AdminPassword: appValues.String("admin_password"),
	}

	return coreCfg, appCfg, nil
}

// splitTags parses a comma-separated tag list, trimming whitespace and
// dropping empty entries.
func splitTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// ValidateConfig performs app-specific config validation.
//
// SeekerHub validates the MongoDB URI format to catch configuration
// errors early, before attempting to connect. The Mailchimp settings
// must be either fully present or fully absent; a half-configured
// integration is almost always a deployment mistake.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	chimp := []string{appCfg.MailchimpBaseURL, appCfg.MailchimpAPIKey, appCfg.MailchimpListID}
	set := 0
	for _, v := range chimp {
		if v != "" {
			set++
		}
	}
	if set != 0 && set != len(chimp) {
		return fmt.Errorf("mailchimp_base_url, mailchimp_api_key, and mailchimp_list_id must be set together (or all left blank to disable the integration)")
	}

	return nil
}
