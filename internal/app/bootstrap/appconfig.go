// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for SeekerHub.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig handles
// framework-level settings (ports, TLS, logging, timeouts); AppConfig is
// everything specific to this application.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: seekerhub-session)
	SessionDomain string // Cookie domain (blank means current host)

	// Mailchimp configuration. When the API key or list ID is blank the
	// mailing-list integration is disabled and handlers skip it entirely.
	MailchimpBaseURL string   // API base URL (e.g., https://us1.api.mailchimp.com/3.0)
	MailchimpAPIKey  string   // Mailchimp API key
	MailchimpListID  string   // Audience (list) ID
	MailchimpTags    []string // Interest tags staff may assign to subscribers

	// Default tags applied when a record is first subscribed, keyed by
	// the human's role (prospect, seeker, partner).
	ProspectTags []string
	SeekerTags   []string
	PartnerTags  []string

	// Audit logging settings: "all" (db+log), "db", "log", or "off".
	AuditLogAuth  string
	AuditLogAdmin string

	// First-login bootstrap: when all three are set, Startup seeds an
	// active admin staff user if none exists for the email.
	AdminName     string
	AdminEmail    string
	AdminPassword string
}
