// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like HTTP/HTTPS
// ports, TLS, logging level, CORS, and request limits. AppConfig is where
// everything specific to the tour service lives.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: tourhub-session)
	SessionDomain string // Cookie domain (blank means current host)

	// Email/SMTP configuration
	MailSMTPHost string // SMTP server host (e.g., localhost for Mailpit, smtp.gmail.com in production)
	MailSMTPPort int    // SMTP server port (e.g., 1025 for Mailpit, 587 for STARTTLS)
	MailSMTPUser string // SMTP username
	MailSMTPPass string // SMTP password
	MailFrom     string // From email address (e.g., tours@example.edu)
	MailFromName string // From display name (e.g., University Tours)

	// SiteName is the display name used in outbound email signatures.
	SiteName string

	// BaseURL is the public URL email links point back at
	// (e.g., "https://tours.example.edu").
	BaseURL string

	// ResetTokenExpiry is how long a password-reset token stays valid.
	ResetTokenExpiry time.Duration
}
