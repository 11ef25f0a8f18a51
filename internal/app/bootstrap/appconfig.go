// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS, log
// level); AppConfig is everything specific to SalleHub. Values come from
// environment variables, config files, or flags, loaded in LoadConfig.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionDomain string // Cookie domain (blank means current host)

	// Staff credential: one shared login for campus staff.
	StaffLogin        string
	StaffPasswordHash string // bcrypt hash; login is disabled when empty

	// Extraction service
	ExtractorURL     string        // base URL of the timetable extraction service
	ExtractorAPIKey  string        // bearer token for the extraction service
	ExtractorTimeout time.Duration // per-file extraction timeout

	// Reporting
	ReportTimeZone string // IANA zone for report timestamps (e.g., Africa/Casablanca)
}
