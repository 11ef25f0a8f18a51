// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for SalleHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, extractor_url, etc.
//   - Environment variables: SALLEHUB_MONGO_URI, SALLEHUB_EXTRACTOR_URL, etc.
//   - Command-line flags: --mongo_uri, --extractor_url, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "sallehub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size"},

	{Name: "session_key", Default: "", Desc: "Session signing key (random dev key when empty)"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},

	{Name: "staff_login", Default: "staff", Desc: "Shared staff login name"},
	{Name: "staff_password_hash", Default: "", Desc: "bcrypt hash of the staff password (login disabled when empty)"},

	{Name: "extractor_url", Default: "http://localhost:9090", Desc: "Timetable extraction service base URL"},
	{Name: "extractor_api_key", Default: "", Desc: "Bearer token for the extraction service"},
	{Name: "extractor_timeout", Default: "45s", Desc: "Per-file extraction timeout (e.g., 45s, 2m)"},

	{Name: "report_time_zone", Default: "Africa/Casablanca", Desc: "IANA time zone for report timestamps"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles .env files, config files,
// SALLEHUB_* environment variables and command-line flags, merged with
// precedence flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "SALLEHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		SessionKey:    appValues.String("session_key"),
		SessionDomain: appValues.String("session_domain"),

		StaffLogin:        appValues.String("staff_login"),
		StaffPasswordHash: appValues.String("staff_password_hash"),

		ExtractorURL:     appValues.String("extractor_url"),
		ExtractorAPIKey:  appValues.String("extractor_api_key"),
		ExtractorTimeout: appValues.Duration("extractor_timeout", 45*time.Second),

		ReportTimeZone: appValues.String("report_time_zone"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// SalleHub validates the MongoDB URI and the report time zone early, so a
// bad deployment fails at startup instead of at the first batch.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if _, err := time.LoadLocation(appCfg.ReportTimeZone); err != nil {
		return fmt.Errorf("invalid report_time_zone %q: %w", appCfg.ReportTimeZone, err)
	}

	if appCfg.ExtractorURL == "" {
		return fmt.Errorf("extractor_url must be set")
	}

	if appCfg.StaffPasswordHash == "" {
		logger.Warn("staff_password_hash is empty; staff login is disabled")
	}

	return nil
}
