// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"time"

	activityfeature "github.com/dalemusser/sallehub/internal/app/features/activity"
	cohortsfeature "github.com/dalemusser/sallehub/internal/app/features/cohorts"
	healthfeature "github.com/dalemusser/sallehub/internal/app/features/health"
	ingestfeature "github.com/dalemusser/sallehub/internal/app/features/ingest"
	loginfeature "github.com/dalemusser/sallehub/internal/app/features/login"
	logoutfeature "github.com/dalemusser/sallehub/internal/app/features/logout"
	occupancyfeature "github.com/dalemusser/sallehub/internal/app/features/occupancy"
	problemsfeature "github.com/dalemusser/sallehub/internal/app/features/problems"
	reportsfeature "github.com/dalemusser/sallehub/internal/app/features/reports"
	auditstore "github.com/dalemusser/sallehub/internal/app/store/audit"
	cohortstore "github.com/dalemusser/sallehub/internal/app/store/cohorts"
	problemstore "github.com/dalemusser/sallehub/internal/app/store/problems"
	reportstore "github.com/dalemusser/sallehub/internal/app/store/reports"
	"github.com/dalemusser/sallehub/internal/app/system/auditlog"
	"github.com/dalemusser/sallehub/internal/app/system/auth"
	"github.com/dalemusser/sallehub/internal/app/system/extract"
	"github.com/dalemusser/sallehub/internal/app/system/ingest"
	"github.com/dalemusser/sallehub/internal/app/system/ratelimit"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE
// app.
//
// WAFFLE calls this after configuration, DB connections, schema setup and
// the Startup hook have completed. SalleHub mounts the public read
// surface (occupancy, cohorts, reports, problems list, health) and puts
// everything that mutates state behind the staff session: ingestion and
// its confirm/cancel endpoints, problem reporting and status updates,
// and the activity feed.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.SalleHubMongoDatabase

	audit := auditlog.New(auditstore.New(db), logger)

	loc, err := time.LoadLocation(appCfg.ReportTimeZone)
	if err != nil {
		return nil, err
	}

	extractor := extract.NewClient(appCfg.ExtractorURL, appCfg.ExtractorAPIKey, appCfg.ExtractorTimeout, logger)
	runner := ingest.NewRunner(cohortstore.New(db), reportstore.New(db), extractor, audit, loc, logger)

	r := chi.NewRouter()

	// Global auth middleware: loads the staff identity into context if
	// signed in. Handlers read it via auth.CurrentUser(r).
	r.Use(auth.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.SalleHubMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Authentication
	loginHandler := loginfeature.NewHandler(appCfg.StaffLogin, appCfg.StaffPasswordHash, ratelimit.NewLoginLimiter(), logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))
	r.Mount("/logout", logoutfeature.Routes(logoutfeature.NewHandler(logger)))

	// Public read surface
	occupancyHandler := occupancyfeature.NewHandler(db, logger)
	r.Mount("/occupancy", occupancyfeature.Routes(occupancyHandler))

	cohortsHandler := cohortsfeature.NewHandler(db, logger)
	r.Mount("/cohorts", cohortsfeature.Routes(cohortsHandler))

	reportsHandler := reportsfeature.NewHandler(db, logger)
	r.Mount("/reports", reportsfeature.Routes(reportsHandler))

	// Staff-only surface
	ingestHandler := ingestfeature.NewHandler(runner, logger)
	r.Route("/ingest", func(r chi.Router) {
		r.Use(auth.RequireSignedIn)
		r.Mount("/", ingestfeature.Routes(ingestHandler))
	})

	problemsHandler := problemsfeature.NewHandler(problemstore.New(db), audit, logger)
	r.Mount("/problems", problemsfeature.Routes(problemsHandler, auth.RequireSignedIn))

	activityHandler := activityfeature.NewHandler(db, logger)
	r.Route("/activity", func(r chi.Router) {
		r.Use(auth.RequireSignedIn)
		r.Mount("/", activityfeature.Routes(activityHandler))
	})

	return r, nil
}
