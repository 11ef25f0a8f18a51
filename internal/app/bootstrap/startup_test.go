package bootstrap

import (
	"context"
	"testing"

	"github.com/dalemusser/sallehub/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

func TestStartup_InitializesSessionStore(t *testing.T) {
	appCfg := AppConfig{SessionKey: "0123456789abcdef0123456789abcdef"}

	err := Startup(context.Background(), &config.CoreConfig{}, appCfg, DBDeps{}, zap.NewNop())
	if err != nil {
		t.Fatalf("Startup: %v", err)
	}
	if auth.Store == nil {
		t.Error("session store not initialized by Startup")
	}
}

func TestValidateConfig(t *testing.T) {
	logger := zap.NewNop()
	base := AppConfig{
		MongoURI:       "mongodb://localhost:27017",
		ReportTimeZone: "Africa/Casablanca",
		ExtractorURL:   "http://localhost:9090",
	}

	if err := ValidateConfig(&config.CoreConfig{}, base, logger); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	bad := base
	bad.MongoURI = "not-a-uri"
	if err := ValidateConfig(&config.CoreConfig{}, bad, logger); err == nil {
		t.Error("invalid mongo URI accepted")
	}

	bad = base
	bad.ReportTimeZone = "Mars/Olympus"
	if err := ValidateConfig(&config.CoreConfig{}, bad, logger); err == nil {
		t.Error("invalid time zone accepted")
	}

	bad = base
	bad.ExtractorURL = ""
	if err := ValidateConfig(&config.CoreConfig{}, bad, logger); err == nil {
		t.Error("empty extractor URL accepted")
	}
}
