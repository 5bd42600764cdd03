package config

import (
	"strings"
	"testing"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("APP_NAME", "joblens")
	t.Setenv("APP_ENV", "test")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("BACKEND_URL", "http://localhost:8000")
	t.Setenv("DAILY_ANALYSIS_LIMIT", "")
}

func TestLoad_RequiredPresent(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.AppName != "joblens" || cfg.App.HTTPPort != "8080" {
		t.Fatalf("app config: %+v", cfg.App)
	}
	if cfg.Backend.BaseURL != "http://localhost:8000" {
		t.Fatalf("backend config: %+v", cfg.Backend)
	}
	if cfg.Backend.DailyLimit != DefaultDailyLimit {
		t.Fatalf("daily limit default: got %d", cfg.Backend.DailyLimit)
	}
}

func TestLoad_MissingRequiredListsAll(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_NAME", "")
	t.Setenv("BACKEND_URL", "")

	_, err := Load()
	if err == nil {
		t.Fatalf("expected error for missing env")
	}
	if !strings.Contains(err.Error(), "APP_NAME") || !strings.Contains(err.Error(), "BACKEND_URL") {
		t.Fatalf("error must name every missing variable: %v", err)
	}
}

func TestLoad_DailyLimitOverride(t *testing.T) {
	setRequired(t)
	t.Setenv("DAILY_ANALYSIS_LIMIT", "25")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend.DailyLimit != 25 {
		t.Fatalf("daily limit: got %d", cfg.Backend.DailyLimit)
	}
}

func TestLoad_DailyLimitRejectsBadValues(t *testing.T) {
	for _, bad := range []string{"abc", "0", "-3"} {
		setRequired(t)
		t.Setenv("DAILY_ANALYSIS_LIMIT", bad)
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for DAILY_ANALYSIS_LIMIT=%q", bad)
		}
	}
}
