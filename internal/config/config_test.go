package config

import (
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("expected default database port 5432, got %d", cfg.Database.Port)
	}
	if cfg.API.RateLimitRPS != 100 {
		t.Errorf("expected default rate limit 100, got %d", cfg.API.RateLimitRPS)
	}
	if cfg.API.AnalysisRPM != 12 {
		t.Errorf("expected default analysis budget 12, got %d", cfg.API.AnalysisRPM)
	}
	if cfg.Database.DSN() == "" {
		t.Error("expected a non-empty DSN")
	}
}

func TestLoad_RejectsBadSettings(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		want  string
	}{
		{"zero api port", "API_PORT", "0", "api port"},
		{"port out of range", "DB_PORT", "70000", "database port"},
		{"zero rate limit", "API_RATE_LIMIT_RPS", "0", "rate limit"},
		{"negative analysis budget", "API_ANALYSIS_RATE_LIMIT_RPM", "-1", "analysis rate limit"},
		{"zero open connections", "DB_MAX_OPEN_CONNS", "0", "open connections"},
		{"zero provider timeout", "PROVIDER_REQUEST_TIMEOUT", "0s", "provider request timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error about %q, got %v", tt.want, err)
			}
		})
	}
}
