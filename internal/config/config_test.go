package config

import (
	"os"
	"testing"
)

func TestLoadRequiresDatabaseURL(t *testing.T) {
	os.Unsetenv("DATABASE_URL")
	if _, err := Load(); err == nil {
		t.Fatal("expected error when DATABASE_URL is unset")
	}
}

func TestLoadDefaults(t *testing.T) {
	os.Setenv("DATABASE_URL", "postgres://localhost:5432/clinic")
	defer os.Unsetenv("DATABASE_URL")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8000" {
		t.Errorf("Port = %q, want 8000", cfg.Port)
	}
	if !cfg.IsDev() {
		t.Errorf("expected development mode by default, got ENV=%q", cfg.Env)
	}
	if cfg.ReminderLeadMinutes != 180 {
		t.Errorf("ReminderLeadMinutes = %d, want 180", cfg.ReminderLeadMinutes)
	}
	if !cfg.RemindersEnabled {
		t.Error("expected reminders enabled by default")
	}
}

func TestValidateProduction(t *testing.T) {
	cfg := &Config{Env: "production"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error: production without AUTH_ISSUER")
	}

	cfg.AuthIssuer = "https://auth.example.com/realms/clinic"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error: production without PAYMENT_WEBHOOK_SECRET")
	}

	cfg.PaymentWebhookSecret = "s3cret"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateReminderLead(t *testing.T) {
	cfg := &Config{Env: "development", ReminderLeadMinutes: -1}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative reminder lead")
	}
}
