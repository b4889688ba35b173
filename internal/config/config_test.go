package config

import (
	"testing"
	"time"
)

func TestLoad_DefaultsAndEnvironment(t *testing.T) {
	t.Setenv("DOJO_DATABASE_URL", "postgres://localhost/dojo")
	t.Setenv("DOJO_SESSION_SECRET", "s3cret")
	t.Setenv("DOJO_STATE_KEY", "00")
	t.Setenv("DOJO_LEADERBOARD_INTERVAL", "30s")
	t.Setenv("DOJO_ALLOWED_ORIGINS", "https://a.example/, https://b.example")

	var c Config
	if err := c.loader([]string{}).Load(&c); err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Mode != "all" || c.HTTPAddr != ":8080" || c.SessionIssuer != "algodojo" || c.DraftCapacity != 200 {
		t.Errorf("defaults not applied: %+v", c)
	}
	if c.DatabaseURL != "postgres://localhost/dojo" {
		t.Errorf("env not applied, got %q", c.DatabaseURL)
	}
	if c.LeaderboardInterval != 30*time.Second {
		t.Errorf("expected 30s interval, got %v", c.LeaderboardInterval)
	}
	if got := c.Origins(); len(got) != 2 || got[0] != "https://a.example" {
		t.Errorf("unexpected origins %v", got)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("validate: %v", err)
	}
}

func TestLoad_FlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("DOJO_HTTP_ADDR", ":9000")

	var c Config
	if err := c.loader([]string{"-http-addr", ":9100"}).Load(&c); err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.HTTPAddr != ":9100" {
		t.Errorf("expected flag to win, got %q", c.HTTPAddr)
	}
}

func TestValidate_MissingRequired(t *testing.T) {
	c := Config{SessionSecret: "x", StateKey: "y"}
	if err := c.Validate(); err == nil {
		t.Error("expected missing DatabaseURL to fail validation")
	}
}

func TestOrigins_DefaultsToBaseURL(t *testing.T) {
	c := Config{BaseURL: "https://dojo.example/app/"}
	if got := c.Origins(); len(got) != 1 || got[0] != "https://dojo.example" {
		t.Errorf("expected only the BaseURL origin, got %v", got)
	}

	c.AllowedOrigins = "https://a.example"
	if got := c.Origins(); len(got) != 1 || got[0] != "https://a.example" {
		t.Errorf("explicit origins should replace the default, got %v", got)
	}

	if got := (&Config{}).Origins(); len(got) != 0 {
		t.Errorf("no BaseURL and no origins should allow nothing, got %v", got)
	}
}
