package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Server.Port != 8080 {
		t.Errorf("default port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.BasePath != "/discord/command" {
		t.Errorf("default base path = %q", cfg.Server.BasePath)
	}
	if cfg.Discord.APIBase != "https://discord.com/api/v8" {
		t.Errorf("default discord api = %q", cfg.Discord.APIBase)
	}
	if cfg.MineSkin.BaseURL != "https://api.mineskin.org" {
		t.Errorf("default mineskin url = %q", cfg.MineSkin.BaseURL)
	}
}

func TestLoadFileAndEnvOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	// JSON5: comments and trailing commas are fine.
	content := `{
		// local overrides
		server: { port: 9000, base_path: "/hooks/discord", },
		discord: { app_id: "file-app" },
	}`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("SKINBOT_TOKEN", "env-token")
	t.Setenv("SKINBOT_APP_ID", "env-app")
	t.Setenv("SKINBOT_PORT", "9100")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Server.BasePath != "/hooks/discord" {
		t.Errorf("base path = %q, want file value", cfg.Server.BasePath)
	}
	if cfg.Server.Port != 9100 {
		t.Errorf("port = %d, want env override 9100", cfg.Server.Port)
	}
	if cfg.Discord.AppID != "env-app" {
		t.Errorf("app id = %q, want env override", cfg.Discord.AppID)
	}
	if cfg.Discord.Token != "env-token" {
		t.Errorf("token = %q, want env value", cfg.Discord.Token)
	}
}

func TestLoadMissingFileUsesDefaultsAndEnv(t *testing.T) {
	t.Setenv("SKINBOT_TOKEN", "tok")
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 8080 || cfg.Discord.Token != "tok" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := Default()
		cfg.Discord.Token = "tok"
		cfg.Discord.AppID = "app"
		cfg.Discord.PublicKey = strings.Repeat("ab", 32)
		return cfg
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing token", func(c *Config) { c.Discord.Token = "" }},
		{"missing app id", func(c *Config) { c.Discord.AppID = "" }},
		{"non-hex public key", func(c *Config) { c.Discord.PublicKey = "zz" }},
		{"short public key", func(c *Config) { c.Discord.PublicKey = "abcd" }},
		{"bad port", func(c *Config) { c.Server.Port = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
