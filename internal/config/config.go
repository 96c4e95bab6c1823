package config

import (
	"encoding/hex"
	"fmt"
)

// Config is the root configuration for the skinbot service.
type Config struct {
	Server    ServerConfig    `json:"server"`
	Discord   DiscordConfig   `json:"discord"`
	MineSkin  MineSkinConfig  `json:"mineskin"`
	Telemetry TelemetryConfig `json:"telemetry,omitempty"`
}

// ServerConfig configures the inbound webhook HTTP listener.
type ServerConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	BasePath string `json:"base_path"` // interactions endpoint, e.g. /discord/command
}

// DiscordConfig holds the Discord application identity.
// Token is never read from the config file, only from env SKINBOT_TOKEN.
type DiscordConfig struct {
	Token     string `json:"-"` // from env SKINBOT_TOKEN only
	AppID     string `json:"app_id"`
	PublicKey string `json:"public_key"` // hex-encoded ed25519 key from the developer portal
	APIBase   string `json:"api_base,omitempty"`
}

// MineSkinConfig configures the generation API client.
// APIKey is env-only (SKINBOT_MINESKIN_KEY) and optional; the public tier works without it.
type MineSkinConfig struct {
	APIKey  string `json:"-"`
	BaseURL string `json:"base_url,omitempty"`
}

// TelemetryConfig configures the optional OTLP trace exporter.
type TelemetryConfig struct {
	Enabled  bool   `json:"enabled,omitempty"`
	Endpoint string `json:"endpoint,omitempty"` // host:port of the OTLP HTTP collector
	Insecure bool   `json:"insecure,omitempty"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:     "0.0.0.0",
			Port:     8080,
			BasePath: "/discord/command",
		},
		Discord: DiscordConfig{
			APIBase: "https://discord.com/api/v8",
		},
		MineSkin: MineSkinConfig{
			BaseURL: "https://api.mineskin.org",
		},
	}
}

// Validate checks that the fields required to run the bot are present and
// well-formed. Called once at startup, before any network activity.
func (c *Config) Validate() error {
	if c.Discord.Token == "" {
		return fmt.Errorf("discord bot token is required (env SKINBOT_TOKEN)")
	}
	if c.Discord.AppID == "" {
		return fmt.Errorf("discord application ID is required")
	}
	key, err := hex.DecodeString(c.Discord.PublicKey)
	if err != nil {
		return fmt.Errorf("discord public key is not valid hex: %w", err)
	}
	if len(key) != 32 {
		return fmt.Errorf("discord public key must be 32 bytes, got %d", len(key))
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	return nil
}
