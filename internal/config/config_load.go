package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/titanous/json5"
)

// Load reads config from a JSON5 file, then overlays env vars.
// A missing file is not an error: env vars alone can configure the bot.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := json5.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides overlays env vars onto the config.
// Env vars take precedence over file values.
func (c *Config) applyEnvOverrides() {
	envStr := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	envStr("SKINBOT_TOKEN", &c.Discord.Token)
	envStr("SKINBOT_APP_ID", &c.Discord.AppID)
	envStr("SKINBOT_PUBLIC_KEY", &c.Discord.PublicKey)
	envStr("SKINBOT_DISCORD_API", &c.Discord.APIBase)
	envStr("SKINBOT_MINESKIN_KEY", &c.MineSkin.APIKey)
	envStr("SKINBOT_MINESKIN_API", &c.MineSkin.BaseURL)
	envStr("SKINBOT_HOST", &c.Server.Host)
	envStr("SKINBOT_BASE_PATH", &c.Server.BasePath)
	envStr("SKINBOT_TELEMETRY_ENDPOINT", &c.Telemetry.Endpoint)

	if v := os.Getenv("SKINBOT_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("SKINBOT_TELEMETRY_ENABLED"); v != "" {
		c.Telemetry.Enabled = v == "true" || v == "1"
	}
}
