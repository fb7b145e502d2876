package config

import "time"

// ServerConfig is the root configuration for hublink-server.
type ServerConfig struct {
	Server   ServerSection   `koanf:"server"`
	Link     LinkSection     `koanf:"link"`
	Security SecuritySection `koanf:"security"`
	Bot      BotSection      `koanf:"bot"`
	Log      LogSection      `koanf:"log"`
}

// ServerSection configures server endpoints.
type ServerSection struct {
	HTTP            HTTPConfig    `koanf:"http"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gte=0"`
}

// HTTPConfig configures the HTTP server.
type HTTPConfig struct {
	Addr        string `koanf:"addr" validate:"required,hostname_port"`
	TLSCertFile string `koanf:"tls_cert_file" validate:"omitempty,file"`
	TLSKeyFile  string `koanf:"tls_key_file" validate:"omitempty,file"`
}

// LinkSection configures the account linking flow.
type LinkSection struct {
	// BaseURL is the public origin that serves the callback.
	BaseURL string `koanf:"base_url" validate:"required,http_url"`
	// CallbackPath is appended to BaseURL in issued links.
	CallbackPath string `koanf:"callback_path" validate:"required,startswith=/"`
	// HubUserHeader carries the hub user id set by the upstream login proxy.
	HubUserHeader string `koanf:"hub_user_header" validate:"required"`
	// LoginURL receives callback visitors who are not signed in. Optional.
	LoginURL string `koanf:"login_url" validate:"omitempty,http_url"`
}

// SecuritySection configures API access.
type SecuritySection struct {
	// APIKey guards /api and /admin. Empty disables the check.
	APIKey string `koanf:"api_key" validate:"omitempty,min=16"`
	// MetricsAuth puts /metrics behind the API key.
	MetricsAuth bool `koanf:"metrics_auth"`
}

// BotSection configures delivery of link confirmations to the chat bot.
type BotSection struct {
	// WebhookURL receives confirmation messages. Empty disables them.
	WebhookURL    string `koanf:"webhook_url" validate:"omitempty,http_url"`
	WebhookSecret string `koanf:"webhook_secret"`
}

// LogSection configures logging.
type LogSection struct {
	Level      string `koanf:"level" validate:"loglevel"`
	Format     string `koanf:"format" validate:"oneof=json text console"`
	File       string `koanf:"file"`
	MaxSizeMB  int    `koanf:"max_size_mb" validate:"gte=0"`
	MaxBackups int    `koanf:"max_backups" validate:"gte=0"`
	MaxAgeDays int    `koanf:"max_age_days" validate:"gte=0"`
}

// TLSEnabled reports whether HTTPS is configured.
func (c HTTPConfig) TLSEnabled() bool {
	return c.TLSCertFile != "" && c.TLSKeyFile != ""
}
