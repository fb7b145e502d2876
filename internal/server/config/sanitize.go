package config

import "strings"

// Sanitize returns a copy of the config with secrets masked.
func Sanitize(cfg *ServerConfig) *ServerConfig {
	sanitized := *cfg
	if sanitized.Security.APIKey != "" {
		sanitized.Security.APIKey = maskSecret(sanitized.Security.APIKey)
	}
	if sanitized.Bot.WebhookSecret != "" {
		sanitized.Bot.WebhookSecret = maskSecret(sanitized.Bot.WebhookSecret)
	}
	return &sanitized
}

func maskSecret(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	return s[:2] + strings.Repeat("*", len(s)-4) + s[len(s)-2:]
}
