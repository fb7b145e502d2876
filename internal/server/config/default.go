package config

import "time"

// Default configuration values.
const (
	DefaultHTTPAddr        = "127.0.0.1:5080"
	DefaultShutdownTimeout = 30 * time.Second

	DefaultBaseURL       = "https://studenthub.co"
	DefaultCallbackPath  = "/link-discord"
	DefaultHubUserHeader = "X-Hub-User"

	DefaultLogLevel      = "info"
	DefaultLogFormat     = "json"
	DefaultLogMaxSizeMB  = 100
	DefaultLogMaxBackups = 5
	DefaultLogMaxAgeDays = 30
)

// Default returns the default server configuration.
func Default() *ServerConfig {
	return &ServerConfig{
		Server: ServerSection{
			HTTP: HTTPConfig{
				Addr: DefaultHTTPAddr,
			},
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Link: LinkSection{
			BaseURL:       DefaultBaseURL,
			CallbackPath:  DefaultCallbackPath,
			HubUserHeader: DefaultHubUserHeader,
		},
		Log: LogSection{
			Level:      DefaultLogLevel,
			Format:     DefaultLogFormat,
			MaxSizeMB:  DefaultLogMaxSizeMB,
			MaxBackups: DefaultLogMaxBackups,
			MaxAgeDays: DefaultLogMaxAgeDays,
		},
	}
}
