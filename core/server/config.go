package server

import "strings"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8000"`
	// ApiKey is the secret key required to access the API. Empty disables auth.
	ApiKey string `mapstructure:"api_key" default:""`
	// AllowOrigins is the comma separated CORS origin list.
	AllowOrigins string `mapstructure:"allow_origins" default:"*"`
	// SearchLimit caps the number of rows a record search may return.
	SearchLimit int `mapstructure:"search_limit" default:"1000"`
}

// Origins returns the configured CORS origins, trimmed.
func (c Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
