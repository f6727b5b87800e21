package cli

import "os"

// Config holds CLI configuration
type Config struct {
	ServerURL string
	Output    string
	Verbose   bool
}

// DefaultConfig returns the default CLI configuration, honoring environment
// overrides
func DefaultConfig() *Config {
	serverURL := os.Getenv("SHOOTOUT_SERVER")
	if serverURL == "" {
		serverURL = "http://localhost:3000"
	}

	return &Config{
		ServerURL: serverURL,
		Output:    "text",
	}
}
