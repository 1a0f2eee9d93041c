package cli

import "os"

// Config holds CLI configuration
type Config struct {
	ServerURL string
	GameAddr  string
	Output    string
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault("PONGCTL_SERVER", "http://localhost:8080"),
		GameAddr:  getEnvOrDefault("PONGCTL_GAME_ADDR", "localhost:6000"),
		Output:    "text",
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
