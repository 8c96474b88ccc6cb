package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// EnvLogLevel overrides logging.level from the configuration file.
const EnvLogLevel = "POSTGEN_LOG_LEVEL"

var envFiles = []string{".env", ".env.local"}

// loadEnvFile loads environment variables from the first existing file in
// envFiles. Variables already present in the process environment win.
func loadEnvFile() error {
	for _, envPath := range envFiles {
		if _, err := os.Stat(envPath); err != nil {
			continue
		}
		if err := godotenv.Load(envPath); err != nil {
			return fmt.Errorf("load %s: %w", envPath, err)
		}
		slog.Debug("Loaded environment variables", "file", envPath)
		return nil
	}
	return fmt.Errorf("no .env file found")
}
