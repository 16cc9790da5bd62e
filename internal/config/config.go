package config

import (
	"os"
	"path/filepath"
	"sync"

	"arac/ar-rollforward/internal/logging"

	"github.com/joho/godotenv"
)

var envOnce sync.Once

// LoadEnv loads environment variables from a .env file in the working
// directory or its parent, if one exists. Variables already set in the
// environment win. Only the first call has any effect.
func LoadEnv(logger logging.Logger) {
	if logger == nil {
		logger = logging.Nop()
	}
	envOnce.Do(func() {
		envFile, ok := findEnvFile()
		if !ok {
			logger.Debug("No .env file found, using environment variables")
			return
		}
		if err := godotenv.Load(envFile); err != nil {
			logger.WithError(err).Warn("Error loading .env file", logging.F(logging.FieldFile, envFile))
			return
		}
		logger.Debug("Loaded environment variables", logging.F(logging.FieldFile, envFile))
	})
}

func findEnvFile() (string, bool) {
	for _, candidate := range []string{".env", filepath.Join("..", ".env")} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
	}
	return "", false
}
