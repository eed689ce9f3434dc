package configuration

import (
	"os"

	"github.com/joho/godotenv"
	"vidsocial/infrastructure/logger"
)

// LoadEnvFromFile loads KEY=VALUE pairs from each file that exists. Variables
// already set in the process environment are not overridden.
func LoadEnvFromFile(paths ...string) {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			logger.GetLogger().WithField("error", err).WithField("file", p).Warn("Failed to load env file")
			continue
		}
		logger.GetLogger().WithField("file", p).Info("Loaded env file")
	}
}
