package config

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadEnvFiles loads the first existing .env file among paths into the
// process environment. Variables already set are not overridden.
// It returns the path that was loaded, or "" when none exists.
func LoadEnvFiles(paths ...string) (string, error) {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return path, err
		}
		return path, nil
	}
	return "", nil
}
