package utils

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"

	"calboard/pkg/logger"
)

// LoadEnv reads .env from the working directory when present. Variables
// already set in the process environment are left untouched.
func LoadEnv(files ...string) {
	if err := godotenv.Load(files...); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return
		}
		logger.LogWarn("Failed to load env file: %v", err)
	}
}
