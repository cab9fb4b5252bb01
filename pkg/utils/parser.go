// Package utils provides small helpers shared by the server and the CLI:
// JSON responses, size parsing, origin matching and environment loading.
package utils

import (
	"calboard/pkg/logger"
	"regexp"
	"strconv"
	"strings"
)

// sizeRegex matches a number followed optionally by a unit string.
var sizeRegex = regexp.MustCompile(`^(\d+)\s*([a-zA-Z]*)$`)

// unitMultipliers uses binary prefixes: 1 KB = 1024 bytes.
var unitMultipliers = map[string]int64{
	"":   1,
	"B":  1,
	"KB": 1 << 10,
	"MB": 1 << 20,
	"GB": 1 << 30,
	"TB": 1 << 40,
}

// SizeToBytes parses a human-readable size ("10MB", "512 mb", "2GB") into
// bytes. Invalid input yields defaultValue.
func SizeToBytes(sizeStr string, defaultValue int64) int64 {
	rawStr := strings.TrimSpace(strings.ToUpper(sizeStr))
	if rawStr == "" {
		return defaultValue
	}

	matches := sizeRegex.FindStringSubmatch(rawStr)
	if len(matches) != 3 {
		logger.LogWarn("Utils: Invalid size format '%s', using default.", sizeStr)
		return defaultValue
	}

	value, err := strconv.ParseInt(matches[1], 10, 64)
	if err != nil || value <= 0 {
		logger.LogWarn("Utils: Invalid numeric value in '%s', using default.", sizeStr)
		return defaultValue
	}

	multiplier, exists := unitMultipliers[matches[2]]
	if !exists {
		logger.LogWarn("Utils: Unsupported unit '%s' in '%s', using default.", matches[2], sizeStr)
		return defaultValue
	}

	return value * multiplier
}
