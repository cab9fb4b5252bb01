package utils

import (
	"net/url"
	"strings"
)

// IsAllowedOrigin reports whether origin matches any of the allowed patterns.
func IsAllowedOrigin(origin string, allowedPatterns []string) bool {
	if origin == "" {
		return false
	}

	cleanOrigin := getCleanOrigin(origin)
	for _, pattern := range allowedPatterns {
		if MatchOrigin(cleanOrigin, pattern) {
			return true
		}
	}
	return false
}

func getCleanOrigin(originURL string) string {
	u, err := url.Parse(originURL)
	if err != nil {
		return originURL
	}

	if u.Scheme != "" && u.Host != "" {
		return u.Scheme + "://" + u.Host
	}

	return originURL
}

// MatchOrigin supports four pattern kinds:
//   - "*" accepts everything
//   - exact origin
//   - "https://**.example.com" main domain plus subdomains
//   - "https://*.example.com" subdomains only
func MatchOrigin(origin, pattern string) bool {
	if pattern == "*" {
		return true
	}

	if origin == pattern {
		return true
	}

	if strings.Contains(pattern, "**.") {
		base := strings.Replace(pattern, "**.", "", 1)
		if origin == base {
			return true
		}
		if strings.HasSuffix(origin, "."+removeProtocol(base)) {
			return true
		}
		return false
	}

	if strings.Contains(pattern, "*.") {
		parts := strings.Split(pattern, "*")
		if len(parts) == 2 {
			prefix, suffix := parts[0], parts[1]
			if len(origin) > len(prefix)+len(suffix) &&
				strings.HasPrefix(origin, prefix) && strings.HasSuffix(origin, suffix) {
				middle := origin[len(prefix) : len(origin)-len(suffix)]
				if !strings.Contains(middle, "/") {
					return true
				}
			}
		}
	}

	return false
}

func removeProtocol(urlStr string) string {
	urlStr = strings.TrimPrefix(urlStr, "https://")
	return strings.TrimPrefix(urlStr, "http://")
}
