package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// PathwayPattern defines the valid pathway tag format: lowercase alphanumeric, hyphens, underscores.
var PathwayPattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

// MaxResponses bounds the number of questionnaire answers forwarded per submission.
const MaxResponses = 100

// ValidatePathway checks if a pathway tag matches the allowed pattern.
func ValidatePathway(pathway string) bool {
	if pathway == "" || len(pathway) > 64 {
		return false
	}
	return PathwayPattern.MatchString(pathway)
}

// ValidateResponses checks that questionnaire answers are forwardable.
// Values are not interpreted.
func ValidateResponses(responses map[string]any) (bool, string) {
	if len(responses) > MaxResponses {
		return false, fmt.Sprintf("Too many responses (max %d)", MaxResponses)
	}
	for key := range responses {
		if strings.TrimSpace(key) == "" {
			return false, "Response keys must not be empty"
		}
	}
	return true, ""
}

// ValidateURL checks if a URL is valid and uses an allowed scheme (http/https only).
func ValidateURL(urlStr string) (bool, string) {
	if urlStr == "" {
		return false, "URL is required"
	}

	u, err := url.Parse(urlStr)
	if err != nil {
		return false, "Invalid URL format"
	}

	// Check scheme - only allow http and https
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return false, "URL must use http:// or https:// scheme"
	}

	if u.Host == "" {
		return false, "URL must have a valid host"
	}

	return true, ""
}
