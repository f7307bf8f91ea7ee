package logging

import (
	"regexp"
)

// RedactedText replaces secrets in logged strings.
const RedactedText = "[REDACTED]"

var (
	// password=..., pwd=..., pass=... up to the next delimiter
	passwordPattern = regexp.MustCompile(`(?i)(password|pwd|pass)=[^;&\s]+`)

	// Bearer tokens; hosted record APIs use JWTs as keys
	bearerPattern = regexp.MustCompile(`(?i)Bearer\s+[A-Za-z0-9\-_.]+`)

	// apikey=... in query strings or header dumps
	apiKeyPattern = regexp.MustCompile(`(?i)(api[_-]?key|apikey)([=:]\s*)[A-Za-z0-9\-_.]{8,}`)

	// user:pass@host in URLs
	userInfoPattern = regexp.MustCompile(`://[^:/\s]+:[^@/\s]+@`)
)

// SanitizeConnectionString removes credentials from a database connection
// string or URL before it is logged.
func SanitizeConnectionString(connStr string) string {
	if connStr == "" {
		return ""
	}
	sanitized := passwordPattern.ReplaceAllString(connStr, "${1}="+RedactedText)
	return userInfoPattern.ReplaceAllString(sanitized, "://"+RedactedText+"@")
}

// SanitizeError renders err with passwords, tokens and API keys removed.
// Use it for any error coming back from a Record Store.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}
	sanitized := passwordPattern.ReplaceAllString(err.Error(), "${1}="+RedactedText)
	sanitized = bearerPattern.ReplaceAllString(sanitized, "Bearer "+RedactedText)
	sanitized = apiKeyPattern.ReplaceAllString(sanitized, "${1}${2}"+RedactedText)
	return userInfoPattern.ReplaceAllString(sanitized, "://"+RedactedText+"@")
}
