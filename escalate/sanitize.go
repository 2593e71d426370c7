package escalate

import "regexp"

// maxSummaryLen bounds the error text copied into notifications and history
// so one pathological error cannot bloat every downstream system.
const maxSummaryLen = 500

// Notifications leave the process, so anything that looks like a credential
// is redacted before the error text is copied into a message.
var (
	credentialPattern  = regexp.MustCompile(`(?i)\b(password|passwd|secret|token|api[_-]?key|authorization|bearer)\b\s*[=:]\s*\S+`)
	urlUserinfoPattern = regexp.MustCompile(`://[^/\s@]+@`)
)

// sanitizeSummary redacts credential-shaped substrings and truncates the
// result. A nil error yields the empty string.
func sanitizeSummary(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	msg = credentialPattern.ReplaceAllString(msg, "$1=[REDACTED]")
	msg = urlUserinfoPattern.ReplaceAllString(msg, "://[REDACTED]@")
	if len(msg) > maxSummaryLen {
		msg = msg[:maxSummaryLen]
	}
	return msg
}
