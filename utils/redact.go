package utils

// RedactToken shortens a bearer token for log and status output. Never log
// a full token.
func RedactToken(token string) string {
	const keep = 8
	if token == "" {
		return "<none>"
	}
	if len(token) <= keep {
		return "********"
	}
	return token[:keep] + "…"
}
