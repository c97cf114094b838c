package filter

import (
	"regexp"
	"time"
)

var isoDateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

// IsRecent reports whether a posting date (DRF ISO timestamp) falls within
// the last 60 days. Unparseable or missing dates pass: better to surface a
// job twice than to hide a live one.
func IsRecent(dateStr string) bool {
	if dateStr == "" || !isoDateRegex.MatchString(dateStr) {
		return true
	}

	jobDate, err := time.Parse("2006-01-02", dateStr[:10])
	if err != nil {
		return true
	}

	diff := time.Since(jobDate)
	if diff > 60*24*time.Hour {
		return false
	}
	//future dates beyond 2 days are timezone junk
	if diff < -2*24*time.Hour {
		return false
	}
	return true
}
