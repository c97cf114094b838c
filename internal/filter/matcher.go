package filter

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"go-recruitart-client/internal/models"
)

// Matcher decides which fetched jobs are worth surfacing, built from the
// configured keywords and locations. All matching is diacritics-insensitive
// so "Cần Thơ" and "can tho" compare equal.
type Matcher struct {
	keywords  []string
	locations []string
}

func NewMatcher(keywords, locations []string) *Matcher {
	m := &Matcher{}
	for _, k := range keywords {
		if k = normalizeText(k); k != "" {
			m.keywords = append(m.keywords, k)
		}
	}
	for _, l := range locations {
		if l = normalizeText(l); l != "" {
			m.locations = append(m.locations, l)
		}
	}
	return m
}

func normalizeText(str string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, str)
	return strings.ToLower(strings.TrimSpace(result))
}

// ShouldInclude keeps a job when it mentions a configured keyword, is not
// already closed, and was posted recently enough to still be open.
func (m *Matcher) ShouldInclude(job models.Job) bool {
	if job.Status != "" && job.Status != "active" {
		return false
	}
	if !m.matchesKeyword(job) {
		return false
	}
	return IsRecent(job.CreatedAt)
}

// Score rates a job 0..10 for ordering in reports.
func (m *Matcher) Score(job models.Job) int {
	score := 0
	text := normalizeText(job.Title + " " + job.SkillsRequired + " " + job.Description)

	//keyword hits
	hits := 0
	for _, k := range m.keywords {
		if strings.Contains(text, k) {
			hits++
		}
	}
	if hits > 0 {
		score += 3
	}
	if hits > 1 {
		score += 2
	}

	//location match
	if m.matchesLocation(job.Location) {
		score += 2
	}

	//full time beats the rest
	if job.JobType == "full_time" {
		score += 1
	}

	//fresh postings bubble up
	if IsRecent(job.CreatedAt) {
		score += 1
	}

	if score > 10 {
		return 10
	}
	return score
}

func (m *Matcher) matchesKeyword(job models.Job) bool {
	if len(m.keywords) == 0 {
		return true
	}
	text := normalizeText(job.Title + " " + job.SkillsRequired + " " + job.Description)
	for _, k := range m.keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

func (m *Matcher) matchesLocation(location string) bool {
	loc := normalizeText(location)
	if loc == "" {
		return false
	}
	if strings.Contains(loc, "remote") {
		return true
	}
	for _, want := range m.locations {
		if strings.Contains(loc, want) {
			return true
		}
	}
	return false
}
