package filter

import (
	"log"
	"strings"
	"unicode"

	"go-upwork-watcher/internal/scraper"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Matcher keeps jobs mentioning any keyword and none of the excluded ones.
// Matching is case and accent insensitive. No keywords means everything passes.
type Matcher struct {
	include []string
	exclude []string
}

func NewMatcher(keywords, excludeKeywords []string) *Matcher {
	return &Matcher{
		include: normalizeAll(keywords),
		exclude: normalizeAll(excludeKeywords),
	}
}

func (m *Matcher) ShouldIncludeJob(job scraper.Job) bool {
	text := normalizeText(job.Title + " " + job.Content)

	for _, excluded := range m.exclude {
		if strings.Contains(text, excluded) {
			log.Printf("🚫 Skipped excluded keyword '%s': %s", excluded, job.Title)
			return false
		}
	}

	if len(m.include) == 0 {
		return true
	}
	for _, kw := range m.include {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// Filter keeps the order of jobs
func (m *Matcher) Filter(jobs []scraper.Job) []scraper.Job {
	kept := make([]scraper.Job, 0, len(jobs))
	for _, job := range jobs {
		if m.ShouldIncludeJob(job) {
			kept = append(kept, job)
		}
	}
	if len(kept) != len(jobs) {
		log.Printf("Filtered: %d/%d jobs", len(kept), len(jobs))
	}
	return kept
}

func normalizeText(str string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, str)
	return strings.ToLower(result)
}

func normalizeAll(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		out = append(out, normalizeText(w))
	}
	return out
}
