package dedup

import (
	"testing"

	"go-upwork-watcher/internal/scraper"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func job(link string) scraper.Job {
	return scraper.Job{Title: "t " + link, Content: "c", Link: link}
}

func TestNewJobs(t *testing.T) {
	seen := map[string]struct{}{"https://x/1": {}}
	all := []scraper.Job{job("https://x/1"), job("https://x/2"), job("")}

	tests := []struct {
		name   string
		policy EmptyLinkPolicy
		want   []scraper.Job
	}{
		{name: "skip empty links", policy: EmptyLinkSkip, want: []scraper.Job{job("https://x/2")}},
		{name: "notify empty links", policy: EmptyLinkNotify, want: []scraper.Job{job("https://x/2"), job("")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewJobs(all, seen, tt.policy))
		})
	}
}

func TestNewJobs_PreservesOrderAndExcludesSeen(t *testing.T) {
	seen := SeenLinks([]scraper.Job{job("b"), job("d"), job("")})
	all := []scraper.Job{job("a"), job("b"), job("c"), job("d"), job("e")}

	got := NewJobs(all, seen, EmptyLinkSkip)

	assert.Equal(t, []scraper.Job{job("a"), job("c"), job("e")}, got)
	for _, j := range got {
		_, isSeen := seen[j.Link]
		assert.False(t, isSeen, "%s should not be reported", j.Link)
	}
}

func TestNewJobs_DuplicateInSnapshot(t *testing.T) {
	first := scraper.Job{Title: "first", Link: "a"}
	second := scraper.Job{Title: "second", Link: "a"}

	got := NewJobs([]scraper.Job{first, second}, map[string]struct{}{}, EmptyLinkSkip)
	assert.Equal(t, []scraper.Job{first}, got)
}

func TestNewJobs_PureAndIdempotent(t *testing.T) {
	seen := map[string]struct{}{"a": {}}
	all := []scraper.Job{job("a"), job("b"), job("")}
	allCopy := append([]scraper.Job(nil), all...)

	first := NewJobs(all, seen, EmptyLinkNotify)
	second := NewJobs(all, seen, EmptyLinkNotify)

	assert.Equal(t, first, second)
	assert.Equal(t, allCopy, all)
	assert.Len(t, seen, 1)
}

func TestNewJobs_EmptyInputs(t *testing.T) {
	got := NewJobs(nil, nil, EmptyLinkSkip)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSeenLinks_IgnoresEmpty(t *testing.T) {
	seen := SeenLinks([]scraper.Job{job(""), job("a"), job("a")})
	assert.Equal(t, map[string]struct{}{"a": {}}, seen)
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, EmptyLinkSkip, p)

	p, err = ParsePolicy("notify")
	require.NoError(t, err)
	assert.Equal(t, EmptyLinkNotify, p)
	assert.Equal(t, "notify", p.String())

	_, err = ParsePolicy("maybe")
	assert.Error(t, err)
}
