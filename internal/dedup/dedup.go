package dedup

import (
	"fmt"

	"go-upwork-watcher/internal/scraper"
)

// EmptyLinkPolicy decides what happens to records without a link, which cannot be deduplicated
type EmptyLinkPolicy int

const (
	// EmptyLinkSkip drops empty-link records so they are never notified
	EmptyLinkSkip EmptyLinkPolicy = iota
	// EmptyLinkNotify treats empty-link records as new on every cycle
	EmptyLinkNotify
)

func ParsePolicy(s string) (EmptyLinkPolicy, error) {
	switch s {
	case "", "skip":
		return EmptyLinkSkip, nil
	case "notify":
		return EmptyLinkNotify, nil
	}
	return EmptyLinkSkip, fmt.Errorf("unknown empty link policy %q", s)
}

func (p EmptyLinkPolicy) String() string {
	if p == EmptyLinkNotify {
		return "notify"
	}
	return "skip"
}

// SeenLinks builds the seen-set from persisted records
func SeenLinks(records []scraper.Job) map[string]struct{} {
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		if r.Link != "" {
			seen[r.Link] = struct{}{}
		}
	}
	return seen
}

// NewJobs returns the jobs of the snapshot whose link is not in seen, keeping snapshot order.
// A link repeated inside the snapshot is reported once. Neither input is modified.
func NewJobs(all []scraper.Job, seen map[string]struct{}, policy EmptyLinkPolicy) []scraper.Job {
	fresh := make([]scraper.Job, 0)
	inBatch := make(map[string]struct{})

	for _, job := range all {
		if job.Link == "" {
			if policy == EmptyLinkNotify {
				fresh = append(fresh, job)
			}
			continue
		}
		if _, ok := seen[job.Link]; ok {
			continue
		}
		if _, ok := inBatch[job.Link]; ok {
			continue
		}
		inBatch[job.Link] = struct{}{}
		fresh = append(fresh, job)
	}
	return fresh
}
