package dedup

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"go-upwork-watcher/internal/scraper"

	"github.com/gofrs/flock"
)

// JobStore persists notified jobs as a JSON array, most recent first
type JobStore struct {
	filePath   string
	maxRecords int
	lock       *flock.Flock
}

// NewJobStore creates a store backed by path. maxRecords caps the file, 0 keeps everything.
func NewJobStore(path string, maxRecords int) *JobStore {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Printf("⚠️ Failed to create store directory: %v", err)
		}
	}
	return &JobStore{
		filePath:   path,
		maxRecords: maxRecords,
		lock:       flock.New(path + ".lock"),
	}
}

func (s *JobStore) Path() string {
	return s.filePath
}

// Load never fails: a missing or unreadable store reads as empty
func (s *JobStore) Load() []scraper.Job {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("⚠️ Failed to read %s: %v", s.filePath, err)
		}
		return []scraper.Job{}
	}

	var jobs []scraper.Job
	if err := json.Unmarshal(data, &jobs); err != nil {
		log.Printf("⚠️ Failed to parse %s: %v", s.filePath, err)
		return []scraper.Job{}
	}
	if jobs == nil {
		jobs = []scraper.Job{}
	}

	log.Printf("📋 Loaded %d previously seen jobs", len(jobs))
	return jobs
}

// Prepend persists newJobs followed by prior
func (s *JobStore) Prepend(newJobs, prior []scraper.Job) error {
	merged := make([]scraper.Job, 0, len(newJobs)+len(prior))
	merged = append(merged, newJobs...)
	merged = append(merged, prior...)

	if s.maxRecords > 0 && len(merged) > s.maxRecords {
		log.Printf("✂️ Trimming store from %d to %d records", len(merged), s.maxRecords)
		merged = merged[:s.maxRecords]
	}
	return s.Save(merged)
}

// Save replaces the store atomically: temp file in the same directory, fsync, rename
func (s *JobStore) Save(jobs []scraper.Job) error {
	if jobs == nil {
		jobs = []scraper.Job{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(jobs); err != nil {
		return fmt.Errorf("failed to marshal jobs: %w", err)
	}

	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("failed to lock %s: %w", s.filePath, err)
	}
	defer s.lock.Unlock()

	tmp, err := os.CreateTemp(filepath.Dir(s.filePath), filepath.Base(s.filePath)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("failed to chmod %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, s.filePath); err != nil {
		return fmt.Errorf("failed to replace %s: %w", s.filePath, err)
	}

	log.Printf("💾 Saved %d jobs to %s", len(jobs), s.filePath)
	return nil
}
