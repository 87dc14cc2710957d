package core

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/encoding/json"
)

const (
	formDataFile = "form_submissions.json"
	rawDataDir   = "raw_submissions"
)

// Store persists the two submission kinds under a single storage directory:
// form submissions as one growing JSON array, raw submissions one file each.
type Store struct {
	dir  string
	lock sync.Mutex
	now  func() time.Time
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(dir, rawDataDir), os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create storage dir: %w", err)
	}
	return &Store{dir: dir, now: time.Now}, nil
}

func (s *Store) FormFilePath() string {
	return filepath.Join(s.dir, formDataFile)
}

func (s *Store) RawDirPath() string {
	return filepath.Join(s.dir, rawDataDir)
}

// SaveForm appends the submitted fields to the JSON file and returns the
// 1-based entry number.
func (s *Store) SaveForm(fields map[string]string) (int, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	entries := []map[string]string{}
	if data, err := os.ReadFile(s.FormFilePath()); err == nil {
		if err := json.Unmarshal(data, &entries); err != nil {
			return 0, fmt.Errorf("corrupt form store: %w", err)
		}
	}

	entry := map[string]string{}
	for k, v := range fields {
		entry[k] = v
	}
	entry["timestamp"] = s.now().Format(time.RFC3339)
	entries = append(entries, entry)

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return 0, err
	}

	if err := os.WriteFile(s.FormFilePath(), data, 0644); err != nil {
		return 0, fmt.Errorf("failed to write form store: %w", err)
	}

	return len(entries), nil
}

// SaveRaw writes the body to its own file and returns the filename.
func (s *Store) SaveRaw(body string) (string, error) {
	stamp := s.now().Format("20060102_150405")
	name := fmt.Sprintf("raw_submission_%s_%s.txt", stamp, uuid.NewString()[:8])

	path := filepath.Join(s.RawDirPath(), name)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		return "", fmt.Errorf("failed to write raw submission: %w", err)
	}

	return name, nil
}

// FormCount reports how many form entries have been stored.
func (s *Store) FormCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()

	data, err := os.ReadFile(s.FormFilePath())
	if err != nil {
		return 0
	}

	entries := []map[string]string{}
	if err := json.Unmarshal(data, &entries); err != nil {
		return 0
	}
	return len(entries)
}

// RawCount reports how many raw submission files exist.
func (s *Store) RawCount() int {
	files, err := os.ReadDir(s.RawDirPath())
	if err != nil {
		return 0
	}

	count := 0
	for _, f := range files {
		if !f.IsDir() {
			count++
		}
	}
	return count
}
