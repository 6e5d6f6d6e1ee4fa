// Package checkpoint implements the checkpoint store (C8): a
// resumable per-(file, target language, model) progress record,
// written atomically, plus a glossary sidecar once enough terms have
// accumulated to be worth persisting.
package checkpoint

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mholt/archiver/v3"
)

// Checkpoint is the resumable state for one translation run. It is
// matched against the run that wants to resume by the three identity
// fields, not just by filename: a stale checkpoint whose identity
// doesn't match is never silently adopted.
type Checkpoint struct {
	InputPath         string            `json:"input_path"`
	TargetLang        string            `json:"target_lang"`
	ModelID           string            `json:"model_id"`
	TranslatedIndices []int             `json:"translated_indices"`
	Glossary          map[string]string `json:"glossary,omitempty"`
	RequestCount      int               `json:"request_count"`
	CacheHits         int               `json:"cache_hits"`
	FallbackCount     int               `json:"fallback_count"`
	SavedAt           time.Time         `json:"saved_at"`
}

// Store derives a checkpoint's on-disk path from the run's identity
// and persists/restores it with atomic, crash-safe writes.
type Store struct {
	dir string
}

// NewStore builds a checkpoint store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the store's root directory, used by callers that persist
// sidecar files (e.g. the glossary) alongside checkpoints.
func (s *Store) Dir() string { return s.dir }

// PathFor derives the checkpoint file path: MD5 of
// "<inputPath>_<targetLang>_<modelID>" truncated to its first 10 hex
// characters, ported from the original implementation's
// _get_checkpoint_path.
func (s *Store) PathFor(inputPath, targetLang, modelID string) string {
	sum := md5.Sum([]byte(fmt.Sprintf("%s_%s_%s", inputPath, targetLang, modelID)))
	hash := hex.EncodeToString(sum[:])[:10]
	return filepath.Join(s.dir, fmt.Sprintf("checkpoint_%s.json", hash))
}

// Load returns the checkpoint for (inputPath, targetLang, modelID) if
// one exists and its identity fields match exactly; otherwise it
// returns (nil, false) so the caller starts fresh rather than adopting
// a mismatched or corrupt checkpoint.
func (s *Store) Load(inputPath, targetLang, modelID string) (*Checkpoint, bool) {
	path := s.PathFor(inputPath, targetLang, modelID)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	var cp Checkpoint
	if err := json.Unmarshal(data, &cp); err != nil {
		return nil, false
	}
	if cp.InputPath != inputPath || cp.TargetLang != targetLang || cp.ModelID != modelID {
		return nil, false
	}
	return &cp, true
}

// Save atomically writes cp: write to a sibling temp file, then
// rename over the real path, so a crash mid-write never leaves a
// half-written checkpoint behind.
func (s *Store) Save(cp *Checkpoint) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("checkpoint: create dir: %w", err)
	}

	cp.SavedAt = time.Now()
	path := s.PathFor(cp.InputPath, cp.TargetLang, cp.ModelID)

	data, err := json.MarshalIndent(cp, "", "  ")
	if err != nil {
		return fmt.Errorf("checkpoint: marshal: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, "checkpoint-*.tmp")
	if err != nil {
		return fmt.Errorf("checkpoint: create temp: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("checkpoint: write temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("checkpoint: close temp: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("checkpoint: rename: %w", err)
	}
	return nil
}

// Clear removes the checkpoint for a completed run.
func (s *Store) Clear(inputPath, targetLang, modelID string) error {
	path := s.PathFor(inputPath, targetLang, modelID)
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("checkpoint: clear: %w", err)
	}
	return nil
}

// Archive rolls every checkpoint currently in the store directory
// into a single dated .tar.gz beneath dir/archive, using the
// teacher's own archiver dependency rather than a bespoke .bak
// scheme. Intended to be called periodically (e.g. daily) so stale
// checkpoints from abandoned runs don't accumulate unbounded.
func (s *Store) Archive() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("checkpoint: read dir: %w", err)
	}

	var sources []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		sources = append(sources, filepath.Join(s.dir, e.Name()))
	}
	if len(sources) == 0 {
		return nil
	}

	archiveDir := filepath.Join(s.dir, "archive")
	if err := os.MkdirAll(archiveDir, 0o755); err != nil {
		return fmt.Errorf("checkpoint: create archive dir: %w", err)
	}

	dest := filepath.Join(archiveDir, fmt.Sprintf("checkpoints-%s.tar.gz", time.Now().Format("20060102-150405")))
	if err := archiver.Archive(sources, dest); err != nil {
		return fmt.Errorf("checkpoint: archive: %w", err)
	}

	for _, src := range sources {
		os.Remove(src)
	}
	return nil
}
