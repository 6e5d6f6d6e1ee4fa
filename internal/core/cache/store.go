// Package cache implements the two-tier translation cache: a durable
// SQLite-backed store (C1) fronted by a bounded in-process LRU (C2).
// Keys are the (source_text, context_fingerprint, model_id) triple
// from spec.md's data model, not the teacher's (hash, lang_pair) pair.
package cache

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/agnivade/levenshtein"
	_ "modernc.org/sqlite"
)

// CurrentSchemaVersion is the schema version written by this build.
const CurrentSchemaVersion = 2

// compatibleSchemaVersions are versions whose on-disk rows are kept
// rather than truncated on open. For a compatible older version only
// the recorded schema_version is bumped; no columns are added or
// rewritten.
var compatibleSchemaVersions = map[int]bool{1: true, 2: true}

// Key is the three-column cache key from spec.md's data model.
type Key struct {
	Source      string
	Fingerprint string // 32-char lowercase hex, see internal/core/cue.FingerprintHex
	Model       string
}

// Entry is a persisted translation, optionally annotated with a fuzzy
// match similarity score (only populated by GetFuzzy).
type Entry struct {
	Key        Key
	Target     string
	CreatedAt  time.Time
	LastUsed   time.Time
	UsageCount int
	Similarity float64
}

// Stats summarizes the store's contents.
type Stats struct {
	TotalEntries int
	BytesOnDisk  int64
	TopByUsage   []Entry
	PerModel     map[string]int
}

// Store is the durable, crash-safe C1 cache store, with an in-process
// LRU (C2) in front of it.
type Store struct {
	db   *sql.DB
	mu   sync.RWMutex
	path string

	mem *memLRU

	sweepMu      sync.Mutex
	lastSweepDay string
	sweepTTLDays int
}

// Open opens (creating if needed) a cache database at path, with an
// LRU of memBound entries in front of it.
func Open(path string, memBound int) (*Store, error) {
	if path == "" {
		return nil, errors.New("cache: empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cache: create dir: %w", err)
	}

	s, err := openAt(path)
	if err != nil {
		// Attempt restore from sibling .bak before giving up, per
		// spec.md §4.1; failing that, re-create an empty store.
		if restoreErr := restoreBackup(path); restoreErr == nil {
			s, err = openAt(path)
		}
		if err != nil {
			_ = os.Remove(path)
			s, err = openAt(path)
			if err != nil {
				return nil, fmt.Errorf("cache: open failed even after reset: %w", err)
			}
		}
	}

	s.mem = newMemLRU(memBound)
	return s, nil
}

func openAt(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("cache: open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: enable WAL: %w", err)
	}
	if _, err := db.Exec("PRAGMA synchronous=NORMAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: set synchronous: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	s := &Store{db: db, path: path}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: init schema: %w", err)
	}
	return s, nil
}

func (s *Store) initSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS cache_entries (
			source_text TEXT NOT NULL,
			context_fingerprint TEXT NOT NULL,
			model_id TEXT NOT NULL,
			target_text TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			last_used INTEGER NOT NULL,
			usage_count INTEGER NOT NULL DEFAULT 1,
			PRIMARY KEY (source_text, context_fingerprint, model_id)
		);
		CREATE INDEX IF NOT EXISTS idx_cache_model ON cache_entries(model_id);
		CREATE INDEX IF NOT EXISTS idx_cache_last_used ON cache_entries(last_used);
		CREATE INDEX IF NOT EXISTS idx_cache_usage ON cache_entries(usage_count);

		CREATE TABLE IF NOT EXISTS cache_meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		return err
	}
	return s.reconcileSchemaVersion()
}

func (s *Store) reconcileSchemaVersion() error {
	version, ok, err := s.metaInt("schema_version")
	if err != nil {
		return err
	}
	if !ok {
		return s.setMeta("schema_version", fmt.Sprintf("%d", CurrentSchemaVersion))
	}
	if version == CurrentSchemaVersion {
		return nil
	}
	if !compatibleSchemaVersions[version] {
		if err := s.truncateAll(); err != nil {
			return err
		}
		return s.setMeta("schema_version", fmt.Sprintf("%d", CurrentSchemaVersion))
	}
	// Compatible older version: keep rows, bump the recorded version.
	return s.setMeta("schema_version", fmt.Sprintf("%d", CurrentSchemaVersion))
}

func (s *Store) truncateAll() error {
	_, err := s.db.Exec("DELETE FROM cache_entries")
	return err
}

func (s *Store) metaInt(key string) (int, bool, error) {
	var v string
	err := s.db.QueryRow("SELECT value FROM cache_meta WHERE key = ?", key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	var n int
	if _, err := fmt.Sscanf(v, "%d", &n); err != nil {
		return 0, false, err
	}
	return n, true, nil
}

func (s *Store) setMeta(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO cache_meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

// Get performs the two-tier lookup: LRU (C2) first, falling back to
// the durable store (C1) and backfilling the LRU on a disk hit. A disk
// hit bumps the row's usage_count/last_used; an LRU hit does not touch
// the row.
func (s *Store) Get(key Key) (string, bool) {
	if target, ok := s.mem.get(key); ok {
		return target, true
	}

	s.maybeSweep()

	s.mu.RLock()
	var target string
	err := s.db.QueryRow(`
		SELECT target_text FROM cache_entries
		WHERE source_text = ? AND context_fingerprint = ? AND model_id = ?
	`, key.Source, key.Fingerprint, key.Model).Scan(&target)
	s.mu.RUnlock()

	if err != nil {
		return "", false
	}

	s.touch(key)
	s.mem.put(key, target)
	return target, true
}

func (s *Store) touch(key Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().Unix()
	s.db.Exec(`
		UPDATE cache_entries SET last_used = ?, usage_count = usage_count + 1
		WHERE source_text = ? AND context_fingerprint = ? AND model_id = ?
	`, now, key.Source, key.Fingerprint, key.Model)
}

// GetFuzzy finds the best near-match for key.Source within the same
// (model, approximate length) population, above threshold similarity.
// This is the supplemented fuzzy-match feature from SPEC_FULL.md §11;
// it never participates in the exact-key testable properties.
func (s *Store) GetFuzzy(key Key, threshold float64) (*Entry, bool) {
	if exact, ok := s.Get(key); ok {
		return &Entry{Key: key, Target: exact, Similarity: 1.0}, true
	}

	textLen := len(key.Source)
	minLen := int(float64(textLen) * threshold)
	maxLen := int(float64(textLen) / threshold)

	s.mu.RLock()
	rows, err := s.db.Query(`
		SELECT source_text, target_text, context_fingerprint
		FROM cache_entries
		WHERE model_id = ? AND LENGTH(source_text) BETWEEN ? AND ?
		ORDER BY last_used DESC
		LIMIT 500
	`, key.Model, minLen, maxLen)
	s.mu.RUnlock()
	if err != nil {
		return nil, false
	}
	defer rows.Close()

	var best *Entry
	var bestSim float64
	for rows.Next() {
		var source, target, fp string
		if err := rows.Scan(&source, &target, &fp); err != nil {
			continue
		}
		sim := similarity(key.Source, source)
		if sim >= threshold && sim > bestSim {
			bestSim = sim
			best = &Entry{
				Key:        Key{Source: source, Fingerprint: fp, Model: key.Model},
				Target:     target,
				Similarity: sim,
			}
		}
	}

	if best != nil {
		s.touch(best.Key)
		return best, true
	}
	return nil, false
}

func similarity(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == b {
		return 1.0
	}
	dist := levenshtein.ComputeDistance(a, b)
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(dist)/float64(maxLen)
}

// Put upserts a translation. Rejected if either string is empty after
// trimming, per spec.md's CacheEntry invariant.
func (s *Store) Put(key Key, target string) error {
	source := strings.TrimSpace(key.Source)
	target = strings.TrimSpace(target)
	if source == "" || target == "" {
		return errors.New("cache: refusing to store empty source or target")
	}

	s.maybeSweep()

	now := time.Now().Unix()
	s.mu.Lock()
	_, err := s.db.Exec(`
		INSERT INTO cache_entries (source_text, context_fingerprint, model_id, target_text, created_at, last_used, usage_count)
		VALUES (?, ?, ?, ?, ?, ?, 1)
		ON CONFLICT(source_text, context_fingerprint, model_id) DO UPDATE SET
			target_text = excluded.target_text,
			last_used = excluded.last_used,
			usage_count = cache_entries.usage_count + 1
	`, source, key.Fingerprint, key.Model, target, now, now)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("cache: put: %w", err)
	}

	s.mem.put(Key{Source: source, Fingerprint: key.Fingerprint, Model: key.Model}, target)
	return nil
}

// DeleteOlderThan removes entries whose last_used predates the cutoff
// (now - days). Backs up to .bak first, per spec.md §4.1.
func (s *Store) DeleteOlderThan(days int) (int64, error) {
	if err := s.backup(); err != nil {
		return 0, err
	}
	cutoff := time.Now().AddDate(0, 0, -days).Unix()

	s.mu.Lock()
	res, err := s.db.Exec("DELETE FROM cache_entries WHERE last_used < ?", cutoff)
	s.mu.Unlock()
	if err != nil {
		return 0, fmt.Errorf("cache: delete older than: %w", err)
	}
	s.mem.clear()
	return res.RowsAffected()
}

// DeleteByModel removes all entries for a model id.
func (s *Store) DeleteByModel(model string) (int64, error) {
	if err := s.backup(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	res, err := s.db.Exec("DELETE FROM cache_entries WHERE model_id = ?", model)
	s.mu.Unlock()
	if err != nil {
		return 0, fmt.Errorf("cache: delete by model: %w", err)
	}
	s.mem.clear()
	return res.RowsAffected()
}

// ClearAll wipes the store.
func (s *Store) ClearAll() error {
	if err := s.backup(); err != nil {
		return err
	}

	s.mu.Lock()
	_, err := s.db.Exec("DELETE FROM cache_entries")
	if err == nil {
		_, err = s.db.Exec("VACUUM")
	}
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("cache: clear all: %w", err)
	}
	s.mem.clear()
	return nil
}

// Stats reports record count, disk size, and top-N by usage.
func (s *Store) Stats(topN int) (*Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := &Stats{PerModel: map[string]int{}}

	if err := s.db.QueryRow("SELECT COUNT(*) FROM cache_entries").Scan(&st.TotalEntries); err != nil {
		return nil, fmt.Errorf("cache: stats count: %w", err)
	}

	if fi, err := os.Stat(s.path); err == nil {
		st.BytesOnDisk = fi.Size()
	}

	modelRows, err := s.db.Query("SELECT model_id, COUNT(*) FROM cache_entries GROUP BY model_id")
	if err != nil {
		return nil, fmt.Errorf("cache: stats per-model: %w", err)
	}
	defer modelRows.Close()
	for modelRows.Next() {
		var model string
		var count int
		if err := modelRows.Scan(&model, &count); err == nil {
			st.PerModel[model] = count
		}
	}

	if topN > 0 {
		topRows, err := s.db.Query(`
			SELECT source_text, context_fingerprint, model_id, target_text, created_at, last_used, usage_count
			FROM cache_entries ORDER BY usage_count DESC LIMIT ?
		`, topN)
		if err != nil {
			return nil, fmt.Errorf("cache: stats top-n: %w", err)
		}
		defer topRows.Close()
		for topRows.Next() {
			var e Entry
			var created, lastUsed int64
			if err := topRows.Scan(&e.Key.Source, &e.Key.Fingerprint, &e.Key.Model, &e.Target, &created, &lastUsed, &e.UsageCount); err != nil {
				continue
			}
			e.CreatedAt = time.Unix(created, 0)
			e.LastUsed = time.Unix(lastUsed, 0)
			st.TopByUsage = append(st.TopByUsage, e)
		}
	}

	return st, nil
}

// snapshot is the versioned export format.
type snapshot struct {
	Version int             `json:"version"`
	Entries []snapshotEntry `json:"entries"`
}

type snapshotEntry struct {
	Source      string `json:"source_text"`
	Fingerprint string `json:"context_fingerprint"`
	Model       string `json:"model_id"`
	Target      string `json:"target_text"`
	CreatedAt   int64  `json:"created_at"`
	LastUsed    int64  `json:"last_used"`
	UsageCount  int    `json:"usage_count"`
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// backup produces a sibling .bak snapshot before a bulk destructive
// operation, per spec.md §4.1.
func (s *Store) backup() error {
	src, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("cache: backup open: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(s.path + ".bak")
	if err != nil {
		return fmt.Errorf("cache: backup create: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("cache: backup copy: %w", err)
	}
	return nil
}

func restoreBackup(path string) error {
	bak := path + ".bak"
	if _, err := os.Stat(bak); err != nil {
		return err
	}
	src, err := os.Open(bak)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}

// maybeSweep runs DeleteOlderThan (using the store's configured TTL,
// via sweepTTLDays) at most once per calendar day, lazily on first
// access of a new day, per spec.md §4.1. Calling code configures the
// TTL via SetSweepTTL; a zero TTL disables sweeping.
func (s *Store) maybeSweep() {
	s.sweepMu.Lock()
	today := time.Now().Format("2006-01-02")
	shouldSweep := s.sweepTTLDays > 0 && s.lastSweepDay != today
	if shouldSweep {
		s.lastSweepDay = today
	}
	s.sweepMu.Unlock()

	if shouldSweep {
		s.DeleteOlderThan(s.sweepTTLDays)
	}
}

// SetSweepTTL configures the lazily-triggered daily eviction sweep.
// ttlDays <= 0 disables it.
func (s *Store) SetSweepTTL(ttlDays int) {
	s.sweepMu.Lock()
	s.sweepTTLDays = ttlDays
	s.sweepMu.Unlock()
}

// Export writes every entry to path as one indented JSON snapshot
// object (schema version plus entries), sorted by (model, source) for
// a reproducible diff between exports.
func (s *Store) Export(path string) error {
	s.mu.RLock()
	rows, err := s.db.Query(`
		SELECT source_text, context_fingerprint, model_id, target_text, created_at, last_used, usage_count
		FROM cache_entries
	`)
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("cache: export query: %w", err)
	}
	defer rows.Close()

	var entries []snapshotEntry
	for rows.Next() {
		var e snapshotEntry
		if err := rows.Scan(&e.Source, &e.Fingerprint, &e.Model, &e.Target, &e.CreatedAt, &e.LastUsed, &e.UsageCount); err != nil {
			return fmt.Errorf("cache: export scan: %w", err)
		}
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Model != entries[j].Model {
			return entries[i].Model < entries[j].Model
		}
		return entries[i].Source < entries[j].Source
	})

	snap := snapshot{Version: CurrentSchemaVersion, Entries: entries}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("cache: export marshal: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Import loads entries from an Export snapshot. Snapshots from the
// current or an immediately-prior compatible schema version (see
// compatibleSchemaVersions) are accepted; anything else is ignored
// wholesale rather than risking a misread row shape. Each entry is
// restored via putSnapshotEntry, which preserves the exported
// created_at/usage_count rather than resetting them the way a fresh
// Put would, so import(export(store)) reproduces store modulo
// last_used.
func (s *Store) Import(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cache: import read: %w", err)
	}
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("cache: import unmarshal: %w", err)
	}
	if snap.Version != CurrentSchemaVersion && !compatibleSchemaVersions[snap.Version] {
		return nil
	}
	for _, e := range snap.Entries {
		if err := s.putSnapshotEntry(e); err != nil {
			return fmt.Errorf("cache: import put %q: %w", e.Source, err)
		}
	}
	return nil
}

// putSnapshotEntry upserts one exported entry, restoring created_at
// and usage_count from the snapshot instead of the now/1 a fresh Put
// would assign.
func (s *Store) putSnapshotEntry(e snapshotEntry) error {
	source := strings.TrimSpace(e.Source)
	target := strings.TrimSpace(e.Target)
	if source == "" || target == "" {
		return nil
	}

	s.maybeSweep()

	s.mu.Lock()
	_, err := s.db.Exec(`
		INSERT INTO cache_entries (source_text, context_fingerprint, model_id, target_text, created_at, last_used, usage_count)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(source_text, context_fingerprint, model_id) DO UPDATE SET
			target_text = excluded.target_text,
			last_used = excluded.last_used,
			usage_count = excluded.usage_count
	`, source, e.Fingerprint, e.Model, target, e.CreatedAt, e.LastUsed, e.UsageCount)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("cache: put snapshot entry: %w", err)
	}

	s.mem.put(Key{Source: source, Fingerprint: e.Fingerprint, Model: e.Model}, target)
	return nil
}
