package cache

import (
	"fmt"

	"github.com/lsilvatti/transtitle/internal/core/cue"
	"github.com/lsilvatti/transtitle/internal/core/db"
)

// MigrateLegacy imports every row from a legacy (hash, lang_pair)
// cache into store, under modelID. The legacy schema predates the
// context-fingerprint column this store keys on, so migrated entries
// get the empty-window fingerprint. The engine never looks that
// fingerprint up (a cue's context window always holds the cue's own
// text), so migrated entries are reached by an exact Get only when the
// caller asks for cue.FingerprintHex(nil) directly; during translation
// they surface through GetFuzzy.
func MigrateLegacy(legacy *db.Cache, store *Store, modelID string) (int, error) {
	entries, err := legacy.All()
	if err != nil {
		return 0, fmt.Errorf("cache: read legacy store: %w", err)
	}

	emptyFingerprint := cue.FingerprintHex(nil)
	migrated := 0
	for _, e := range entries {
		key := Key{Source: e.OriginalText, Fingerprint: emptyFingerprint, Model: modelID}
		if err := store.Put(key, e.TranslatedText); err != nil {
			continue
		}
		migrated++
	}
	return migrated, nil
}
