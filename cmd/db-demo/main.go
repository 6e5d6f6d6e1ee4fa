package main

import (
	"fmt"
	"log"
	"os"

	"github.com/lsilvatti/transtitle/internal/core/cache"
	"github.com/lsilvatti/transtitle/internal/core/cue"
	"github.com/lsilvatti/transtitle/internal/core/db"
)

// db-demo exercises the legacy (hash, lang_pair) cache and its
// one-time migration into the newer (source, fingerprint, model)
// store, the path a long-time install takes the first time it runs
// against the current cache schema.
func main() {
	fmt.Println("╔═══════════════════════════════════════════╗")
	fmt.Println("║ transtitle - legacy cache migration demo   ║")
	fmt.Println("╚═══════════════════════════════════════════╝")
	fmt.Println()

	legacyPath := "test_legacy_cache.db"
	defer os.Remove(legacyPath)

	legacy, err := db.Open(legacyPath)
	if err != nil {
		log.Fatalf("open legacy cache: %v", err)
	}
	defer legacy.Close()

	fmt.Println("=== Step 1: populate legacy cache ===")
	legacy.SaveTranslation("Hello, world!", "Olá, mundo!", "eng->por")
	legacy.SaveTranslation("Good morning", "Bom dia", "eng->por")
	legacy.SaveTranslation("Thank you", "Obrigado", "eng->por")
	fmt.Println("  ✓ Saved 3 translations under the legacy schema")
	fmt.Println()

	fmt.Println("=== Step 2: open the current cache store ===")
	storePath := "test_current_cache.db"
	defer os.Remove(storePath)
	store, err := cache.Open(storePath, 256)
	if err != nil {
		log.Fatalf("open cache store: %v", err)
	}

	fmt.Println("=== Step 3: migrate legacy entries ===")
	migrated, err := cache.MigrateLegacy(legacy, store, "legacy-import")
	if err != nil {
		log.Fatalf("migrate: %v", err)
	}
	fmt.Printf("  ✓ Migrated %d entries into the current store\n", migrated)
	fmt.Println()

	fmt.Println("=== Step 4: verify via the current store's lookup ===")
	// Entries migrated with no context window carry the empty-window
	// fingerprint; reproduce that here to look one up.
	emptyFingerprint := cue.FingerprintHex(nil)
	for _, text := range []string{"Hello, world!", "Good morning"} {
		key := cache.Key{Source: text, Fingerprint: emptyFingerprint, Model: "legacy-import"}
		if target, ok := store.Get(key); ok {
			fmt.Printf("  ✓ '%s' -> '%s'\n", text, target)
		} else {
			fmt.Printf("  ✗ '%s' not found\n", text)
		}
	}
	fmt.Println()

	stats, err := store.Stats(5)
	if err != nil {
		log.Printf("stats error: %v", err)
	} else {
		fmt.Println("=== Current store statistics ===")
		fmt.Printf("  Total entries: %d\n", stats.TotalEntries)
		fmt.Printf("  Bytes on disk: %d\n", stats.BytesOnDisk)
	}

	fmt.Println()
	fmt.Println("✓ Migration demo completed")
}
