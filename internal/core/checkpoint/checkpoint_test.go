package checkpoint

import (
	"path/filepath"
	"testing"
)

func TestPathForIsTenHexChars(t *testing.T) {
	s := NewStore(t.TempDir())
	path := s.PathFor("/videos/ep01.mkv", "es", "gpt-4o-mini")
	name := filepath.Base(path)

	if len(name) != len("checkpoint_")+10+len(".json") {
		t.Fatalf("unexpected checkpoint filename shape: %q", name)
	}
}

func TestPathForIsDeterministic(t *testing.T) {
	s := NewStore(t.TempDir())
	a := s.PathFor("/videos/ep01.mkv", "es", "gpt-4o-mini")
	b := s.PathFor("/videos/ep01.mkv", "es", "gpt-4o-mini")
	if a != b {
		t.Errorf("PathFor not deterministic: %q vs %q", a, b)
	}
}

func TestPathForDiffersOnIdentity(t *testing.T) {
	s := NewStore(t.TempDir())
	a := s.PathFor("/videos/ep01.mkv", "es", "gpt-4o-mini")
	b := s.PathFor("/videos/ep01.mkv", "fr", "gpt-4o-mini")
	if a == b {
		t.Error("expected different paths for different target languages")
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	s := NewStore(t.TempDir())
	cp := &Checkpoint{
		InputPath:         "/videos/ep01.mkv",
		TargetLang:        "es",
		ModelID:           "gpt-4o-mini",
		TranslatedIndices: []int{0, 1, 2, 5},
		RequestCount:      4,
		CacheHits:         1,
	}

	if err := s.Save(cp); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, ok := s.Load("/videos/ep01.mkv", "es", "gpt-4o-mini")
	if !ok {
		t.Fatal("expected checkpoint to load")
	}
	if len(loaded.TranslatedIndices) != 4 {
		t.Errorf("TranslatedIndices = %v, want 4 entries", loaded.TranslatedIndices)
	}
	if loaded.RequestCount != 4 {
		t.Errorf("RequestCount = %d, want 4", loaded.RequestCount)
	}
}

func TestLoadRejectsMismatchedIdentity(t *testing.T) {
	s := NewStore(t.TempDir())
	cp := &Checkpoint{InputPath: "/videos/ep01.mkv", TargetLang: "es", ModelID: "gpt-4o-mini"}
	if err := s.Save(cp); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Same path on disk (PathFor is identity-derived) but a caller
	// asking for a different target language must not get this
	// checkpoint back.
	_, ok := s.Load("/videos/ep01.mkv", "fr", "gpt-4o-mini")
	if ok {
		t.Error("expected no match for mismatched target language")
	}
}

func TestLoadMissingReturnsFalse(t *testing.T) {
	s := NewStore(t.TempDir())
	_, ok := s.Load("/nope.mkv", "es", "gpt-4o-mini")
	if ok {
		t.Error("expected false for nonexistent checkpoint")
	}
}

func TestClearRemovesCheckpoint(t *testing.T) {
	s := NewStore(t.TempDir())
	cp := &Checkpoint{InputPath: "/v.mkv", TargetLang: "es", ModelID: "m"}
	s.Save(cp)

	if err := s.Clear("/v.mkv", "es", "m"); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, ok := s.Load("/v.mkv", "es", "m"); ok {
		t.Error("expected checkpoint to be gone after Clear")
	}
}

func TestSaveGlossarySkipsSmallDictionary(t *testing.T) {
	dir := t.TempDir()
	err := SaveGlossary(dir, "/subs/ep01.srt", map[string]string{"Naruto": "Naruto", "Sasuke": "Sasuke"})
	if err != nil {
		t.Fatalf("SaveGlossary failed: %v", err)
	}

	glossary, err := LoadGlossary(dir, "/subs/ep01.srt")
	if err != nil {
		t.Fatalf("LoadGlossary failed: %v", err)
	}
	if glossary != nil {
		t.Error("expected no sidecar written for a 2-entry glossary")
	}
}

func TestSaveGlossaryRoundTrip(t *testing.T) {
	dir := t.TempDir()
	input := map[string]string{"Naruto": "Naruto", "Sasuke": "Sasuke", "Kakashi": "Kakashi"}
	if err := SaveGlossary(dir, "/subs/ep01.srt", input); err != nil {
		t.Fatalf("SaveGlossary failed: %v", err)
	}

	loaded, err := LoadGlossary(dir, "/subs/ep01.srt")
	if err != nil {
		t.Fatalf("LoadGlossary failed: %v", err)
	}
	if len(loaded) != 3 {
		t.Errorf("loaded %d entries, want 3", len(loaded))
	}
}
