package engine

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/lsilvatti/transtitle/internal/core/ai"
	"github.com/lsilvatti/transtitle/internal/core/cache"
	"github.com/lsilvatti/transtitle/internal/core/checkpoint"
	"github.com/lsilvatti/transtitle/internal/core/concurrency"
	"github.com/lsilvatti/transtitle/internal/core/cue"
	"github.com/lsilvatti/transtitle/internal/core/governor"
	"github.com/lsilvatti/transtitle/internal/core/subio"
)

// memSubtitleIO is an in-memory subio.SubtitleIO: Read returns a copy
// of the cues it was seeded with, Write records whatever the engine
// produced so a test can inspect it.
type memSubtitleIO struct {
	mu      sync.Mutex
	seeded  []cue.Cue
	format  subio.Format
	written map[string][]cue.Cue
}

func newMemSubtitleIO(cues []cue.Cue) *memSubtitleIO {
	return &memSubtitleIO{seeded: cues, format: subio.FormatSRT, written: make(map[string][]cue.Cue)}
}

func (m *memSubtitleIO) Read(path string) ([]cue.Cue, subio.Format, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]cue.Cue, len(m.seeded))
	copy(out, m.seeded)
	return out, m.format, nil
}

func (m *memSubtitleIO) Write(path string, cues []cue.Cue, format subio.Format) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]cue.Cue, len(cues))
	copy(out, cues)
	m.written[path] = out
	return nil
}

func (m *memSubtitleIO) lastWritten() []cue.Cue {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range m.written {
		return v
	}
	return nil
}

// fakeProvider translates by prefixing the source with "TR ", unless
// told to fail for a given model, in which case it returns a
// classified ai.ProviderError. Every call is counted, split out per
// model id, so tests can assert exactly how many requests each model
// saw.
type fakeProvider struct {
	mu       sync.Mutex
	calls    int
	byModel  map[string]int
	failFor  map[string]bool
	failCode string
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{byModel: make(map[string]int), failFor: make(map[string]bool), failCode: "rate_limit"}
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Translate(ctx context.Context, source string, contextTexts []string, modelID string) (ai.Result, error) {
	f.mu.Lock()
	f.calls++
	f.byModel[modelID]++
	fail := f.failFor[modelID]
	code := f.failCode
	f.mu.Unlock()

	if fail {
		return ai.Result{}, &ai.ProviderError{Provider: "fake", Code: code, Message: "forced failure", Retryable: false}
	}
	return ai.Result{Text: "TR " + source, PromptTokens: 1, CompletionTokens: 1}, nil
}

func (f *fakeProvider) Available(ctx context.Context) bool { return true }

func (f *fakeProvider) ListModels(ctx context.Context) ([]ai.ModelDescriptor, error) {
	return []ai.ModelDescriptor{{ID: "fake-model", Provider: "fake"}}, nil
}

func (f *fakeProvider) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeProvider) callsFor(model string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byModel[model]
}

func newTestEngine(t *testing.T, subtitleIO subio.SubtitleIO, provider ai.Provider) (*Engine, *cache.Store) {
	t.Helper()
	dir := t.TempDir()

	cacheStore, err := cache.Open(filepath.Join(dir, "cache.db"), 256)
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	t.Cleanup(func() { cacheStore.Close() })

	gov := governor.New(governor.Limits{MaxRequestsPerWindow: 1000, MaxTokensPerWindow: 1_000_000, Window: 0})
	controller := concurrency.New(4, 1, 8)
	checkpoints := checkpoint.NewStore(filepath.Join(dir, "checkpoints"))

	return New(subtitleIO, cacheStore, provider, gov, controller, checkpoints, nil), cacheStore
}

func sampleCues() []cue.Cue {
	return []cue.Cue{
		{Index: 0, Text: "hello"},
		{Index: 1, Text: "world"},
		{Index: 2, Text: "  "}, // whitespace-only: must be skipped, not translated
	}
}

func TestTranslateFileBasic(t *testing.T) {
	provider := newFakeProvider()
	io := newMemSubtitleIO(sampleCues())
	eng, _ := newTestEngine(t, io, provider)

	_, err := eng.TranslateFile(context.Background(), TranslateFileRequest{
		InputPath:  "episode.srt",
		TargetLang: "es",
		ModelID:    "fake-model",
		Options:    Options{DisplayMode: DisplayTranslationOnly, ContextWindow: 2, UseCache: true},
	})
	if err != nil {
		t.Fatalf("TranslateFile failed: %v", err)
	}

	out := io.lastWritten()
	if len(out) != 3 {
		t.Fatalf("expected 3 cues written, got %d", len(out))
	}
	if out[0].Text != "TR hello" || out[1].Text != "TR world" {
		t.Errorf("unexpected translated text: %+v", out)
	}

	stats := eng.Stats()
	if stats.Translated != 2 {
		t.Errorf("Translated = %d, want 2", stats.Translated)
	}
	if stats.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", stats.Skipped)
	}
	if eng.State() != StateCompleted {
		t.Errorf("State = %v, want Completed", eng.State())
	}
}

func TestTranslateFileCacheHitSkipsProvider(t *testing.T) {
	provider := newFakeProvider()
	io := newMemSubtitleIO(sampleCues())
	eng, _ := newTestEngine(t, io, provider)

	req := TranslateFileRequest{
		InputPath:  "episode.srt",
		TargetLang: "es",
		ModelID:    "fake-model",
		Options:    Options{DisplayMode: DisplayTranslationOnly, ContextWindow: 2, UseCache: true},
	}

	if _, err := eng.TranslateFile(context.Background(), req); err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	firstCalls := provider.callCount()

	if _, err := eng.TranslateFile(context.Background(), req); err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	if provider.callCount() != firstCalls {
		t.Errorf("second run made %d new provider calls, want 0 (all cache hits)", provider.callCount()-firstCalls)
	}
	if eng.Stats().CacheHits != 2 {
		t.Errorf("CacheHits = %d, want 2", eng.Stats().CacheHits)
	}
}

func TestTranslateFileFallbackAtMostOnce(t *testing.T) {
	provider := newFakeProvider()
	provider.failFor["primary-model"] = true
	io := newMemSubtitleIO([]cue.Cue{{Index: 0, Text: "hello"}})
	eng, cacheStore := newTestEngine(t, io, provider)

	_, err := eng.TranslateFile(context.Background(), TranslateFileRequest{
		InputPath:  "episode.srt",
		TargetLang: "es",
		ModelID:    "primary-model",
		Options: Options{
			DisplayMode:   DisplayTranslationOnly,
			ContextWindow: 2,
			UseCache:      true,
			Fallbacks:     map[string][]string{"primary-model": {"fallback-model"}},
		},
	})
	if err != nil {
		t.Fatalf("TranslateFile failed: %v", err)
	}

	if provider.callsFor("primary-model") != 1 {
		t.Errorf("primary-model calls = %d, want 1", provider.callsFor("primary-model"))
	}
	if provider.callsFor("fallback-model") != 1 {
		t.Errorf("fallback-model calls = %d, want 1", provider.callsFor("fallback-model"))
	}

	out := io.lastWritten()
	if out[0].Text != "TR hello" {
		t.Errorf("expected fallback translation to apply, got %q", out[0].Text)
	}

	fp := cue.FingerprintHex(cue.ContextWindow([]cue.Cue{{Index: 0, Text: "hello"}}, 0, 2))
	if _, ok := cacheStore.Get(cache.Key{Source: "hello", Fingerprint: fp, Model: "fallback-model"}); !ok {
		t.Error("expected cache entry keyed under the fallback model, not the primary one")
	}
}

func TestTranslateFileResumeRestoresTranslatedText(t *testing.T) {
	provider := newFakeProvider()
	cues := sampleCues()
	io := newMemSubtitleIO(cues)
	eng, cacheStore := newTestEngine(t, io, provider)

	req := TranslateFileRequest{
		InputPath:  "episode.srt",
		TargetLang: "es",
		ModelID:    "fake-model",
		Options:    Options{DisplayMode: DisplayTranslationOnly, ContextWindow: 2, UseCache: true},
	}
	if _, err := eng.TranslateFile(context.Background(), req); err != nil {
		t.Fatalf("first run failed: %v", err)
	}

	// Build a fresh engine sharing the same cache but a checkpoint
	// claiming cue 0 is already done, as a crash/restart would leave.
	dir2 := t.TempDir()
	checkpoints2 := checkpoint.NewStore(dir2)
	if err := checkpoints2.Save(&checkpoint.Checkpoint{
		InputPath:         req.InputPath,
		TargetLang:        req.TargetLang,
		ModelID:           req.ModelID,
		TranslatedIndices: []int{0},
	}); err != nil {
		t.Fatalf("seed checkpoint: %v", err)
	}

	gov := governor.New(governor.Limits{MaxRequestsPerWindow: 1000, MaxTokensPerWindow: 1_000_000, Window: 0})
	controller := concurrency.New(4, 1, 8)
	io2 := newMemSubtitleIO(sampleCues())
	eng2 := New(io2, cacheStore, provider, gov, controller, checkpoints2, nil)

	if _, err := eng2.TranslateFile(context.Background(), req); err != nil {
		t.Fatalf("resumed run failed: %v", err)
	}

	out := io2.lastWritten()
	if out[0].Text != "TR hello" {
		t.Errorf("resumed run did not restore cached translation for cue 0: got %q", out[0].Text)
	}
	if out[1].Text != "TR world" {
		t.Errorf("resumed run did not produce a correct result for the still-pending cue 1: got %q", out[1].Text)
	}
}

func TestPauseResumeNoOpWhenIdle(t *testing.T) {
	provider := newFakeProvider()
	io := newMemSubtitleIO(sampleCues())
	eng, _ := newTestEngine(t, io, provider)

	eng.Pause()
	if eng.State() != StateIdle {
		t.Errorf("Pause on an idle engine changed state to %v", eng.State())
	}
	eng.Resume()
	if eng.State() != StateIdle {
		t.Errorf("Resume on an idle engine changed state to %v", eng.State())
	}
}

func TestStopDuringPauseReturnsErrStopped(t *testing.T) {
	provider := newFakeProvider()
	io := newMemSubtitleIO(sampleCues())
	eng, _ := newTestEngine(t, io, provider)

	// Simulate a pause already in effect when the run starts, then a
	// stop request arriving while still paused.
	atomic.StoreInt32(&eng.state, int32(StateRunning))
	eng.Pause()
	eng.Stop()

	_, err := eng.TranslateFile(context.Background(), TranslateFileRequest{
		InputPath:  "episode.srt",
		TargetLang: "es",
		ModelID:    "fake-model",
		Options:    Options{DisplayMode: DisplayTranslationOnly, ContextWindow: 2, UseCache: true},
	})
	if err != ErrStopped {
		t.Errorf("err = %v, want ErrStopped", err)
	}
}

func TestTranslateFileConcurrencyBound(t *testing.T) {
	provider := newFakeProvider()
	cues := make([]cue.Cue, 50)
	for i := range cues {
		cues[i] = cue.Cue{Index: i, Text: "line"}
	}
	io := newMemSubtitleIO(cues)
	eng, _ := newTestEngine(t, io, provider)

	_, err := eng.TranslateFile(context.Background(), TranslateFileRequest{
		InputPath:  "episode.srt",
		TargetLang: "es",
		ModelID:    "fake-model",
		Options:    Options{DisplayMode: DisplayTranslationOnly, ContextWindow: 1, UseCache: true, Parallelism: 4},
	})
	if err != nil {
		t.Fatalf("TranslateFile failed: %v", err)
	}
	if provider.callCount() != 50 {
		t.Errorf("provider calls = %d, want 50", provider.callCount())
	}
	if eng.Stats().Translated != 50 {
		t.Errorf("Translated = %d, want 50", eng.Stats().Translated)
	}
}
