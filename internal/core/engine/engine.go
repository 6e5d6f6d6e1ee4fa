// Package engine implements the checkpointed batch scheduler (C7) and
// the top-level translation engine (C10): the component that drives a
// whole-file translation job end to end, wiring every other core
// package (subio, cache, ai, governor, concurrency, retry, checkpoint,
// postprocess) into one resumable, pausable run.
package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/lsilvatti/transtitle/internal/core/ai"
	"github.com/lsilvatti/transtitle/internal/core/cache"
	"github.com/lsilvatti/transtitle/internal/core/checkpoint"
	"github.com/lsilvatti/transtitle/internal/core/concurrency"
	"github.com/lsilvatti/transtitle/internal/core/cue"
	"github.com/lsilvatti/transtitle/internal/core/governor"
	"github.com/lsilvatti/transtitle/internal/core/linter"
	"github.com/lsilvatti/transtitle/internal/core/ner"
	"github.com/lsilvatti/transtitle/internal/core/parser"
	"github.com/lsilvatti/transtitle/internal/core/postprocess"
	"github.com/lsilvatti/transtitle/internal/core/retry"
	"github.com/lsilvatti/transtitle/internal/core/subio"
)

// State is the engine's run state. Transitions are
// IDLE -> RUNNING <-> PAUSED -> {STOPPED, COMPLETED, FAILED}.
type State int32

const (
	StateIdle State = iota
	StateRunning
	StatePaused
	StateStopped
	StateCompleted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateStopped:
		return "stopped"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return "idle"
	}
}

// ErrStopped is returned by TranslateFile when Stop was called before
// the job finished.
var ErrStopped = fmt.Errorf("engine: stopped")

// Engine is the top-level translation engine: it owns one job's
// progress at a time and is safe to Pause/Resume/Stop concurrently
// from another goroutine while TranslateFile is running.
type Engine struct {
	subtitleIO  subio.SubtitleIO
	cacheStore  *cache.Store
	provider    ai.Provider
	governor    *governor.Governor
	controller  *concurrency.Controller
	checkpoints *checkpoint.Store
	clock       Clock

	state int32 // atomic State

	mu                sync.Mutex
	pauseGate         chan struct{}
	translatedIndices map[int]struct{}
	stats             TranslationStats

	stopOnce sync.Once
	stopped  chan struct{}
}

// New builds an Engine from its collaborators. clock may be nil, in
// which case wall time is used.
func New(subtitleIO subio.SubtitleIO, cacheStore *cache.Store, provider ai.Provider, gov *governor.Governor, controller *concurrency.Controller, checkpoints *checkpoint.Store, clock Clock) *Engine {
	if clock == nil {
		clock = systemClock{}
	}
	gate := make(chan struct{})
	close(gate) // closed == not paused
	return &Engine{
		subtitleIO:        subtitleIO,
		cacheStore:        cacheStore,
		provider:          provider,
		governor:          gov,
		controller:        controller,
		checkpoints:       checkpoints,
		clock:             clock,
		pauseGate:         gate,
		translatedIndices: make(map[int]struct{}),
		stopped:           make(chan struct{}),
	}
}

// State reports the engine's current run state.
func (e *Engine) State() State {
	return State(atomic.LoadInt32(&e.state))
}

// Stats returns a point-in-time copy of the running job's counters.
func (e *Engine) Stats() TranslationStats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats.snapshot()
}

// Pause suspends the run after its current batch finishes. A no-op if
// the engine isn't currently running.
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if State(atomic.LoadInt32(&e.state)) != StateRunning {
		return
	}
	e.pauseGate = make(chan struct{})
	atomic.StoreInt32(&e.state, int32(StatePaused))
}

// Resume un-suspends a paused run. A no-op if the engine isn't paused.
func (e *Engine) Resume() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if State(atomic.LoadInt32(&e.state)) != StatePaused {
		return
	}
	close(e.pauseGate)
	atomic.StoreInt32(&e.state, int32(StateRunning))
}

// Stop requests that the current run terminate at the next safe
// checkpoint boundary. Idempotent and safe from any goroutine.
func (e *Engine) Stop() {
	e.stopOnce.Do(func() {
		close(e.stopped)
	})
}

func (e *Engine) waitIfPaused(ctx context.Context) error {
	e.mu.Lock()
	gate := e.pauseGate
	e.mu.Unlock()

	select {
	case <-e.stopped:
		return ErrStopped
	default:
	}

	select {
	case <-gate:
		return nil
	default:
	}

	select {
	case <-gate:
		return nil
	case <-e.stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TranslateFile runs one whole-file translation job: read, resume from
// any matching checkpoint, translate every pending cue in adaptively
// sized batches, write the result, and return the written path.
func (e *Engine) TranslateFile(ctx context.Context, req TranslateFileRequest) (string, error) {
	opts := req.Options.withDefaults()
	atomic.StoreInt32(&e.state, int32(StateRunning))

	e.mu.Lock()
	e.stats = TranslationStats{StartedAt: e.clock.Now()}
	e.translatedIndices = make(map[int]struct{})
	e.mu.Unlock()

	cues, format, err := e.subtitleIO.Read(req.InputPath)
	if err != nil {
		atomic.StoreInt32(&e.state, int32(StateFailed))
		return "", fmt.Errorf("engine: read %s: %w", req.InputPath, err)
	}
	if req.Format != "" {
		format = req.Format
	}

	e.mu.Lock()
	e.stats.TotalCues = len(cues)
	e.mu.Unlock()

	glossary := make(postprocess.Glossary)

	var requestCount, cacheHitsRestored, fallbackCount int
	if cp, ok := e.checkpoints.Load(req.InputPath, req.TargetLang, req.ModelID); ok {
		for _, idx := range cp.TranslatedIndices {
			e.translatedIndices[idx] = struct{}{}
		}
		for k, v := range cp.Glossary {
			glossary[k] = v
		}
		requestCount = cp.RequestCount
		cacheHitsRestored = cp.CacheHits
		fallbackCount = cp.FallbackCount
		if opts.OnLog != nil {
			opts.OnLog(fmt.Sprintf("resuming from checkpoint: %d/%d cues already translated", len(e.translatedIndices), len(cues)))
		}
		e.restoreFromCache(cues, req, opts)
	}

	if opts.AutoGlossary && len(glossary) == 0 {
		glossary = seedGlossary(cues)
	}

	localProvider := e.provider != nil && strings.EqualFold(e.provider.Name(), "local")
	sizer := newBatchSizer(opts.Parallelism, localProvider, 64)

	pending := make([]int, 0, len(cues))
	for i := range cues {
		if _, done := e.translatedIndices[i]; done {
			continue
		}
		if strings.TrimSpace(cues[i].Text) == "" {
			e.mu.Lock()
			e.stats.Skipped++
			e.mu.Unlock()
			continue
		}
		pending = append(pending, i)
	}

	for len(pending) > 0 {
		if err := e.waitIfPaused(ctx); err != nil {
			atomic.StoreInt32(&e.state, int32(StateStopped))
			e.saveCheckpoint(req, glossary, requestCount, cacheHitsRestored, fallbackCount)
			return "", err
		}

		n := sizer.Size()
		if n > len(pending) {
			n = len(pending)
		}
		batchIdx := pending[:n]
		pending = pending[n:]

		jobs := make([]cueJob, 0, len(batchIdx))
		for _, idx := range batchIdx {
			jobs = append(jobs, cueJob{
				index:  idx,
				source: cues[idx].Text,
				window: cue.ContextWindow(cues, idx, opts.ContextWindow),
			})
		}

		anyFailure := e.runBatch(ctx, jobs, cues, req.ModelID, opts.Fallbacks, glossary, opts)
		sizer.OnBatchResult(anyFailure)

		e.mu.Lock()
		e.stats.BatchCount++
		requestCount += len(jobs)
		e.mu.Unlock()

		if opts.AutoGlossary {
			for k, v := range postprocessGlossaryUpdates(cues, batchIdx) {
				if _, exists := glossary[k]; !exists {
					glossary[k] = v
				}
			}
		}

		if opts.OnProgress != nil {
			e.mu.Lock()
			done := e.stats.Translated + e.stats.Failed + e.stats.Skipped
			e.mu.Unlock()
			opts.OnProgress(done, len(cues))
		}

		e.saveCheckpoint(req, glossary, requestCount, cacheHitsRestored, fallbackCount)
	}

	outputPath, err := e.writeOutput(req, cues, format, opts)
	if err != nil {
		atomic.StoreInt32(&e.state, int32(StateFailed))
		return "", err
	}

	if opts.QualityGate != nil {
		results := make([]CueResult, len(cues))
		for i, c := range cues {
			results[i] = CueResult{Index: i, Original: c.Text, Translated: c.Text}
		}
		for _, issue := range opts.QualityGate(results) {
			if opts.OnLog != nil {
				opts.OnLog("quality gate: " + issue)
			}
		}
	}

	e.mu.Lock()
	e.stats.FinishedAt = e.clock.Now()
	failed := e.stats.Failed
	e.mu.Unlock()

	_ = checkpoint.SaveGlossary(e.checkpoints.Dir(), req.InputPath, map[string]string(glossary))
	_ = e.checkpoints.Clear(req.InputPath, req.TargetLang, req.ModelID)

	if failed > 0 {
		atomic.StoreInt32(&e.state, int32(StateFailed))
	} else {
		atomic.StoreInt32(&e.state, int32(StateCompleted))
	}
	return outputPath, nil
}

// restoreFromCache re-renders the cues a loaded checkpoint already
// marked translated: the checkpoint itself only records indices, so
// without this step a resumed run would write those cues' original,
// untranslated text back out. A cache miss (e.g. the cache was
// cleared between runs) leaves the cue queued for re-translation
// instead, by evicting it from translatedIndices.
func (e *Engine) restoreFromCache(cues []cue.Cue, req TranslateFileRequest, opts Options) {
	for idx := range e.translatedIndices {
		if idx < 0 || idx >= len(cues) {
			continue
		}
		window := cue.ContextWindow(cues, idx, opts.ContextWindow)
		fp := cue.FingerprintHex(window)
		key := cache.Key{Source: cues[idx].Text, Fingerprint: fp, Model: req.ModelID}
		target, ok := e.cacheStore.Get(key)
		if !ok {
			delete(e.translatedIndices, idx)
			continue
		}
		cues[idx].Text = renderDisplay(opts.DisplayMode, cues[idx].Text, target)
	}
}

func (e *Engine) saveCheckpoint(req TranslateFileRequest, glossary postprocess.Glossary, requestCount, cacheHits, fallbackCount int) {
	e.mu.Lock()
	indices := make([]int, 0, len(e.translatedIndices))
	for idx := range e.translatedIndices {
		indices = append(indices, idx)
	}
	cacheHits += e.stats.CacheHits
	e.mu.Unlock()

	cp := &checkpoint.Checkpoint{
		InputPath:         req.InputPath,
		TargetLang:        req.TargetLang,
		ModelID:           req.ModelID,
		TranslatedIndices: indices,
		Glossary:          map[string]string(glossary),
		RequestCount:      requestCount,
		CacheHits:         cacheHits,
		FallbackCount:     fallbackCount,
	}
	_ = e.checkpoints.Save(cp)
}

// writeOutput computes the destination path per the overwrite policy
// and hands the finished cues to the subtitle writer.
func (e *Engine) writeOutput(req TranslateFileRequest, cues []cue.Cue, format subio.Format, opts Options) (string, error) {
	dir := opts.OutputDir
	if dir == "" {
		dir = filepath.Dir(req.InputPath)
	}
	base := strings.TrimSuffix(filepath.Base(req.InputPath), filepath.Ext(req.InputPath))
	ext := filepath.Ext(req.InputPath)
	candidate := filepath.Join(dir, fmt.Sprintf("%s.%s%s", base, req.TargetLang, ext))

	if _, err := os.Stat(candidate); err == nil {
		switch opts.OverwritePolicy {
		case OverwriteSkip:
			return candidate, nil
		case OverwriteRename:
			candidate = uniquePath(candidate)
		case OverwriteOverwrite:
			// fall through, write in place
		default: // OverwriteAsk with no decider configured: behave like Rename
			candidate = uniquePath(candidate)
		}
	}

	if err := e.subtitleIO.Write(candidate, cues, format); err != nil {
		return "", fmt.Errorf("engine: write %s: %w", candidate, err)
	}
	return candidate, nil
}

func uniquePath(path string) string {
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s (%d)%s", base, i, ext)
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}

// translateCue performs one cue's provider call through the governor
// and retry/fallback machinery. Fallback substitution happens at most
// once: the first retryable failure under the requested model swaps to
// its configured fallback and restarts the attempt budget, but a
// second failure under the fallback model is final.
func (e *Engine) translateCue(ctx context.Context, source string, contextTexts []string, modelID string, fallbacks map[string][]string) (ai.Result, string, error) {
	usedModel := modelID
	fellBack := false
	var result ai.Result

	op := func() error {
		estTokens := ai.EstimateTokens(source)
		for _, t := range contextTexts {
			estTokens += ai.EstimateTokens(t)
		}
		if e.governor != nil {
			if err := e.governor.Admit(ctx, estTokens); err != nil {
				return err
			}
		}

		start := e.clock.Now()
		r, err := e.provider.Translate(ctx, source, contextTexts, usedModel)
		if err != nil {
			if !fellBack {
				if chain := fallbacks[usedModel]; len(chain) > 0 {
					class := retry.Classify(err)
					if class != retry.ClassAuthentication && class != retry.ClassContentFilter {
						usedModel = chain[0]
						fellBack = true
						return retry.ErrNeedsFallback
					}
				}
			}
			return err
		}

		if e.governor != nil {
			e.governor.Record(r.PromptTokens + r.CompletionTokens)
		}
		if e.controller != nil {
			e.controller.Update(e.clock.Now().Sub(start))
		}
		result = r
		return nil
	}

	err := retry.Run(ctx, op)
	if errors.Is(err, retry.ErrNeedsFallback) {
		err = retry.Run(ctx, op)
	}
	return result, usedModel, err
}

// seedGlossary scans every cue's source text with the proper-noun
// scanner and keeps entities the scanner considers high-confidence,
// mirroring the teacher's Volatile Glossary seeding step.
func seedGlossary(cues []cue.Cue) postprocess.Glossary {
	lines := make([]parser.SubtitleLine, len(cues))
	for i, c := range cues {
		lines[i] = parser.SubtitleLine{Text: c.Text}
	}
	entities := ner.NewScanner().ScanLines(lines)
	merged := ner.MergeWithProjectGlossary(entities, nil)
	return postprocess.Glossary(merged)
}

// postprocessGlossaryUpdates re-scans only the cues in a just-finished
// batch so AutoGlossary can pick up new proper nouns introduced mid-run
// without re-scanning the whole file every batch.
func postprocessGlossaryUpdates(cues []cue.Cue, indices []int) map[string]string {
	lines := make([]parser.SubtitleLine, 0, len(indices))
	for _, idx := range indices {
		lines = append(lines, parser.SubtitleLine{Text: cues[idx].Text})
	}
	entities := ner.NewScanner().ScanLines(lines)
	return ner.MergeWithProjectGlossary(entities, nil)
}

// RunQualityGate is a convenience QualityGate built on the teacher's
// linter package, checking final translated text against common
// subtitle-quality issues.
func RunQualityGate(sourceLang, targetLang string, glossary map[string]string) func([]CueResult) []string {
	return func(results []CueResult) []string {
		lines := make([]string, len(results))
		for i, r := range results {
			lines[i] = r.Translated
		}
		report := linter.Check(lines, linter.CheckOptions{SourceLang: sourceLang, TargetLang: targetLang, Glossary: glossary})
		issues := make([]string, 0, len(report.Issues))
		for _, iss := range report.Issues {
			issues = append(issues, fmt.Sprintf("line %d: %s (%s)", iss.LineID, iss.IssueType, iss.Severity))
		}
		return issues
	}
}
