package engine

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/lsilvatti/transtitle/internal/core/cache"
	"github.com/lsilvatti/transtitle/internal/core/cue"
	"github.com/lsilvatti/transtitle/internal/core/postprocess"
)

// batchSizer implements the adaptive batch size: grows by 1.5x after
// an all-success batch, shrinks by 0.5x after any failure, floored at
// 1 and capped at maxBatch. The seed is min(parallelism, 20) for a
// local provider or min(parallelism, 5) for a cloud one, reflecting
// how much more slack a local backend tolerates.
type batchSizer struct {
	size     int
	maxBatch int
}

func newBatchSizer(parallelism int, localProvider bool, maxBatch int) *batchSizer {
	seed := parallelism
	ceiling := 5
	if localProvider {
		ceiling = 20
	}
	if seed > ceiling {
		seed = ceiling
	}
	if seed < 1 {
		seed = 1
	}
	if maxBatch < seed {
		maxBatch = seed
	}
	return &batchSizer{size: seed, maxBatch: maxBatch}
}

func (b *batchSizer) Size() int { return b.size }

func (b *batchSizer) OnBatchResult(anyFailure bool) {
	if anyFailure {
		b.size = b.size / 2
		if b.size < 1 {
			b.size = 1
		}
		return
	}
	grown := int(float64(b.size) * 1.5)
	if grown <= b.size {
		grown = b.size + 1
	}
	if grown > b.maxBatch {
		grown = b.maxBatch
	}
	b.size = grown
}

// cueJob is everything one batch-worker goroutine needs to translate
// and apply a single cue.
type cueJob struct {
	index  int
	source string
	window []string
}

// runBatch dispatches one goroutine per pending cue via errgroup, each
// doing: cache probe -> (on miss) provider translate through the
// concurrency controller, with retry/fallback -> post-process ->
// display render -> cache write. It mutates cues and e.stats in place,
// and reports whether any cue in this batch failed, which drives the
// adaptive batch size.
func (e *Engine) runBatch(ctx context.Context, jobs []cueJob, cues []cue.Cue, modelID string, fallbacks map[string][]string, glossary postprocess.Glossary, opts Options) bool {
	var resultMu sync.Mutex
	anyFailure := false

	g, gctx := errgroup.WithContext(ctx)
	for _, j := range jobs {
		j := j
		g.Go(func() error {
			if err := e.controller.Acquire(gctx); err != nil {
				return nil
			}
			defer e.controller.Release()

			fp := cue.FingerprintHex(j.window)
			key := cache.Key{Source: j.source, Fingerprint: fp, Model: modelID}

			if opts.UseCache {
				if target, ok := e.cacheStore.Get(key); ok {
					e.applyTranslated(cues, j.index, target, opts, true)
					return nil
				}
				if opts.FuzzyThreshold > 0 {
					if entry, ok := e.cacheStore.GetFuzzy(key, opts.FuzzyThreshold); ok {
						e.applyTranslated(cues, j.index, entry.Target, opts, true)
						return nil
					}
				}
			}

			result, usedModel, err := e.translateCue(gctx, j.source, j.window, modelID, fallbacks)
			if err != nil {
				resultMu.Lock()
				anyFailure = true
				resultMu.Unlock()
				e.mu.Lock()
				e.stats.Failed++
				e.mu.Unlock()
				if opts.OnLog != nil {
					opts.OnLog("cue " + strconv.Itoa(j.index) + " failed: " + err.Error())
				}
				return nil
			}

			raw := postprocess.Run(j.source, result.Text, glossary, postprocess.Options{PreservePunctuation: opts.PreservePunctuation})

			if opts.UseCache {
				putKey := cache.Key{Source: j.source, Fingerprint: fp, Model: usedModel}
				_ = e.cacheStore.Put(putKey, raw)
			}
			e.applyTranslated(cues, j.index, raw, opts, false)
			return nil
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		anyFailure = true
	}
	return anyFailure
}

// applyTranslated renders cues[idx].Text per display mode, marks the
// index translated, and bumps the relevant counters.
func (e *Engine) applyTranslated(cues []cue.Cue, idx int, translated string, opts Options, fromCache bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	original := cues[idx].Text
	cues[idx].Text = renderDisplay(opts.DisplayMode, original, translated)

	e.translatedIndices[idx] = struct{}{}
	e.stats.Translated++
	e.stats.TotalChars += len(translated)
	if fromCache {
		e.stats.CacheHits++
	}

	if opts.OnTranslated != nil {
		opts.OnTranslated(CueResult{Index: idx, Original: original, Translated: translated})
	}
}
