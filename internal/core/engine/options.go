package engine

import "github.com/lsilvatti/transtitle/internal/core/subio"

// DisplayMode controls how a translated cue's text is rendered
// relative to its original, exactly as spec.md §4.7.
type DisplayMode int

const (
	DisplayTranslationOnly DisplayMode = iota
	DisplayTranslationAbove
	DisplayOriginalAbove
	// DisplayBilingual is a literal alias for DisplayOriginalAbove: the
	// two produce identical output, an equivalence the spec documents
	// rather than treats as a bug.
	DisplayBilingual
)

// OverwritePolicy governs what happens when the engine's computed
// output path already exists.
type OverwritePolicy int

const (
	OverwriteAsk OverwritePolicy = iota
	OverwriteOverwrite
	OverwriteRename
	OverwriteSkip
)

// OverwriteDecider is consulted when OverwritePolicy == OverwriteAsk;
// it must return one of OverwriteOverwrite, OverwriteRename, or
// OverwriteSkip.
type OverwriteDecider func(path string) OverwritePolicy

// Options is the engine's configuration surface for one translation
// job, matching spec.md §4.10's enumerated option set plus the
// supplemented, opt-in extensions from SPEC_FULL.md §11.
type Options struct {
	Parallelism         int
	DisplayMode         DisplayMode
	ContextWindow       int
	PreservePunctuation bool
	UseCache            bool
	GlossaryNames       []string
	OverwritePolicy     OverwritePolicy
	OutputDir           string

	// FuzzyThreshold, when > 0, enables a Levenshtein-based near-match
	// cache probe (C1's GetFuzzy) above this similarity score, run after
	// an exact miss. 0 disables it; exact-key behavior is unaffected.
	FuzzyThreshold float64

	// AutoGlossary seeds the glossary from detected proper nouns when
	// no project glossary was supplied, mirroring the teacher's
	// NER-seeded Volatile Glossary pipeline step.
	AutoGlossary bool

	// QualityGate, if set, is run on the fully assembled translated
	// cue sequence after the batch loop completes; it never blocks an
	// individual cue and never mutates C9's pure post-processing.
	QualityGate func(cues []CueResult) []string

	// Fallbacks maps a model id to its fallback chain; translateCue in
	// engine.go substitutes the chain's first entry at most once.
	Fallbacks map[string][]string

	OnLog      func(string)
	OnProgress func(completed, total int)

	// OnTranslated, if set, fires once per cue immediately after it is
	// rendered into cues[idx].Text, cache hits included. Purely an
	// observability hook for callers that want a live feed (e.g. a UI
	// tape view); it never affects scheduling or caching.
	OnTranslated func(CueResult)
}

// CueResult is a finished cue handed to an optional QualityGate.
type CueResult struct {
	Index      int
	Original   string
	Translated string
}

// TranslateFileRequest names one translation job.
type TranslateFileRequest struct {
	InputPath    string
	SourceLang   string
	TargetLang   string
	ProviderKind string
	ModelID      string
	Format       subio.Format
	Options      Options
}

func (o Options) withDefaults() Options {
	if o.Parallelism <= 0 {
		o.Parallelism = 4
	}
	if o.ContextWindow <= 0 {
		o.ContextWindow = 3
	}
	return o
}
