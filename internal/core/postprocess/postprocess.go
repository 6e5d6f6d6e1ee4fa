// Package postprocess normalizes a raw model output before it is
// applied to a cue (C9): it suppresses AI-introduced line wrapping on
// single-line inputs, unifies recurring proper nouns through a mutable
// glossary, and optionally strips punctuation.
package postprocess

import (
	"regexp"
	"strings"
)

// cnPunctuation and enPunctuation mirror the original implementation's
// punctuation sets exactly (manager.py's cn_punctuation/en_punctuation
// string literals).
const (
	cnPunctuation = "，。！？；：“”‘’（）【】《》〈〉、…—～·「」『』〔〕"
	enPunctuation = `,.!?;:"'()[]<>-_`
)

var (
	cjkTermPattern  = regexp.MustCompile(`[\x{4e00}-\x{9fff}]{2,6}`)
	whitespaceRuns  = regexp.MustCompile(`\s+`)
	punctuationTrim = buildPunctuationReplacer()
)

func buildPunctuationReplacer() *strings.Replacer {
	pairs := make([]string, 0, 2*(len([]rune(cnPunctuation))+len(enPunctuation)))
	for _, r := range cnPunctuation {
		pairs = append(pairs, string(r), " ")
	}
	for _, r := range enPunctuation {
		pairs = append(pairs, string(r), " ")
	}
	return strings.NewReplacer(pairs...)
}

// Glossary is the mutable proper-noun dictionary threaded across the
// cues of one file: term -> canonical form, first occurrence wins.
type Glossary map[string]string

// Options configures the optional stages of Run.
type Options struct {
	PreservePunctuation bool
}

// CollapseIfSingleLine implements the single-line guard: when
// original contains no newline, every whitespace run (including
// newlines) in translated is collapsed to a single space.
func CollapseIfSingleLine(original, translated string) string {
	if strings.Contains(original, "\n") {
		return translated
	}
	return strings.TrimSpace(whitespaceRuns.ReplaceAllString(translated, " "))
}

// UnifyGlossary scans translated for 2-6 character CJK runs. A run
// already known to glossary is rewritten to its canonical form; an
// unseen run is recorded as its own canonical form, so later cues
// referring to the same term converge on whatever form appeared
// first.
func UnifyGlossary(translated string, glossary Glossary) string {
	candidates := cjkTermPattern.FindAllString(translated, -1)
	for _, term := range candidates {
		if canonical, ok := glossary[term]; ok {
			if canonical != term {
				translated = strings.ReplaceAll(translated, term, canonical)
			}
			continue
		}
		glossary[term] = term
	}
	return translated
}

// StripPunctuation replaces the configured CJK and ASCII punctuation
// sets with spaces and collapses the resulting whitespace runs.
func StripPunctuation(text string) string {
	text = punctuationTrim.Replace(text)
	return strings.TrimSpace(whitespaceRuns.ReplaceAllString(text, " "))
}

// Run applies the full C9 pipeline in order: single-line guard,
// glossary unification, then optional punctuation stripping. It is
// pure with respect to the current raw translation and glossary; it
// never touches the cache or a provider.
func Run(original, raw string, glossary Glossary, opts Options) string {
	out := CollapseIfSingleLine(original, raw)
	out = UnifyGlossary(out, glossary)
	if !opts.PreservePunctuation {
		out = StripPunctuation(out)
	}
	return out
}
