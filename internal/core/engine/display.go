package engine

import "strings"

// renderDisplay combines an original cue text and its translation per
// mode. The scheduler never re-wraps text or alters timing; this is
// the only place display mode is interpreted.
func renderDisplay(mode DisplayMode, original, translated string) string {
	switch mode {
	case DisplayTranslationAbove:
		return translated + "\n" + original
	case DisplayOriginalAbove, DisplayBilingual:
		return original + "\n" + translated
	default: // DisplayTranslationOnly
		return translated
	}
}

// stripEmptyLines drops whitespace-only lines from s. renderDisplay
// does not call it.
func stripEmptyLines(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			kept = append(kept, l)
		}
	}
	return strings.Join(kept, "\n")
}
