// Package subio adapts subtitle files on disk to and from the cue
// sequence the translation engine operates on. It wraps the teacher
// repo's SRT/ASS scanner, retimed onto time.Duration, and adds a
// minimal WebVTT reader/writer in the same scanner style.
package subio

import (
	"fmt"
	"strings"
	"sync"

	"github.com/lsilvatti/transtitle/internal/core/cue"
)

// Format names the subtitle container a file was read from, so the
// same format is used to write the translated result back out.
type Format string

const (
	FormatSRT Format = "srt"
	FormatASS Format = "ass"
	FormatVTT Format = "vtt"
)

// SubtitleIO is the collaborator the engine depends on to read and
// write subtitle files. A reference implementation, ReferenceIO,
// dispatches on file extension; callers needing a different layout
// (e.g. sourced from a container track) can implement it directly.
type SubtitleIO interface {
	Read(path string) ([]cue.Cue, Format, error)
	Write(path string, cues []cue.Cue, format Format) error
}

// ReferenceIO is the default SubtitleIO: SRT/ASS via the teacher's
// scanner, VTT via a purpose-built one, all converging on []cue.Cue.
//
// ASS carries per-event styling (layer, margins, effect, style name)
// that []cue.Cue has no field for. ReferenceIO keeps the most recent
// parse of each ASS path around so Write can splice translated text
// back into the original event structure instead of dropping styling.
type ReferenceIO struct {
	mu  sync.Mutex
	ass map[string]*assDocument
}

// NewReferenceIO builds the default SubtitleIO.
func NewReferenceIO() *ReferenceIO {
	return &ReferenceIO{ass: make(map[string]*assDocument)}
}

func (r *ReferenceIO) Read(path string) ([]cue.Cue, Format, error) {
	switch detectFormat(path) {
	case FormatSRT:
		cues, err := readSRT(path)
		return cues, FormatSRT, err
	case FormatVTT:
		cues, err := readVTT(path)
		return cues, FormatVTT, err
	default:
		cues, doc, err := readASS(path)
		if err != nil {
			return nil, FormatASS, err
		}
		r.mu.Lock()
		r.ass[path] = doc
		r.mu.Unlock()
		return cues, FormatASS, nil
	}
}

func (r *ReferenceIO) Write(path string, cues []cue.Cue, format Format) error {
	switch format {
	case FormatSRT:
		return writeSRT(path, cues)
	case FormatVTT:
		return writeVTT(path, cues)
	case FormatASS:
		r.mu.Lock()
		doc := r.ass[path]
		r.mu.Unlock()
		if doc == nil {
			doc = &assDocument{header: defaultASSHeader}
		}
		return writeASS(path, cues, doc)
	default:
		return fmt.Errorf("subio: unknown format %q", format)
	}
}

func detectFormat(path string) Format {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".srt"):
		return FormatSRT
	case strings.HasSuffix(lower, ".vtt"):
		return FormatVTT
	default:
		return FormatASS
	}
}
