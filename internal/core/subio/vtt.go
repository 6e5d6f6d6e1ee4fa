package subio

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/lsilvatti/transtitle/internal/core/cue"
)

var vttTimeRegex = regexp.MustCompile(`(\d{2,}:\d{2}:\d{2}[,\.]\d{3})\s*-->\s*(\d{2,}:\d{2}:\d{2}[,\.]\d{3})`)

// readVTT scans a WebVTT file into cues, in the same state-machine
// style as readSRT: a cue block is an optional identifier line, a
// timing line, then one or more text lines up to a blank line.
// "WEBVTT" and NOTE blocks are skipped.
func readVTT(path string) ([]cue.Cue, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("subio: open vtt: %w", err)
	}
	defer file.Close()

	var cues []cue.Cue
	var current cue.Cue
	var text strings.Builder
	inCue := false

	scanner := bufio.NewScanner(file)
	first := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if first {
			first = false
			if strings.HasPrefix(line, "WEBVTT") {
				continue
			}
		}

		if line == "" {
			if inCue {
				current.Text = strings.TrimSpace(text.String())
				if current.Text != "" {
					cues = append(cues, current)
				}
				inCue = false
			}
			continue
		}

		if strings.HasPrefix(line, "NOTE") {
			inCue = false
			continue
		}

		if matches := vttTimeRegex.FindStringSubmatch(line); len(matches) >= 3 {
			start, err := parseTimecode(matches[1])
			if err != nil {
				return nil, err
			}
			end, err := parseTimecode(matches[2])
			if err != nil {
				return nil, err
			}
			current = cue.Cue{Index: len(cues), Start: start, End: end}
			text.Reset()
			inCue = true
			continue
		}

		if inCue {
			if text.Len() > 0 {
				text.WriteString("\n")
			}
			text.WriteString(line)
		}
		// Lines outside a recognized cue block (e.g. a cue identifier)
		// are otherwise ignored.
	}
	if inCue && text.Len() > 0 {
		current.Text = strings.TrimSpace(text.String())
		cues = append(cues, current)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("subio: read vtt: %w", err)
	}

	return cues, nil
}

// writeVTT renders cues as a WebVTT file.
func writeVTT(path string, cues []cue.Cue) error {
	var sb strings.Builder
	sb.WriteString("WEBVTT\n\n")
	for _, c := range cues {
		fmt.Fprintf(&sb, "%s --> %s\n", formatVTTTimecode(c.Start), formatVTTTimecode(c.End))
		sb.WriteString(c.Text)
		sb.WriteString("\n\n")
	}
	return os.WriteFile(path, []byte(sb.String()), 0o644)
}
