package subio

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/lsilvatti/transtitle/internal/core/cue"
)

var srtTimeRegex = regexp.MustCompile(`(\d{2}:\d{2}:\d{2}[,\.]\d{3})\s*-->\s*(\d{2}:\d{2}:\d{2}[,\.]\d{3})`)

// readSRT scans a SubRip file into cues, adapted from the teacher's
// parseSRT state machine (0=index, 1=timing, 2=text).
func readSRT(path string) ([]cue.Cue, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("subio: open srt: %w", err)
	}
	defer file.Close()

	var cues []cue.Cue
	var current cue.Cue
	var text strings.Builder
	state := 0

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		switch state {
		case 0:
			if line == "" {
				continue
			}
			if _, err := strconv.Atoi(line); err == nil {
				current = cue.Cue{Index: len(cues)}
				state = 1
			}

		case 1:
			if matches := srtTimeRegex.FindStringSubmatch(line); len(matches) >= 3 {
				start, err := parseTimecode(matches[1])
				if err != nil {
					return nil, err
				}
				end, err := parseTimecode(matches[2])
				if err != nil {
					return nil, err
				}
				current.Start = start
				current.End = end
				text.Reset()
				state = 2
			}

		case 2:
			if line == "" {
				current.Text = strings.TrimSpace(text.String())
				if current.Text != "" {
					cues = append(cues, current)
				}
				state = 0
			} else {
				if text.Len() > 0 {
					text.WriteString("\n")
				}
				text.WriteString(line)
			}
		}
	}
	if state == 2 && text.Len() > 0 {
		current.Text = strings.TrimSpace(text.String())
		cues = append(cues, current)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("subio: read srt: %w", err)
	}

	for i := range cues {
		cues[i].Index = i
	}
	return cues, nil
}

// writeSRT renders cues back out in SubRip form with sequential
// 1-based indices, independent of the Index field on each cue.
func writeSRT(path string, cues []cue.Cue) error {
	var sb strings.Builder
	for i, c := range cues {
		fmt.Fprintf(&sb, "%d\n", i+1)
		fmt.Fprintf(&sb, "%s --> %s\n", formatSRTTimecode(c.Start), formatSRTTimecode(c.End))
		sb.WriteString(c.Text)
		sb.WriteString("\n\n")
	}
	return os.WriteFile(path, []byte(sb.String()), 0o644)
}
