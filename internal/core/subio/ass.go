package subio

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/lsilvatti/transtitle/internal/core/cue"
)

const defaultASSHeader = "[Script Info]\n[Events]\nFormat: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n"

// assEvent carries the per-dialogue-line metadata []cue.Cue has no
// room for, so a translated file reassembles with its original
// styling intact.
type assEvent struct {
	layer   int
	style   string
	marginL int
	marginR int
	marginV int
	effect  string
}

// assDocument is everything needed to reassemble an ASS file around
// a new set of translated cue texts.
type assDocument struct {
	header string
	events []assEvent
}

// readASS parses an Advanced SubStation Alpha file, adapted from the
// teacher's parseASS: same two-state (header vs. [Events]) scan, but
// emits []cue.Cue with durations instead of raw timecode strings, and
// returns the parsed document separately so Write can splice
// translated text back into the original events.
func readASS(path string) ([]cue.Cue, *assDocument, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("subio: open ass: %w", err)
	}
	defer file.Close()

	doc := &assDocument{}
	var header strings.Builder
	var cues []cue.Cue
	inEvents := false

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()

		if strings.HasPrefix(line, "[Events]") {
			inEvents = true
			header.WriteString(line + "\n")
			continue
		} else if strings.HasPrefix(line, "[") && inEvents {
			inEvents = false
		}

		if !inEvents {
			header.WriteString(line + "\n")
			continue
		}

		if strings.HasPrefix(line, "Format:") {
			header.WriteString(line + "\n")
			continue
		}

		if !strings.HasPrefix(line, "Dialogue:") {
			continue
		}

		dialogue := strings.TrimPrefix(line, "Dialogue:")
		parts := strings.SplitN(dialogue, ",", 10)
		if len(parts) < 10 {
			continue
		}

		start, err := parseTimecode(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, nil, err
		}
		end, err := parseTimecode(strings.TrimSpace(parts[2]))
		if err != nil {
			return nil, nil, err
		}

		ev := assEvent{
			style:   strings.TrimSpace(parts[3]),
			marginL: atoiOr(parts[5], 0),
			marginR: atoiOr(parts[6], 0),
			marginV: atoiOr(parts[7], 0),
			effect:  strings.TrimSpace(parts[8]),
			layer:   atoiOr(parts[0], 0),
		}

		cues = append(cues, cue.Cue{
			Index: len(cues),
			Start: start,
			End:   end,
			Text:  strings.TrimSpace(parts[9]),
		})
		doc.events = append(doc.events, ev)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("subio: read ass: %w", err)
	}

	doc.header = header.String()
	return cues, doc, nil
}

func atoiOr(s string, fallback int) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	return v
}

// writeASS reassembles an ASS file from doc's header/events, applying
// cues' (possibly translated) text in order. If cues is longer than
// doc.events (unexpected split/merge), the surplus cues fall back to
// a blank default event.
func writeASS(path string, cues []cue.Cue, doc *assDocument) error {
	var sb strings.Builder
	sb.WriteString(doc.header)

	for i, c := range cues {
		ev := assEvent{}
		if i < len(doc.events) {
			ev = doc.events[i]
		}
		fmt.Fprintf(&sb, "Dialogue: %d,%s,%s,%s,,%04d,%04d,%04d,%s,%s\n",
			ev.layer,
			formatVTTTimecode(c.Start),
			formatVTTTimecode(c.End),
			ev.style,
			ev.marginL,
			ev.marginR,
			ev.marginV,
			ev.effect,
			c.Text,
		)
	}

	return os.WriteFile(path, []byte(sb.String()), 0o644)
}
