package subio

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// parseTimecode parses "HH:MM:SS,mmm" (SRT) or "HH:MM:SS.mmm" (ASS/VTT)
// into a time.Duration.
func parseTimecode(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", ".")
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("subio: malformed timecode %q", s)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("subio: malformed hours in %q: %w", s, err)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("subio: malformed minutes in %q: %w", s, err)
	}
	secParts := strings.SplitN(parts[2], ".", 2)
	seconds, err := strconv.Atoi(secParts[0])
	if err != nil {
		return 0, fmt.Errorf("subio: malformed seconds in %q: %w", s, err)
	}

	millis := 0
	if len(secParts) == 2 {
		frac := secParts[1]
		for len(frac) < 3 {
			frac += "0"
		}
		frac = frac[:3]
		millis, err = strconv.Atoi(frac)
		if err != nil {
			return 0, fmt.Errorf("subio: malformed fraction in %q: %w", s, err)
		}
	}

	d := time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(millis)*time.Millisecond
	return d, nil
}

// formatSRTTimecode renders d as "HH:MM:SS,mmm".
func formatSRTTimecode(d time.Duration) string {
	return formatTimecode(d, ",")
}

// formatVTTTimecode renders d as "HH:MM:SS.mmm".
func formatVTTTimecode(d time.Duration) string {
	return formatTimecode(d, ".")
}

func formatTimecode(d time.Duration, fracSep string) string {
	if d < 0 {
		d = 0
	}
	hours := d / time.Hour
	d -= hours * time.Hour
	minutes := d / time.Minute
	d -= minutes * time.Minute
	seconds := d / time.Second
	d -= seconds * time.Second
	millis := d / time.Millisecond

	return fmt.Sprintf("%02d:%02d:%02d%s%03d", hours, minutes, seconds, fracSep, millis)
}
