package subio

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lsilvatti/transtitle/internal/core/cue"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestReadSRT(t *testing.T) {
	content := "1\n00:00:01,000 --> 00:00:04,500\nHello there.\n\n2\n00:00:05,000 --> 00:00:06,000\nLine one\nLine two\n\n"
	path := writeTemp(t, "in.srt", content)

	cues, format, err := NewReferenceIO().Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if format != FormatSRT {
		t.Errorf("format = %q, want srt", format)
	}
	if len(cues) != 2 {
		t.Fatalf("got %d cues, want 2", len(cues))
	}
	if cues[0].Text != "Hello there." {
		t.Errorf("cues[0].Text = %q", cues[0].Text)
	}
	if cues[0].Start != time.Second {
		t.Errorf("cues[0].Start = %v, want 1s", cues[0].Start)
	}
	if cues[1].Text != "Line one\nLine two" {
		t.Errorf("cues[1].Text = %q", cues[1].Text)
	}
}

func TestWriteSRTRoundTrip(t *testing.T) {
	io := NewReferenceIO()
	cues := []cue.Cue{
		{Index: 0, Start: time.Second, End: 3 * time.Second, Text: "hola"},
		{Index: 1, Start: 4 * time.Second, End: 6 * time.Second, Text: "mundo"},
	}
	path := filepath.Join(t.TempDir(), "out.srt")
	if err := io.Write(path, cues, FormatSRT); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got, format, err := io.Read(path)
	if err != nil {
		t.Fatalf("reread failed: %v", err)
	}
	if format != FormatSRT || len(got) != 2 || got[0].Text != "hola" || got[1].Text != "mundo" {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestReadVTT(t *testing.T) {
	content := "WEBVTT\n\n00:00:01.000 --> 00:00:02.000\nHi.\n\n00:00:03.000 --> 00:00:04.000\nBye.\n\n"
	path := writeTemp(t, "in.vtt", content)

	cues, format, err := NewReferenceIO().Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if format != FormatVTT {
		t.Errorf("format = %q, want vtt", format)
	}
	if len(cues) != 2 || cues[0].Text != "Hi." || cues[1].Text != "Bye." {
		t.Fatalf("unexpected cues: %+v", cues)
	}
}

func TestWriteVTTRoundTrip(t *testing.T) {
	io := NewReferenceIO()
	cues := []cue.Cue{{Index: 0, Start: time.Second, End: 2 * time.Second, Text: "salut"}}
	path := filepath.Join(t.TempDir(), "out.vtt")
	if err := io.Write(path, cues, FormatVTT); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got, _, err := io.Read(path)
	if err != nil {
		t.Fatalf("reread failed: %v", err)
	}
	if len(got) != 1 || got[0].Text != "salut" {
		t.Fatalf("unexpected round trip: %+v", got)
	}
}

func TestReadASSPreservesStylingOnWrite(t *testing.T) {
	content := "[Script Info]\nTitle: demo\n\n[Events]\n" +
		"Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n" +
		"Dialogue: 0,0:00:01.00,0:00:03.00,Default,,0000,0000,0000,,Hello world\n"
	path := writeTemp(t, "in.ass", content)

	io := NewReferenceIO()
	cues, format, err := io.Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if format != FormatASS || len(cues) != 1 {
		t.Fatalf("unexpected read result: %v %+v", format, cues)
	}

	cues[0].Text = "Hola mundo"
	outPath := filepath.Join(t.TempDir(), "out.ass")
	if err := io.Write(outPath, cues, FormatASS); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	reread, _, err := io.Read(outPath)
	if err != nil {
		t.Fatalf("reread failed: %v", err)
	}
	if len(reread) != 1 || reread[0].Text != "Hola mundo" {
		t.Fatalf("expected translated text preserved, got %+v", reread)
	}
}

func TestParseAndFormatTimecodeRoundTrip(t *testing.T) {
	d, err := parseTimecode("00:01:02,345")
	if err != nil {
		t.Fatalf("parseTimecode failed: %v", err)
	}
	if formatSRTTimecode(d) != "00:01:02,345" {
		t.Errorf("got %q", formatSRTTimecode(d))
	}
}
