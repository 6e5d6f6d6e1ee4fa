package pipeline

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveLoadClearResumeState(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "episode01.mkv")

	if err := SaveResumeState(inputPath); err != nil {
		t.Fatalf("SaveResumeState failed: %v", err)
	}

	state, err := LoadResumeState(inputPath)
	if err != nil {
		t.Fatalf("LoadResumeState failed: %v", err)
	}
	if state.InputPath != inputPath {
		t.Errorf("InputPath = %q, want %q", state.InputPath, inputPath)
	}

	ClearResumeState(inputPath)
	if _, err := LoadResumeState(inputPath); err == nil {
		t.Error("expected LoadResumeState to fail after ClearResumeState")
	}
}

func TestLoadResumeStateFromMarkerPath(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "episode02.mkv")
	if err := SaveResumeState(inputPath); err != nil {
		t.Fatalf("SaveResumeState failed: %v", err)
	}

	markerPath := filepath.Join(dir, ".transtitle.resume")
	state, err := LoadResumeState(markerPath)
	if err != nil {
		t.Fatalf("LoadResumeState(markerPath) failed: %v", err)
	}
	if state.InputPath != inputPath {
		t.Errorf("InputPath = %q, want %q", state.InputPath, inputPath)
	}
}

func TestLoadResumeStateMissing(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadResumeState(filepath.Join(dir, "nothing.mkv")); err == nil {
		t.Error("expected error for missing resume marker")
	}
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")

	want := []byte("subtitle payload")
	if err := os.WriteFile(src, want, 0o644); err != nil {
		t.Fatalf("write src: %v", err)
	}

	if err := copyFile(src, dst); err != nil {
		t.Fatalf("copyFile failed: %v", err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read dst: %v", err)
	}
	if string(got) != string(want) {
		t.Errorf("copied content = %q, want %q", got, want)
	}
}

func TestNewBindsEngineAndConfig(t *testing.T) {
	config := &PipelineConfig{InputPath: "in.mkv", TargetLang: "es"}
	p := New(nil, config)
	if p.Config != config {
		t.Error("New did not bind the config it was given")
	}
}
