package review

import (
	"testing"
)

// TestClosedMsgStruct tests ClosedMsg structure
func TestClosedMsgStruct(t *testing.T) {
	msg := ClosedMsg{}

	// Default struct should exist
	_ = msg
}

// TestModelStruct tests Model structure fields
func TestModelStruct(t *testing.T) {
	model := Model{
		currentIndex: 0,
		filePath:     "/test/output.srt",
		saved:        false,
		width:        120,
		height:       40,
	}

	if model.currentIndex != 0 {
		t.Errorf("currentIndex = %d, want 0", model.currentIndex)
	}

	if model.filePath != "/test/output.srt" {
		t.Errorf("filePath = %q, want /test/output.srt", model.filePath)
	}

	if model.saved {
		t.Error("saved should be false")
	}

	if model.width != 120 {
		t.Errorf("width = %d, want 120", model.width)
	}

	if model.height != 40 {
		t.Errorf("height = %d, want 40", model.height)
	}
}

// TestNewWithNonExistentFile tests New with non-existent files
func TestNewWithNonExistentFile(t *testing.T) {
	_, err := New("/nonexistent/original.srt", "/nonexistent/translated.srt")

	if err == nil {
		t.Error("expected error for non-existent files")
	}
}

// TestNewWithEmptyPath tests New with empty paths
func TestNewWithEmptyPath(t *testing.T) {
	_, err := New("", "")

	if err == nil {
		t.Error("expected error for empty paths")
	}
}

// TestModelDimensions tests model dimension handling
func TestModelDimensions(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
	}{
		{"small terminal", 80, 24},
		{"medium terminal", 120, 40},
		{"large terminal", 200, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := Model{
				width:  tt.width,
				height: tt.height,
			}

			if model.width != tt.width {
				t.Errorf("width = %d, want %d", model.width, tt.width)
			}

			if model.height != tt.height {
				t.Errorf("height = %d, want %d", model.height, tt.height)
			}
		})
	}
}

// TestCurrentIndex tests currentIndex field
func TestCurrentIndex(t *testing.T) {
	tests := []struct {
		name  string
		index int
	}{
		{"first line", 0},
		{"middle line", 50},
		{"last line", 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := Model{
				currentIndex: tt.index,
			}

			if model.currentIndex != tt.index {
				t.Errorf("currentIndex = %d, want %d", model.currentIndex, tt.index)
			}
		})
	}
}

// TestSavedState tests saved state handling
func TestSavedState(t *testing.T) {
	model := Model{saved: false}

	if model.saved {
		t.Error("saved should initially be false")
	}

	model.saved = true

	if !model.saved {
		t.Error("saved should be true after saving")
	}
}

// TestFilePath tests file path handling
func TestFilePath(t *testing.T) {
	paths := []string{
		"/home/user/output.srt",
		"/tmp/translation.ass",
		"./relative/path.srt",
	}

	for _, path := range paths {
		model := Model{filePath: path}

		if model.filePath != path {
			t.Errorf("filePath = %q, want %q", model.filePath, path)
		}
	}
}

// TestModelZeroValue tests zero value model
func TestModelZeroValue(t *testing.T) {
	var model Model

	if model.currentIndex != 0 {
		t.Error("currentIndex should be 0 for zero value")
	}

	if model.saved {
		t.Error("saved should be false for zero value")
	}

	if model.width != 0 {
		t.Error("width should be 0 for zero value")
	}

	if model.height != 0 {
		t.Error("height should be 0 for zero value")
	}
}
