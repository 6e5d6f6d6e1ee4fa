// Package pipeline wraps the translation engine with the
// extract-from-video and mux-back-into-video steps a whole-container
// job needs around it: engine.Engine only ever sees a subtitle file.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lsilvatti/transtitle/internal/core/engine"
	"github.com/lsilvatti/transtitle/internal/core/media"
)

// PipelineConfig describes one extract -> translate -> mux job.
type PipelineConfig struct {
	InputPath      string
	OutputPath     string
	SourceLang     string
	TargetLang     string
	ModelID        string
	ProviderKind   string
	TrackID        int // subtitle track to extract; -1 for auto-detect
	MuxMode        string
	BackupOriginal bool
	Options        engine.Options
}

// Pipeline drives one PipelineConfig through engine.Engine, adding the
// media extraction/mux steps the engine itself doesn't know about.
type Pipeline struct {
	Engine           *engine.Engine
	Config           *PipelineConfig
	LogCallback      func(string)
	ProgressCallback func(current, total int)
}

// New builds a Pipeline around an already-constructed Engine.
func New(eng *engine.Engine, config *PipelineConfig) *Pipeline {
	return &Pipeline{Engine: eng, Config: config}
}

// Execute runs the full job and returns the path of the final muxed
// (or, if MuxMode is empty, the translated-subtitle-only) output.
func (p *Pipeline) Execute(ctx context.Context) (string, error) {
	p.log("Starting translation pipeline...")

	trackID := p.Config.TrackID
	if trackID < 0 {
		p.log("Auto-detecting subtitle track...")
		fileInfo, err := media.Analyze(p.Config.InputPath)
		if err != nil {
			return "", fmt.Errorf("analyze failed: %w", err)
		}
		subTracks := media.GetSubtitleTracks(fileInfo)
		if len(subTracks) == 0 {
			return "", fmt.Errorf("no subtitle tracks found in file")
		}
		trackID = subTracks[0].ID
		p.log(fmt.Sprintf("Using subtitle track %d (%s)", trackID, subTracks[0].Language))
	}

	p.log("Extracting subtitle track...")
	tempSubPath := filepath.Join(os.TempDir(), "transtitle_extract.ass")
	defer os.Remove(tempSubPath)
	if err := media.ExtractSubtitleTrack(p.Config.InputPath, trackID, tempSubPath); err != nil {
		return "", fmt.Errorf("extract failed: %w", err)
	}

	opts := p.Config.Options
	opts.OnLog = p.log
	opts.OnProgress = p.progress

	p.log("Translating subtitle track...")
	translatedPath, err := p.Engine.TranslateFile(ctx, engine.TranslateFileRequest{
		InputPath:    tempSubPath,
		SourceLang:   p.Config.SourceLang,
		TargetLang:   p.Config.TargetLang,
		ProviderKind: p.Config.ProviderKind,
		ModelID:      p.Config.ModelID,
		Options:      opts,
	})
	if err != nil {
		return "", fmt.Errorf("translate failed: %w", err)
	}

	if p.Config.MuxMode == "" {
		return translatedPath, nil
	}
	defer os.Remove(translatedPath)

	p.log("Muxing translated subtitle...")
	outputPath := p.Config.OutputPath
	isReplaceMode := p.Config.MuxMode == "replace" || outputPath == p.Config.InputPath
	var tempOutputPath string

	if isReplaceMode {
		if p.Config.BackupOriginal {
			backupPath := p.Config.InputPath + ".bak"
			p.log(fmt.Sprintf("Creating backup: %s", filepath.Base(backupPath)))
			if err := copyFile(p.Config.InputPath, backupPath); err != nil {
				return "", fmt.Errorf("failed to create backup: %w", err)
			}
		}
		tempOutputPath = filepath.Join(os.TempDir(), "transtitle_mux_temp.mkv")
		outputPath = tempOutputPath
		defer os.Remove(tempOutputPath)
	}

	if err := media.MuxSubtitle(p.Config.InputPath, translatedPath, outputPath); err != nil {
		return "", fmt.Errorf("mux failed: %w", err)
	}

	if isReplaceMode && tempOutputPath != "" {
		p.log("Replacing original file...")
		if err := copyFile(tempOutputPath, p.Config.InputPath); err != nil {
			return "", fmt.Errorf("failed to replace original file: %w", err)
		}
		outputPath = p.Config.InputPath
	}

	p.log("Translation complete!")
	return outputPath, nil
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}

func (p *Pipeline) log(msg string) {
	if p.LogCallback != nil {
		p.LogCallback(msg)
	}
}

func (p *Pipeline) progress(current, total int) {
	if p.ProgressCallback != nil {
		p.ProgressCallback(current, total)
	}
}

// ResumeState is the on-disk marker dashboard's "Smart Resume" prompt
// looks for. It no longer drives translation itself (the engine's own
// checkpoint store does that); it only tells the UI a prior run on
// this file didn't finish, so the operator can be asked whether to
// pick the input back up.
type ResumeState struct {
	FilePath  string
	InputPath string
	Timestamp time.Time
}

// SaveResumeState writes the marker after a job starts.
func SaveResumeState(inputPath string) error {
	state := ResumeState{FilePath: inputPath, InputPath: inputPath, Timestamp: time.Now()}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	tempPath := filepath.Join(filepath.Dir(inputPath), ".transtitle.resume")
	return os.WriteFile(tempPath, data, 0o644)
}

// ClearResumeState removes the marker after a job finishes cleanly.
func ClearResumeState(inputPath string) {
	tempPath := filepath.Join(filepath.Dir(inputPath), ".transtitle.resume")
	os.Remove(tempPath)
}

// LoadResumeState loads the marker if path points at it, or at a
// directory/file whose sibling marker exists.
func LoadResumeState(path string) (*ResumeState, error) {
	tempPath := path
	if !strings.HasSuffix(path, ".transtitle.resume") {
		tempPath = filepath.Join(filepath.Dir(path), ".transtitle.resume")
	}

	data, err := os.ReadFile(tempPath)
	if err != nil {
		return nil, err
	}

	var state ResumeState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return &state, nil
}
