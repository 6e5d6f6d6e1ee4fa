package execution

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lsilvatti/transtitle/internal/config"
	"github.com/lsilvatti/transtitle/internal/core/ai"
	"github.com/lsilvatti/transtitle/internal/core/cache"
	"github.com/lsilvatti/transtitle/internal/core/checkpoint"
	"github.com/lsilvatti/transtitle/internal/core/concurrency"
	"github.com/lsilvatti/transtitle/internal/core/engine"
	"github.com/lsilvatti/transtitle/internal/core/governor"
	"github.com/lsilvatti/transtitle/internal/core/pipeline"
)

// AnalyzedFile is the subset of a setup-wizard-analyzed file the
// execution screen needs to run the job.
type AnalyzedFile struct {
	Path            string
	Filename        string
	SelectedTrackID int
}

// JobConfig carries everything the setup flow collected, across to
// the screen that actually runs it.
type JobConfig struct {
	InputPath string
	Files     []AnalyzedFile
	BatchMode bool

	SourceLang      string
	TargetLang      string
	ExtractFonts    bool
	AutoDetectTrack bool

	MediaType     string
	AIModel       string
	Temperature   float64
	GlossaryPath  string
	GlossaryTerms map[string]string
	RemoveHITags  bool

	MuxMode        string
	SetDefault     bool
	BackupOriginal bool
}

// CompletedMsg is sent once every file in the job has run (or the job
// failed outright), so the parent screen can return to the dashboard.
type CompletedMsg struct {
	Err error
}

// runJobCmd builds the translation engine from cfg and jobConfig and
// drives every file in the job, reporting progress back over ch as
// LogMsg/ProgressMsg/StatsMsg/TranslationMsg/StatusMsg, finishing with
// a CompletedMsg. It is meant to be launched once from Init.
func runJobCmd(cfg *config.Config, jobConfig JobConfig, ch chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		go runJob(cfg, jobConfig, ch)
		return <-ch
	}
}

func listenCmd(ch chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}

func runJob(cfg *config.Config, jobConfig JobConfig, ch chan tea.Msg) {
	send := func(msg tea.Msg) { ch <- msg }

	factory := ai.NewFactory(cfg)
	provider, err := factory.Create(context.Background())
	if err != nil {
		send(LogMsg{Level: LogError, Message: "provider setup failed: " + err.Error()})
		send(StatusMsg{Status: StatusFailed})
		send(CompletedMsg{Err: err})
		return
	}

	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = "./data"
	}
	cacheStore, err := cache.Open(filepath.Join(dataDir, "cache.db"), 2048)
	if err != nil {
		send(LogMsg{Level: LogError, Message: "cache setup failed: " + err.Error()})
		send(StatusMsg{Status: StatusFailed})
		send(CompletedMsg{Err: err})
		return
	}

	limits := cfg.ProviderLimits[cfg.AIProvider]
	gov := governor.New(governor.Limits{
		MaxRequestsPerWindow: limits.MaxRequestsPerWindow,
		MaxTokensPerWindow:   limits.MaxTokensPerWindow,
		Window:               time.Duration(limits.WindowSeconds) * time.Second,
	})

	controller := concurrency.New(4, 1, 16)
	checkpoints := checkpoint.NewStore(cfg.CheckpointDir)

	eng := engine.New(nil, cacheStore, provider, gov, controller, checkpoints, nil)

	files := jobConfig.Files
	if len(files) == 0 {
		files = []AnalyzedFile{{Path: jobConfig.InputPath, Filename: filepath.Base(jobConfig.InputPath), SelectedTrackID: -1}}
	}

	var lastErr error
	for i, f := range files {
		send(ProgressMsg{FileProgress: 0, BatchProgress: float64(i) / float64(len(files)) * 100, CurrentFile: f.Filename})
		send(LogMsg{Level: LogInfo, Message: fmt.Sprintf("starting %s", f.Filename)})

		trackID := f.SelectedTrackID
		if jobConfig.AutoDetectTrack {
			trackID = -1
		}

		p := pipeline.New(eng, &pipeline.PipelineConfig{
			InputPath:      f.Path,
			SourceLang:     jobConfig.SourceLang,
			TargetLang:     jobConfig.TargetLang,
			ModelID:        jobConfig.AIModel,
			ProviderKind:   cfg.AIProvider,
			TrackID:        trackID,
			MuxMode:        jobConfig.MuxMode,
			BackupOriginal: jobConfig.BackupOriginal,
			Options: engine.Options{
				Parallelism:         4,
				DisplayMode:         engine.DisplayTranslationOnly,
				ContextWindow:       cfg.ContextWindow,
				PreservePunctuation: cfg.PreservePunctuation,
				UseCache:            true,
				AutoGlossary:        true,
				Fallbacks:           map[string][]string{},
				OnLog: func(msg string) {
					send(LogMsg{Level: LogInfo, Message: msg})
				},
				OnProgress: func(completed, total int) {
					pct := 0.0
					if total > 0 {
						pct = float64(completed) / float64(total) * 100
					}
					send(ProgressMsg{FileProgress: pct, BatchProgress: float64(i) / float64(len(files)) * 100, CurrentFile: f.Filename})
					send(StatsMsg{LinesProcessed: completed})
				},
				OnTranslated: func(r engine.CueResult) {
					send(TranslationMsg{ID: r.Index, OriginalText: r.Original, Translated: r.Translated})
				},
			},
		})

		if _, err := p.Execute(context.Background()); err != nil {
			lastErr = err
			send(LogMsg{Level: LogError, Message: fmt.Sprintf("%s failed: %v", f.Filename, err)})
			send(StatusMsg{Status: StatusFailed})
			continue
		}
		send(LogMsg{Level: LogSuccess, Message: fmt.Sprintf("%s complete", f.Filename)})
	}

	if lastErr != nil {
		send(CompletedMsg{Err: lastErr})
		return
	}
	send(StatusMsg{Status: StatusComplete})
	send(CompletedMsg{})
}
