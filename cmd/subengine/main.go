// Command subengine is a thin CLI driver around the translation
// engine: no TUI, just flags in and a translated subtitle (optionally
// muxed back into its source video) out.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lsilvatti/transtitle/internal/config"
	"github.com/lsilvatti/transtitle/internal/core/ai"
	"github.com/lsilvatti/transtitle/internal/core/cache"
	"github.com/lsilvatti/transtitle/internal/core/checkpoint"
	"github.com/lsilvatti/transtitle/internal/core/concurrency"
	"github.com/lsilvatti/transtitle/internal/core/dependencies"
	"github.com/lsilvatti/transtitle/internal/core/engine"
	"github.com/lsilvatti/transtitle/internal/core/governor"
	"github.com/lsilvatti/transtitle/internal/core/pipeline"
	"github.com/lsilvatti/transtitle/internal/core/subio"
	"github.com/lsilvatti/transtitle/internal/core/watcher"
)

func main() {
	input := flag.String("input", "", "subtitle or video file to translate")
	watchDir := flag.String("watch", "", "watch a directory for new .mkv files instead of translating one file")
	fromVideo := flag.Bool("from-video", false, "input is a video container; extract its subtitle track before translating")
	track := flag.Int("track", -1, "subtitle track id to extract (-1 = auto-detect), only with -from-video")
	mux := flag.String("mux", "", "after translating, mux the result back into the source video: \"replace\" or \"new\"")
	sourceLang := flag.String("source-lang", "en", "source language")
	targetLang := flag.String("target-lang", "", "target language")
	parallelism := flag.Int("parallelism", 4, "initial translation concurrency")
	checkDeps := flag.Bool("check-deps", false, "check for ffmpeg/mkvmerge and exit")

	flag.Parse()

	if *checkDeps {
		status, err := dependencies.Check()
		if err != nil {
			log.Fatalf("check dependencies: %v", err)
		}
		for name, found := range status {
			fmt.Printf("  %-10s %v\n", name, found)
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *targetLang != "" {
		cfg.TargetLang = *targetLang
	}
	if cfg.TargetLang == "" {
		log.Fatal("target language required: -target-lang or config.json's target_lang")
	}

	factory := ai.NewFactory(cfg)
	ctx := context.Background()
	provider, err := factory.Create(ctx)
	if err != nil {
		log.Fatalf("create provider: %v", err)
	}

	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = "./data"
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatalf("create data dir: %v", err)
	}
	cacheStore, err := cache.Open(filepath.Join(dataDir, "cache.db"), 2048)
	if err != nil {
		log.Fatalf("open cache: %v", err)
	}
	defer cacheStore.Close()

	limits := cfg.ProviderLimits[cfg.AIProvider]
	gov := governor.New(governor.Limits{
		MaxRequestsPerWindow: limits.MaxRequestsPerWindow,
		MaxTokensPerWindow:   limits.MaxTokensPerWindow,
		Window:               time.Duration(limits.WindowSeconds) * time.Second,
	})

	controller := concurrency.New(*parallelism, 1, 32)
	checkpoints := checkpoint.NewStore(cfg.CheckpointDir)
	eng := engine.New(subio.NewReferenceIO(), cacheStore, provider, gov, controller, checkpoints, nil)

	opts := engine.Options{
		Parallelism:         *parallelism,
		DisplayMode:         engine.DisplayTranslationOnly,
		ContextWindow:       cfg.ContextWindow,
		PreservePunctuation: cfg.PreservePunctuation,
		UseCache:            true,
		AutoGlossary:        true,
		OnLog: func(msg string) {
			log.Println(msg)
		},
		OnProgress: func(completed, total int) {
			fmt.Printf("\r  %d/%d cues translated", completed, total)
			if completed == total {
				fmt.Println()
			}
		},
	}

	if *watchDir != "" {
		runWatch(eng, cfg, opts, *watchDir, *sourceLang, *mux)
		return
	}

	if *input == "" {
		log.Fatal("no input: pass -input or -watch")
	}

	if *fromVideo {
		outPath, err := translateFromVideo(eng, cfg, opts, *input, *sourceLang, *track, *mux)
		if err != nil {
			log.Fatalf("translate: %v", err)
		}
		fmt.Println("wrote", outPath)
		return
	}

	outPath, err := eng.TranslateFile(ctx, engine.TranslateFileRequest{
		InputPath:    *input,
		SourceLang:   *sourceLang,
		TargetLang:   cfg.TargetLang,
		ProviderKind: cfg.AIProvider,
		ModelID:      cfg.Model,
		Options:      opts,
	})
	if err != nil {
		log.Fatalf("translate: %v", err)
	}
	fmt.Println("wrote", outPath)
}

// translateFromVideo routes a container input through pipeline.Pipeline
// so the extract/mux steps around the engine run too.
func translateFromVideo(eng *engine.Engine, cfg *config.Config, opts engine.Options, input, sourceLang string, track int, mux string) (string, error) {
	p := pipeline.New(eng, &pipeline.PipelineConfig{
		InputPath:    input,
		SourceLang:   sourceLang,
		TargetLang:   cfg.TargetLang,
		ModelID:      cfg.Model,
		ProviderKind: cfg.AIProvider,
		TrackID:      track,
		MuxMode:      mux,
		Options:      opts,
	})
	return p.Execute(context.Background())
}

// runWatch drives translateFromVideo once per new .mkv file fsnotify
// reports under dir, until interrupted.
func runWatch(eng *engine.Engine, cfg *config.Config, opts engine.Options, dir, sourceLang, mux string) {
	w, err := watcher.New(dir)
	if err != nil {
		log.Fatalf("watch: %v", err)
	}
	w.OnNewFile = func(path string) {
		if !strings.HasSuffix(strings.ToLower(path), ".mkv") {
			return
		}
		log.Printf("new file: %s", path)
		outPath, err := translateFromVideo(eng, cfg, opts, path, sourceLang, -1, mux)
		if err != nil {
			log.Printf("translate %s: %v", path, err)
			return
		}
		log.Printf("wrote %s", outPath)
	}
	w.OnError = func(err error) {
		log.Printf("watch error: %v", err)
	}
	if err := w.Start(); err != nil {
		log.Fatalf("start watch: %v", err)
	}
	defer w.Stop()

	log.Printf("watching %s for new .mkv files (ctrl-c to stop)", dir)
	select {}
}
