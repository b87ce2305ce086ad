package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"syscall"

	"github.com/FlorentLa/obsidian-whisper/internal/api"
	"github.com/FlorentLa/obsidian-whisper/internal/config"
	"github.com/FlorentLa/obsidian-whisper/internal/llm"
	"github.com/FlorentLa/obsidian-whisper/internal/logger"
	"github.com/FlorentLa/obsidian-whisper/internal/mcptools"
	"github.com/FlorentLa/obsidian-whisper/internal/notify"
	"github.com/FlorentLa/obsidian-whisper/internal/processor"
	"github.com/FlorentLa/obsidian-whisper/internal/reconciler"
	"github.com/FlorentLa/obsidian-whisper/internal/store"
	"github.com/FlorentLa/obsidian-whisper/internal/summarizer"
	"github.com/FlorentLa/obsidian-whisper/internal/watcher"
	"github.com/FlorentLa/obsidian-whisper/pkg/tokenizer"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	serveMCP := flag.Bool("mcp", false, "serve MCP tools over stdio instead of watching the input folder")
	flag.Parse()

	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// stdout carries the MCP protocol in -mcp mode
	var logOut io.Writer = os.Stdout
	if *serveMCP {
		logOut = os.Stderr
	}
	log := logger.NewWithFormat(cfg.Logging.Level, cfg.Logging.Format, logOut)

	rec := reconciler.New(cfg.Reconciler.ToleranceMs, log)
	sum, err := newSummarizer(cfg, log)
	if err != nil {
		log.Error(ctx, "Failed to create summarizer: %v", err)
		os.Exit(1)
	}

	if *serveMCP {
		log.Info(ctx, "Serving MCP tools over stdio (backend: %s, model: %s)", cfg.LLM.Backend, cfg.LLM.Model)
		if err := mcptools.New(rec, sum, log).ServeStdio(); err != nil {
			log.Error(ctx, "MCP server error: %v", err)
			os.Exit(1)
		}
		return
	}

	if err := run(ctx, cfg, log, rec, sum); err != nil {
		log.Error(ctx, "%v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log logger.Logger, rec reconciler.Reconciler, sum summarizer.Summarizer) error {
	log.Info(ctx, "========================================")
	log.Info(ctx, "Transcript Pipeline")
	log.Info(ctx, "========================================")
	log.Info(ctx, "System: %s/%s", runtime.GOOS, runtime.GOARCH)
	log.Info(ctx, "LLM: %s (%s)", cfg.LLM.Model, cfg.LLM.Backend)
	log.Info(ctx, "Summarizer mode: %s", cfg.Summarizer.Mode)
	log.Info(ctx, "Max Concurrent Processing: %d", cfg.Performance.MaxConcurrent)

	// Verify required directories exist
	if err := ensureDirectories(cfg); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}

	runs, err := store.Open(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("open run store: %w", err)
	}
	defer runs.Close()

	pub := notify.Nop()
	if cfg.NATS.URL != "" {
		pub, err = notify.NewNATS(ctx, cfg.NATS.URL, cfg.NATS.Token, cfg.NATS.Subject, log)
		if err != nil {
			return fmt.Errorf("connect NATS: %w", err)
		}
		log.Info(ctx, "Publishing run events on %s", cfg.NATS.Subject)
	}
	defer pub.Close()

	proc := processor.New(cfg, rec, sum, runs, pub, log)

	// Create watcher with processor as handler and concurrency control
	w, err := watcher.New(cfg.Paths.Input, proc.Process, log, cfg.Performance.MaxConcurrent)
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Stop()

	// Create context with cancellation
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// running tracks the watcher and API server so the store and publisher
	// outlive every in-flight run.
	var running sync.WaitGroup
	errChan := make(chan error, 2)
	running.Add(1)
	go func() {
		defer running.Done()
		if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errChan <- fmt.Errorf("watcher: %w", err)
		}
	}()

	if cfg.HTTP.Port > 0 {
		srv := api.NewServer(cfg.HTTP.Port, rec, sum, proc, runs, log)
		running.Add(1)
		go func() {
			defer running.Done()
			if err := srv.Start(ctx); err != nil {
				errChan <- fmt.Errorf("api server: %w", err)
			}
		}()
	}

	log.Info(ctx, "========================================")
	log.Info(ctx, "Transcript Pipeline is ready!")
	log.Info(ctx, "Monitoring: %s", cfg.Paths.Input)
	log.Info(ctx, "Output: %s", cfg.Paths.Output)
	log.Info(ctx, "Press Ctrl+C to stop")
	log.Info(ctx, "========================================")

	// Wait for shutdown signal or error
	var runErr error
	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case runErr = <-errChan:
	}

	// Graceful shutdown
	log.Info(ctx, "Shutting down gracefully...")
	cancel()
	running.Wait()

	log.Info(ctx, "Transcript Pipeline stopped")
	return runErr
}

func newSummarizer(cfg *config.Config, log logger.Logger) (summarizer.Summarizer, error) {
	var completer llm.Completer
	switch cfg.LLM.Backend {
	case "gemini":
		completer = llm.NewGeminiCompleter(cfg.LLM.APIKeys, cfg.LLM.Model, *cfg.LLM.Temperature, log)
	default:
		var apiKey string
		if len(cfg.LLM.APIKeys) > 0 {
			apiKey = cfg.LLM.APIKeys[0]
		}
		completer = llm.NewOpenAICompleter(cfg.LLM.BaseURL, apiKey, cfg.LLM.Model, *cfg.LLM.Temperature, cfg.LLM.Timeout)
	}

	length, err := tokenizer.ByName(cfg.Summarizer.Tokenizer)
	if err != nil {
		return nil, err
	}

	prompt, err := summarizer.LoadPrompt(cfg.Summarizer.PromptPath)
	if err != nil {
		return nil, err
	}

	opts := summarizer.Options{
		Mode:            cfg.Summarizer.Mode,
		ChunkSize:       cfg.Summarizer.ChunkSize,
		ChunkOverlap:    *cfg.Summarizer.ChunkOverlap,
		GroupBudget:     cfg.Summarizer.GroupBudget,
		DensityPrompt:   prompt,
		ContentCategory: cfg.Summarizer.ContentCategory,
		EntityRange:     cfg.Summarizer.EntityRange,
		MaxWords:        cfg.Summarizer.MaxWords,
		Iterations:      cfg.Summarizer.Iterations,
		MaxRelationship: cfg.Summarizer.MaxRelationship,
		Deduplicate:     cfg.Summarizer.Deduplicate,
	}

	return summarizer.New(llm.NewGenerator(completer), length, opts, log), nil
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Input,
		cfg.Paths.Output,
		cfg.Paths.Archived,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
