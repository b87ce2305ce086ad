package summarizer

import (
	"github.com/FlorentLa/obsidian-whisper/internal/llm"
	"github.com/FlorentLa/obsidian-whisper/internal/logger"
	"github.com/FlorentLa/obsidian-whisper/pkg/tokenizer"
)

const (
	ModeDensity = "density"
	ModeTLDR    = "tldr"
)

type Options struct {
	Mode         string
	ChunkSize    int
	ChunkOverlap int
	// GroupBudget is the token count above which per-chunk summaries
	// start a new reduction group.
	GroupBudget int
	// DensityPrompt is the chain-of-density template. Empty uses the
	// built-in one.
	DensityPrompt string

	ContentCategory string
	EntityRange     string
	MaxWords        string
	Iterations      string
	MaxRelationship string

	Deduplicate bool
}

// DefaultOptions returns the density settings the built-in prompt is tuned for.
func DefaultOptions() Options {
	return Options{
		Mode:            ModeDensity,
		ChunkSize:       2048,
		ChunkOverlap:    200,
		GroupBudget:     1024,
		ContentCategory: "Audio Transcript",
		EntityRange:     "1-3",
		MaxWords:        "80",
		Iterations:      "2",
		MaxRelationship: "4",
	}
}

type implSummarizer struct {
	gen    llm.Generator
	length tokenizer.LengthFunc
	opts   Options
	logger logger.Logger
}

// New creates a Summarizer that sends every prompt through gen and sizes
// chunks with length. Zero option values take their defaults.
func New(gen llm.Generator, length tokenizer.LengthFunc, opts Options, log logger.Logger) Summarizer {
	def := DefaultOptions()
	if opts.Mode == "" {
		opts.Mode = def.Mode
	}
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = def.ChunkSize
	}
	if opts.ChunkOverlap < 0 {
		opts.ChunkOverlap = def.ChunkOverlap
	}
	if opts.GroupBudget <= 0 {
		opts.GroupBudget = def.GroupBudget
	}
	if opts.DensityPrompt == "" {
		opts.DensityPrompt = DefaultDensityPrompt
	}
	if opts.ContentCategory == "" {
		opts.ContentCategory = def.ContentCategory
	}
	if opts.EntityRange == "" {
		opts.EntityRange = def.EntityRange
	}
	if opts.MaxWords == "" {
		opts.MaxWords = def.MaxWords
	}
	if opts.Iterations == "" {
		opts.Iterations = def.Iterations
	}
	if opts.MaxRelationship == "" {
		opts.MaxRelationship = def.MaxRelationship
	}
	if length == nil {
		length = tokenizer.Estimate
	}

	return &implSummarizer{
		gen:    gen,
		length: length,
		opts:   opts,
		logger: log,
	}
}
