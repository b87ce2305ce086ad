package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	LLM         LLMConfig         `yaml:"llm"`
	Summarizer  SummarizerConfig  `yaml:"summarizer"`
	Reconciler  ReconcilerConfig  `yaml:"reconciler"`
	Paths       PathsConfig       `yaml:"paths"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
	Storage     StorageConfig     `yaml:"storage"`
	NATS        NATSConfig        `yaml:"nats"`
	HTTP        HTTPConfig        `yaml:"http"`
}

type LLMConfig struct {
	Backend     string        `yaml:"backend"`
	BaseURL     string        `yaml:"base_url"`
	Model       string        `yaml:"model"`
	APIKeys     []string      `yaml:"api_keys"`
	Temperature *float32      `yaml:"temperature"`
	Timeout     time.Duration `yaml:"timeout"`
}

type SummarizerConfig struct {
	Mode            string `yaml:"mode"`
	ChunkSize       int    `yaml:"chunk_size"`
	ChunkOverlap    *int   `yaml:"chunk_overlap"`
	GroupBudget     int    `yaml:"group_budget"`
	Tokenizer       string `yaml:"tokenizer"`
	PromptPath      string `yaml:"prompt_path"`
	ContentCategory string `yaml:"content_category"`
	EntityRange     string `yaml:"entity_range"`
	MaxWords        string `yaml:"max_words"`
	Iterations      string `yaml:"iterations"`
	MaxRelationship string `yaml:"max_relationship"`
	Deduplicate     bool   `yaml:"deduplicate"`
}

type ReconcilerConfig struct {
	ToleranceMs  int64 `yaml:"tolerance_ms"`
	RebaseBlocks *bool `yaml:"rebase_blocks"`
}

type PathsConfig struct {
	Input    string `yaml:"input"`
	Output   string `yaml:"output"`
	Archived string `yaml:"archived"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

type StorageConfig struct {
	Path string `yaml:"path"`
}

type NATSConfig struct {
	URL     string `yaml:"url"`
	Token   string `yaml:"token"`
	Subject string `yaml:"subject"`
}

type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Load reads the YAML file at path, applies environment overrides and
// validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// applyEnv lets secrets and deployment endpoints come from the environment.
func (c *Config) applyEnv() {
	if v := os.Getenv("GEMINI_API_KEYS"); v != "" && strings.EqualFold(c.LLM.Backend, "gemini") {
		c.LLM.APIKeys = splitList(v)
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" && !strings.EqualFold(c.LLM.Backend, "gemini") {
		c.LLM.APIKeys = []string{v}
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		c.NATS.URL = v
	}
	if v := os.Getenv("NATS_TOKEN"); v != "" {
		c.NATS.Token = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

func (c *Config) Validate() error {
	if c.Paths.Input == "" {
		return fmt.Errorf("paths.input is required")
	}
	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required")
	}

	c.LLM.Backend = strings.ToLower(c.LLM.Backend)
	switch c.LLM.Backend {
	case "":
		c.LLM.Backend = "openai"
	case "openai", "gemini":
	default:
		return fmt.Errorf("llm.backend %q is not supported", c.LLM.Backend)
	}
	if c.LLM.Backend == "gemini" && len(c.LLM.APIKeys) == 0 {
		return fmt.Errorf("llm.api_keys is required for the gemini backend")
	}

	c.Summarizer.Mode = strings.ToLower(c.Summarizer.Mode)
	switch c.Summarizer.Mode {
	case "":
		c.Summarizer.Mode = "density"
	case "density", "tldr":
	default:
		return fmt.Errorf("summarizer.mode %q is not supported", c.Summarizer.Mode)
	}
	if c.Summarizer.ChunkOverlap != nil && *c.Summarizer.ChunkOverlap < 0 {
		return fmt.Errorf("summarizer.chunk_overlap must not be negative")
	}

	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.LLM.BaseURL == "" && c.LLM.Backend == "openai" {
		c.LLM.BaseURL = "http://localhost:8000/v1"
	}
	if c.LLM.Model == "" {
		if c.LLM.Backend == "gemini" {
			c.LLM.Model = "gemini-2.5-flash"
		} else {
			c.LLM.Model = "capybarahermes-2.5-mistral-7b"
		}
	}
	if c.LLM.Temperature == nil {
		temperature := float32(0.01)
		c.LLM.Temperature = &temperature
	}
	if c.LLM.Timeout == 0 {
		c.LLM.Timeout = 120 * time.Second
	}
	if c.Summarizer.ChunkSize == 0 {
		c.Summarizer.ChunkSize = 2048
	}
	if c.Summarizer.ChunkOverlap == nil {
		overlap := 200
		c.Summarizer.ChunkOverlap = &overlap
	}
	if c.Summarizer.GroupBudget == 0 {
		c.Summarizer.GroupBudget = 1024
	}
	if c.Summarizer.Tokenizer == "" {
		c.Summarizer.Tokenizer = "estimate"
	}
	if c.Summarizer.ContentCategory == "" {
		c.Summarizer.ContentCategory = "Audio Transcript"
	}
	if c.Summarizer.EntityRange == "" {
		c.Summarizer.EntityRange = "1-3"
	}
	if c.Summarizer.MaxWords == "" {
		c.Summarizer.MaxWords = "80"
	}
	if c.Summarizer.Iterations == "" {
		c.Summarizer.Iterations = "2"
	}
	if c.Summarizer.MaxRelationship == "" {
		c.Summarizer.MaxRelationship = "4"
	}
	if c.Reconciler.ToleranceMs == 0 {
		c.Reconciler.ToleranceMs = 100
	}
	if c.Reconciler.RebaseBlocks == nil {
		rebase := true
		c.Reconciler.RebaseBlocks = &rebase
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}
	if c.Storage.Path == "" {
		c.Storage.Path = "data/runs.sqlite"
	}
	if c.NATS.Subject == "" {
		c.NATS.Subject = "transcript.processed"
	}
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 8790
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}

	return nil
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
