package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"searchbot/internal/domain"
	"searchbot/internal/policy"
)

// PathsConfig locates the data files.
type PathsConfig struct {
	QuestionAnswer  string `yaml:"question_answer"`
	ContextResponse string `yaml:"context_response"`
	Vocab           string `yaml:"vocab"`
}

// BM25Config holds the Okapi BM25 tuning constants. B is a pointer so an
// explicit 0 (no length normalization) survives defaulting.
type BM25Config struct {
	K1 float64  `yaml:"k1"`
	B  *float64 `yaml:"b"`
}

// OpenAIEncoderConfig holds configuration for the OpenAI-compatible encoder.
type OpenAIEncoderConfig struct {
	BaseURL     string `yaml:"base_url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	Model       string `yaml:"model"`
	TimeoutSecs int    `yaml:"timeout_secs"`
	MaxRetries  int    `yaml:"max_retries"`
}

// EncoderConfig selects and configures the dense encoder of the vector strategy.
type EncoderConfig struct {
	Type        string               `yaml:"type"`
	WordVectors string               `yaml:"word_vectors,omitempty"`
	OpenAI      *OpenAIEncoderConfig `yaml:"openai,omitempty"`
}

// WebSearchConfig configures the optional internet answer endpoint.
type WebSearchConfig struct {
	Enabled     bool   `yaml:"enabled"`
	URL         string `yaml:"url"`
	TimeoutSecs int    `yaml:"timeout_secs"`
	MaxResults  int    `yaml:"max_results"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `yaml:"level"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Strategy    string            `yaml:"strategy"`
	Paths       PathsConfig       `yaml:"paths"`
	VocabSize   int               `yaml:"vocab_size"`
	HistorySize int               `yaml:"history_size"`
	Candidates  int               `yaml:"candidates"`
	CacheSize   int               `yaml:"cache_size"`
	Thresholds  policy.Thresholds `yaml:"thresholds"`
	BM25        BM25Config        `yaml:"bm25"`
	Encoder     EncoderConfig     `yaml:"encoder"`
	WebSearch   WebSearchConfig   `yaml:"web_search"`
	Log         LogConfig         `yaml:"log"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	applyConfigDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/searchbot/config.yaml.
// If neither exists, it writes defaults to ~/.config/searchbot/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := Default()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks the settings that cannot be defaulted.
func (c *AppConfig) Validate() error {
	known := false
	for _, s := range domain.Strategies {
		if domain.Strategy(c.Strategy) == s {
			known = true
		}
	}
	if !known {
		return fmt.Errorf("%w: unknown strategy %q", domain.ErrConfiguration, c.Strategy)
	}
	if domain.Strategy(c.Strategy) == domain.StrategyVector {
		switch c.Encoder.Type {
		case "wordvec":
			if c.Encoder.WordVectors == "" {
				return fmt.Errorf("%w: encoder.word_vectors is required", domain.ErrConfiguration)
			}
		case "openai":
			if c.Encoder.OpenAI == nil {
				return fmt.Errorf("%w: encoder.openai section is required", domain.ErrConfiguration)
			}
		default:
			return fmt.Errorf("%w: unknown encoder %q", domain.ErrConfiguration, c.Encoder.Type)
		}
	}
	if c.BM25.B != nil && (*c.BM25.B < 0 || *c.BM25.B > 1) {
		return fmt.Errorf("%w: bm25.b must be within [0,1], got %v", domain.ErrConfiguration, *c.BM25.B)
	}
	if c.WebSearch.Enabled && c.WebSearch.URL == "" {
		return fmt.Errorf("%w: web_search.url is required when enabled", domain.ErrConfiguration)
	}
	return nil
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "searchbot", "config.yaml"), nil
}

// Default returns the built-in configuration.
func Default() *AppConfig {
	cfg := &AppConfig{
		Strategy: string(domain.StrategyBM25),
		Paths: PathsConfig{
			QuestionAnswer:  filepath.Join("data", "question_answer.txt"),
			ContextResponse: filepath.Join("data", "context_response.txt"),
			Vocab:           filepath.Join("data", "vocab.txt"),
		},
		VocabSize:   20000,
		HistorySize: 100,
		Candidates:  10,
		CacheSize:   256,
		Thresholds:  policy.DefaultThresholds(),
		BM25:        BM25Config{K1: 1.5, B: floatPtr(0.75)},
		Encoder:     EncoderConfig{Type: "wordvec"},
		WebSearch:   WebSearchConfig{TimeoutSecs: 5, MaxResults: 3},
		Log:         LogConfig{Level: "info"},
	}
	return cfg
}

func floatPtr(f float64) *float64 { return &f }

func applyConfigDefaults(cfg *AppConfig) {
	def := Default()
	if cfg.Strategy == "" {
		cfg.Strategy = def.Strategy
	}
	if cfg.Paths.QuestionAnswer == "" {
		cfg.Paths.QuestionAnswer = def.Paths.QuestionAnswer
	}
	if cfg.Paths.ContextResponse == "" {
		cfg.Paths.ContextResponse = def.Paths.ContextResponse
	}
	if cfg.Paths.Vocab == "" {
		cfg.Paths.Vocab = def.Paths.Vocab
	}
	if cfg.HistorySize <= 0 {
		cfg.HistorySize = def.HistorySize
	}
	if cfg.Candidates <= 0 {
		cfg.Candidates = def.Candidates
	}
	// negative disables the similarity cache
	if cfg.CacheSize == 0 {
		cfg.CacheSize = def.CacheSize
	}
	if cfg.Thresholds.BM25 == 0 {
		cfg.Thresholds.BM25 = def.Thresholds.BM25
	}
	if cfg.Thresholds.TFIDF == 0 {
		cfg.Thresholds.TFIDF = def.Thresholds.TFIDF
	}
	if cfg.Thresholds.OneHot == 0 {
		cfg.Thresholds.OneHot = def.Thresholds.OneHot
	}
	if cfg.Thresholds.Vector == 0 {
		cfg.Thresholds.Vector = def.Thresholds.Vector
	}
	if cfg.BM25.K1 == 0 {
		cfg.BM25.K1 = def.BM25.K1
	}
	if cfg.BM25.B == nil {
		cfg.BM25.B = def.BM25.B
	}
	if cfg.Encoder.Type == "" {
		cfg.Encoder.Type = def.Encoder.Type
	}
	if cfg.Encoder.Type == "openai" && cfg.Encoder.OpenAI != nil {
		if cfg.Encoder.OpenAI.BaseURL == "" {
			cfg.Encoder.OpenAI.BaseURL = "https://api.openai.com/v1"
		}
		if cfg.Encoder.OpenAI.APIKeyEnv == "" {
			cfg.Encoder.OpenAI.APIKeyEnv = "OPENAI_API_KEY"
		}
		if cfg.Encoder.OpenAI.Model == "" {
			cfg.Encoder.OpenAI.Model = "text-embedding-3-small"
		}
		if cfg.Encoder.OpenAI.TimeoutSecs == 0 {
			cfg.Encoder.OpenAI.TimeoutSecs = 30
		}
		if cfg.Encoder.OpenAI.MaxRetries == 0 {
			cfg.Encoder.OpenAI.MaxRetries = 5
		}
	}
	if cfg.WebSearch.TimeoutSecs == 0 {
		cfg.WebSearch.TimeoutSecs = def.WebSearch.TimeoutSecs
	}
	if cfg.WebSearch.MaxResults == 0 {
		cfg.WebSearch.MaxResults = def.WebSearch.MaxResults
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}
}
