package service

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"searchbot/internal/config"
	"searchbot/internal/domain"
	"searchbot/internal/embedding/openai"
	"searchbot/internal/embedding/wordvec"
	"searchbot/internal/ranking"
	"searchbot/internal/tokenizer"
	"searchbot/internal/vocab"
	"searchbot/internal/websearch"
)

// Open loads the vocabulary and both corpora named by cfg and assembles a
// bot. Any failure is fatal; no partially built bot is returned.
func Open(cfg *config.AppConfig, logger *zap.Logger) (*SearchBot, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	v, err := vocab.Load(cfg.Paths.Vocab, cfg.VocabSize)
	if err != nil {
		logger.Error("vocabulary not loaded", zap.String("path", cfg.Paths.Vocab), zap.Error(err))
		return nil, err
	}
	tok := tokenizer.New()
	strategy := domain.Strategy(cfg.Strategy)
	opts := ranking.Options{K1: cfg.BM25.K1, B: cfg.BM25.B, Logger: logger}
	if strategy == domain.StrategyVector {
		enc, err := newEncoder(cfg.Encoder)
		if err != nil {
			return nil, err
		}
		opts.Encoder = enc
	}

	qa, err := ranking.Load(strategy, cfg.Paths.QuestionAnswer, tok, v, opts)
	if err != nil {
		return nil, fmt.Errorf("question/answer corpus: %w", err)
	}
	cr, err := ranking.Load(strategy, cfg.Paths.ContextResponse, tok, v, opts)
	if err != nil {
		return nil, fmt.Errorf("context/response corpus: %w", err)
	}

	var web domain.WebSearcher
	if cfg.WebSearch.Enabled {
		client, err := websearch.NewClient(websearch.Config{
			URL:        cfg.WebSearch.URL,
			Timeout:    time.Duration(cfg.WebSearch.TimeoutSecs) * time.Second,
			MaxResults: cfg.WebSearch.MaxResults,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrConfiguration, err)
		}
		web = client
	}

	logger.Info("search bot ready",
		zap.String("strategy", cfg.Strategy),
		zap.Int("vocabulary", v.Len()),
		zap.Int("qa_documents", qa.Len()),
		zap.Int("cr_documents", cr.Len()),
		zap.Bool("web_search", web != nil))

	return NewSearchBot(qa, cr, tok, v, Options{
		Strategy:    strategy,
		Thresholds:  cfg.Thresholds,
		HistorySize: cfg.HistorySize,
		Candidates:  cfg.Candidates,
		CacheSize:   cfg.CacheSize,
		Web:         web,
		Logger:      logger,
	})
}

func newEncoder(cfg config.EncoderConfig) (domain.Encoder, error) {
	switch cfg.Type {
	case "wordvec", "":
		return wordvec.Load(cfg.WordVectors)
	case "openai":
		if cfg.OpenAI == nil {
			return nil, fmt.Errorf("%w: openai encoder config missing", domain.ErrConfiguration)
		}
		return openai.NewClient(openai.Config{
			BaseURL:    cfg.OpenAI.BaseURL,
			APIKeyEnv:  cfg.OpenAI.APIKeyEnv,
			Model:      cfg.OpenAI.Model,
			Timeout:    time.Duration(cfg.OpenAI.TimeoutSecs) * time.Second,
			MaxRetries: cfg.OpenAI.MaxRetries,
		})
	default:
		return nil, fmt.Errorf("%w: unknown encoder %q", domain.ErrConfiguration, cfg.Type)
	}
}
