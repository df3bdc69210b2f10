package service

import (
	"context"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru"
	"go.uber.org/zap"

	"searchbot/internal/domain"
	"searchbot/internal/history"
	"searchbot/internal/policy"
	"searchbot/internal/ranking"
	"searchbot/internal/vocab"
)

// Source tells where a response came from.
type Source string

const (
	SourceLocal    Source = "local"
	SourceFallback Source = "fallback"
	SourceWeb      Source = "web"
)

// Response is the answer to one query.
type Response struct {
	Text   string  `json:"response"`
	Score  float64 `json:"score"`
	Source Source  `json:"source"`
}

// Candidate is a ranked corpus entry that survived filtering.
type Candidate struct {
	Index  int
	Doc    []string
	Answer string
	Score  float64
}

// Options configures a SearchBot. Zero values select defaults.
type Options struct {
	Strategy    domain.Strategy
	Thresholds  policy.Thresholds
	HistorySize int
	// Candidates is the number of ranked entries considered per query.
	Candidates int
	// CacheSize bounds the similarity cache; non-positive disables it.
	CacheSize int
	Web       domain.WebSearcher
	Logger    *zap.Logger
}

// SearchBot answers queries from a question/answer ranker and a
// context/response ranker built with the same strategy and vocabulary.
type SearchBot struct {
	strategy   domain.Strategy
	tokenizer  domain.Tokenizer
	vocab      *vocab.Vocabulary
	qa         domain.Ranker
	cr         domain.Ranker
	policy     *policy.Policy
	web        domain.WebSearcher
	history    *history.Ring
	candidates int
	cache      *lru.Cache
	logger     *zap.Logger
}

// NewSearchBot wires already built rankers into a bot.
func NewSearchBot(qa, cr domain.Ranker, tok domain.Tokenizer, v *vocab.Vocabulary, opts Options) (*SearchBot, error) {
	if qa == nil || cr == nil || tok == nil || v == nil {
		return nil, fmt.Errorf("%w: rankers, tokenizer and vocabulary are required", domain.ErrConfiguration)
	}
	if opts.Strategy == "" {
		opts.Strategy = domain.StrategyBM25
	}
	if opts.Thresholds == (policy.Thresholds{}) {
		opts.Thresholds = policy.DefaultThresholds()
	}
	if opts.Candidates <= 0 {
		opts.Candidates = ranking.DefaultSize
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	b := &SearchBot{
		strategy:   opts.Strategy,
		tokenizer:  tok,
		vocab:      v,
		qa:         qa,
		cr:         cr,
		policy:     policy.New(opts.Strategy, opts.Thresholds),
		web:        opts.Web,
		history:    history.New(opts.HistorySize),
		candidates: opts.Candidates,
		logger:     logger,
	}
	if opts.CacheSize > 0 {
		cache, err := lru.New(opts.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("similarity cache: %w", err)
		}
		b.cache = cache
	}
	return b, nil
}

// Strategy returns the ranking strategy in use.
func (b *SearchBot) Strategy() domain.Strategy { return b.strategy }

// History returns the recent queries and responses, oldest first.
func (b *SearchBot) History() []string { return b.history.Snapshot() }

// Answer returns the best response for query. It never fails: when no
// candidate is acceptable the fixed fallback response is returned.
func (b *SearchBot) Answer(ctx context.Context, query string, mode domain.Mode, filter domain.Filter) Response {
	b.history.Append(query)

	if b.web != nil {
		answers, err := b.web.Search(ctx, query)
		switch {
		case err != nil:
			b.logger.Warn("web search failed, using local corpus", zap.Error(err))
		case len(answers) > 0:
			return b.respond(Response{Text: answers[0], Score: policy.SentinelScore, Source: SourceWeb})
		}
	}

	tokens := b.vocab.Filter(b.tokenizer.Tokenize(query, true))
	b.logger.Debug("search query",
		zap.String("init_query", query),
		zap.String("filter_query", strings.Join(tokens, "")))

	cands := b.Candidates(tokens, mode, filter)
	if len(cands) == 0 {
		b.logger.Debug("no candidate left", zap.String("mode", string(mode)))
		return b.fallback()
	}
	top := cands[0]
	b.logger.Debug("search candidate",
		zap.String("search_model", string(b.strategy)),
		zap.String("mode", string(mode)),
		zap.String("sim_doc", strings.Join(top.Doc, "")),
		zap.Float64("score", top.Score),
		zap.Float64("threshold", b.policy.Threshold()))
	if !b.policy.Accept(top.Score) {
		return b.fallback()
	}
	return b.respond(Response{Text: top.Answer, Score: top.Score, Source: SourceLocal})
}

// Candidates ranks in-vocabulary tokens against the corpus for mode and
// drops entries whose answer matches filter, preserving rank order.
func (b *SearchBot) Candidates(tokens []string, mode domain.Mode, filter domain.Filter) []Candidate {
	r := b.ranker(mode)
	items := b.similarity(r, mode, tokens)
	docs, answers := r.Docs(items)
	out := make([]Candidate, 0, len(items))
	for i, it := range items {
		if filter != nil && filter.MatchString(answers[i]) {
			continue
		}
		out = append(out, Candidate{Index: it.Index, Doc: docs[i], Answer: answers[i], Score: it.Score})
	}
	return out
}

func (b *SearchBot) ranker(mode domain.Mode) domain.Ranker {
	if mode == domain.ModeQA {
		return b.qa
	}
	return b.cr
}

func (b *SearchBot) similarity(r domain.Ranker, mode domain.Mode, tokens []string) []domain.Scored {
	if b.cache == nil {
		return r.Similarity(tokens, b.candidates)
	}
	key := cacheKey(mode == domain.ModeQA, tokens)
	if v, ok := b.cache.Get(key); ok {
		return v.([]domain.Scored)
	}
	items := r.Similarity(tokens, b.candidates)
	b.cache.Add(key, items)
	return items
}

func cacheKey(qa bool, tokens []string) string {
	prefix := "cr\x00"
	if qa {
		prefix = "qa\x00"
	}
	return prefix + strings.Join(tokens, "\x00")
}

func (b *SearchBot) fallback() Response {
	text, score := policy.Fallback()
	b.logger.Debug("search response", zap.String("response", text))
	return b.respond(Response{Text: text, Score: score, Source: SourceFallback})
}

func (b *SearchBot) respond(r Response) Response {
	b.history.Append(r.Text)
	return r
}
