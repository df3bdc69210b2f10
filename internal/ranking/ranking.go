// Package ranking implements the interchangeable corpus ranking strategies:
// Okapi BM25, TF-IDF cosine, one-hot overlap and dense vector cosine.
package ranking

import (
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"searchbot/internal/corpus"
	"searchbot/internal/domain"
	"searchbot/internal/vocab"
)

// DefaultSize is used when a caller asks for a non-positive number of results.
const DefaultSize = 10

// Options tunes strategy construction. Zero values select defaults.
type Options struct {
	// K1 is the BM25 term frequency saturation; non-positive selects DefaultK1.
	K1 float64
	// B is the BM25 length normalization; nil selects DefaultB and 0 turns
	// normalization off.
	B *float64
	// Encoder produces dense vectors for the vector strategy.
	Encoder domain.Encoder
	Logger  *zap.Logger
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// Build constructs the ranker for kind over an already loaded corpus.
func Build(kind domain.Strategy, c *corpus.Corpus, opts Options) (domain.Ranker, error) {
	switch kind {
	case domain.StrategyBM25:
		b := DefaultB
		if opts.B != nil {
			b = *opts.B
		}
		return NewBM25(c, opts.K1, b), nil
	case domain.StrategyTFIDF:
		return NewTFIDF(c), nil
	case domain.StrategyOneHot:
		return NewOneHot(c), nil
	case domain.StrategyVector:
		if opts.Encoder == nil {
			return nil, fmt.Errorf("%w: vector strategy requires an encoder", domain.ErrConfiguration)
		}
		return NewVector(c, opts.Encoder)
	default:
		return nil, fmt.Errorf("%w: unknown strategy %q", domain.ErrConfiguration, kind)
	}
}

// Load reads the corpus at path and builds the ranker for kind over it.
func Load(kind domain.Strategy, path string, tok domain.Tokenizer, v *vocab.Vocabulary, opts Options) (domain.Ranker, error) {
	start := time.Now()
	c, err := corpus.Load(path, tok, v)
	if err != nil {
		return nil, err
	}
	r, err := Build(kind, c, opts)
	if err != nil {
		return nil, err
	}
	opts.logger().Debug("ranker built",
		zap.String("strategy", string(kind)),
		zap.String("corpus", path),
		zap.Int("documents", c.Len()),
		zap.Duration("elapsed", time.Since(start)))
	return r, nil
}

// base gives every strategy direct index access to its corpus.
type base struct {
	corpus *corpus.Corpus
}

func (b base) Docs(items []domain.Scored) ([][]string, []string) {
	docs := make([][]string, len(items))
	answers := make([]string, len(items))
	for i, it := range items {
		docs[i] = b.corpus.Contexts[it.Index]
		answers[i] = b.corpus.Responses[it.Index]
	}
	return docs, answers
}

func (b base) Len() int { return b.corpus.Len() }

// topK ranks scores descending, keeping index order among equal scores.
func topK(scores []float64, size int) []domain.Scored {
	if size <= 0 {
		size = DefaultSize
	}
	items := make([]domain.Scored, len(scores))
	for i, s := range scores {
		items[i] = domain.Scored{Index: i, Score: s}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Score > items[j].Score })
	if size < len(items) {
		items = items[:size]
	}
	return items
}

// termCounts counts token occurrences.
func termCounts(tokens []string) map[string]int {
	tf := make(map[string]int, len(tokens))
	for _, t := range tokens {
		tf[t]++
	}
	return tf
}
