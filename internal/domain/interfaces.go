package domain

import "context"

// Strategy names a ranking algorithm.
type Strategy string

const (
	StrategyBM25   Strategy = "bm25"
	StrategyTFIDF  Strategy = "tfidf"
	StrategyOneHot Strategy = "onehot"
	StrategyVector Strategy = "vector"
)

// Strategies lists every supported ranking strategy.
var Strategies = []Strategy{StrategyBM25, StrategyTFIDF, StrategyOneHot, StrategyVector}

// Mode selects which corpus a query is answered from.
type Mode string

const (
	// ModeQA answers single-turn questions from question/answer pairs.
	ModeQA Mode = "qa"
	// ModeCR continues a conversation from context/response pairs.
	ModeCR Mode = "cr"
)

// Scored is one ranked corpus entry.
type Scored struct {
	Index int
	Score float64
}

// Ranker scores every document of a corpus against a tokenized query.
// Implementations are immutable after construction and safe for concurrent use.
type Ranker interface {
	// Similarity returns up to size entries sorted by descending score,
	// ties broken by ascending index. An empty query never fails.
	Similarity(query []string, size int) []Scored
	// Docs maps ranked entries back to their context tokens and response text.
	Docs(items []Scored) (docs [][]string, answers []string)
	// Len is the number of documents in the corpus.
	Len() int
}

// Tokenizer splits raw text into normalized tokens.
type Tokenizer interface {
	Tokenize(text string, dropPunct bool) []string
}

// Filter reports whether a candidate answer should be discarded.
// *regexp.Regexp satisfies it.
type Filter interface {
	MatchString(s string) bool
}

// WebSearcher answers a query from outside the local corpus.
type WebSearcher interface {
	Search(ctx context.Context, query string) ([]string, error)
}

// Encoder converts a token sequence into a dense vector.
// Implementations may require a preparation phase over the corpus.
type Encoder interface {
	Name() string
	Prepare(corpus [][]string) error
	Dimension() int
	Encode(tokens []string) ([]float64, error)
}
