package ranking

import (
	"math"

	"searchbot/internal/corpus"
	"searchbot/internal/domain"
)

// Okapi BM25 defaults.
const (
	DefaultK1 = 1.5
	DefaultB  = 0.75
)

type posting struct {
	doc  int
	freq int
}

// BM25 ranks documents with Okapi BM25 over an inverted index.
// Scores are unbounded above zero.
type BM25 struct {
	base
	k1       float64
	b        float64
	postings map[string][]posting
	idf      map[string]float64
	lengths  []int
	avgdl    float64
}

// NewBM25 indexes c. Non-positive k1 falls back to DefaultK1; b outside
// [0,1] falls back to DefaultB. b == 0 disables length normalization.
func NewBM25(c *corpus.Corpus, k1, b float64) *BM25 {
	if k1 <= 0 {
		k1 = DefaultK1
	}
	if b < 0 || b > 1 {
		b = DefaultB
	}
	m := &BM25{
		base:     base{corpus: c},
		k1:       k1,
		b:        b,
		postings: make(map[string][]posting),
		idf:      make(map[string]float64),
		lengths:  make([]int, c.Len()),
	}
	total := 0
	for i, doc := range c.Contexts {
		m.lengths[i] = len(doc)
		total += len(doc)
		for term, f := range termCounts(doc) {
			m.postings[term] = append(m.postings[term], posting{doc: i, freq: f})
		}
	}
	n := float64(c.Len())
	if n > 0 {
		m.avgdl = float64(total) / n
	}
	for term, ps := range m.postings {
		df := float64(len(ps))
		m.idf[term] = math.Log((n-df+0.5)/(df+0.5) + 1)
	}
	return m
}

// IDF returns the inverse document frequency of term, zero if unseen.
func (m *BM25) IDF(term string) float64 { return m.idf[term] }

// Similarity sums the BM25 contribution of every query term occurrence.
func (m *BM25) Similarity(query []string, size int) []domain.Scored {
	scores := make([]float64, m.Len())
	if m.avgdl > 0 {
		for _, term := range query {
			idf := m.idf[term]
			for _, p := range m.postings[term] {
				f := float64(p.freq)
				norm := 1 - m.b + m.b*float64(m.lengths[p.doc])/m.avgdl
				scores[p.doc] += idf * f * (m.k1 + 1) / (f + m.k1*norm)
			}
		}
	}
	return topK(scores, size)
}
