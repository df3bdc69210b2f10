package ranking

import (
	"math"
	"sort"

	"searchbot/internal/corpus"
	"searchbot/internal/domain"
)

type weighted struct {
	doc    int
	weight float64
}

type termWeight struct {
	term   string
	weight float64
}

// TFIDF ranks documents by cosine similarity of L2-normalized TF-IDF vectors.
// Scores fall in [0,1].
type TFIDF struct {
	base
	idf      map[string]float64
	postings map[string][]weighted
}

// NewTFIDF builds document frequencies and per-document weights for c.
func NewTFIDF(c *corpus.Corpus) *TFIDF {
	m := &TFIDF{
		base:     base{corpus: c},
		idf:      make(map[string]float64),
		postings: make(map[string][]weighted),
	}
	df := make(map[string]int)
	for _, doc := range c.Contexts {
		for term := range termCounts(doc) {
			df[term]++
		}
	}
	n := float64(c.Len())
	for term, f := range df {
		// Smoothed IDF
		m.idf[term] = math.Log((1+n)/(1+float64(f))) + 1.0
	}
	for i, doc := range c.Contexts {
		for _, tw := range m.vector(doc) {
			m.postings[tw.term] = append(m.postings[tw.term], weighted{doc: i, weight: tw.weight})
		}
	}
	return m
}

// vector returns the normalized TF-IDF weights of tokens sorted by term.
// Terms unknown to the corpus are ignored.
func (m *TFIDF) vector(tokens []string) []termWeight {
	tf := make(map[string]int)
	for _, tok := range tokens {
		if _, ok := m.idf[tok]; ok {
			tf[tok]++
		}
	}
	if len(tf) == 0 {
		return nil
	}
	total := 0
	vec := make([]termWeight, 0, len(tf))
	for term, count := range tf {
		vec = append(vec, termWeight{term: term})
		total += count
	}
	sort.Slice(vec, func(i, j int) bool { return vec[i].term < vec[j].term })
	norm := 0.0
	for i := range vec {
		w := float64(tf[vec[i].term]) / float64(total) * m.idf[vec[i].term]
		vec[i].weight = w
		norm += w * w
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i].weight /= norm
		}
	}
	return vec
}

// Similarity computes the dot product of the query vector with every document.
func (m *TFIDF) Similarity(query []string, size int) []domain.Scored {
	scores := make([]float64, m.Len())
	for _, q := range m.vector(query) {
		for _, p := range m.postings[q.term] {
			scores[p.doc] += q.weight * p.weight
		}
	}
	return topK(scores, size)
}
