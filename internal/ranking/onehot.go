package ranking

import (
	"math"

	"searchbot/internal/corpus"
	"searchbot/internal/domain"
)

// OneHot ranks documents by binary bag-of-words overlap using the Ochiai
// coefficient |Q∩D| / sqrt(|Q||D|), the cosine of 0/1 vectors.
type OneHot struct {
	base
	postings map[string][]int
	sizes    []int
}

// NewOneHot indexes the distinct terms of every document in c.
func NewOneHot(c *corpus.Corpus) *OneHot {
	m := &OneHot{
		base:     base{corpus: c},
		postings: make(map[string][]int),
		sizes:    make([]int, c.Len()),
	}
	for i, doc := range c.Contexts {
		seen := termCounts(doc)
		m.sizes[i] = len(seen)
		for term := range seen {
			m.postings[term] = append(m.postings[term], i)
		}
	}
	return m
}

// Similarity scores every document against the distinct query terms.
func (m *OneHot) Similarity(query []string, size int) []domain.Scored {
	scores := make([]float64, m.Len())
	qset := termCounts(query)
	if len(qset) > 0 {
		inter := make([]int, m.Len())
		for term := range qset {
			for _, doc := range m.postings[term] {
				inter[doc]++
			}
		}
		qs := float64(len(qset))
		for i, n := range inter {
			if n == 0 {
				continue
			}
			scores[i] = float64(n) / math.Sqrt(qs*float64(m.sizes[i]))
		}
	}
	return topK(scores, size)
}
