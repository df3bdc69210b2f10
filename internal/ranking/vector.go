package ranking

import (
	"fmt"
	"math"

	"searchbot/internal/corpus"
	"searchbot/internal/domain"
	"searchbot/internal/vectorstore"
	"searchbot/internal/vectorstore/memory"
)

// Vector ranks documents by cosine similarity of dense vectors produced by
// an Encoder. Scores fall in [-1,1].
type Vector struct {
	base
	encoder domain.Encoder
	store   vectorstore.Storage
}

// NewVector encodes every context of c and indexes the vectors in memory.
// Non-empty contexts are encoded first so the encoder knows its dimension
// before empty contexts are given zero vectors.
func NewVector(c *corpus.Corpus, enc domain.Encoder) (*Vector, error) {
	if err := enc.Prepare(c.Contexts); err != nil {
		return nil, fmt.Errorf("prepare %s encoder: %w", enc.Name(), err)
	}
	vectors := make([][]float64, c.Len())
	for i, doc := range c.Contexts {
		if len(doc) == 0 {
			continue
		}
		v, err := enc.Encode(doc)
		if err != nil {
			return nil, fmt.Errorf("encode document %d: %w", i, err)
		}
		vectors[i] = normalize(v)
	}
	m := &Vector{base: base{corpus: c}, encoder: enc, store: memory.NewStorage()}
	dim := enc.Dimension()
	if c.Len() == 0 || dim == 0 {
		// nothing encodable; every query scores 0
		return m, nil
	}
	for i := range vectors {
		if vectors[i] == nil {
			vectors[i] = make([]float64, dim)
		}
	}
	if err := m.store.Init(dim); err != nil {
		return nil, err
	}
	if err := m.store.Upsert(vectors); err != nil {
		return nil, err
	}
	return m, nil
}

// Similarity encodes the query and searches the store. A query that cannot
// be encoded, or encodes to the zero vector, scores every document 0.
func (m *Vector) Similarity(query []string, size int) []domain.Scored {
	empty := topK(make([]float64, m.Len()), size)
	if len(query) == 0 || m.store.Len() == 0 {
		return empty
	}
	v, err := m.encoder.Encode(query)
	if err != nil {
		return empty
	}
	v = normalize(v)
	if isZero(v) {
		return empty
	}
	if size <= 0 {
		size = DefaultSize
	}
	res, err := m.store.Search(v, size)
	if err != nil {
		return empty
	}
	return res
}

func normalize(v []float64) []float64 {
	norm := 0.0
	for _, x := range v {
		norm += x * x
	}
	norm = math.Sqrt(norm)
	out := make([]float64, len(v))
	if norm == 0 {
		return out
	}
	for i, x := range v {
		out[i] = x / norm
	}
	return out
}

func isZero(v []float64) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}
