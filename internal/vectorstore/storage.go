package vectorstore

import "searchbot/internal/domain"

// Storage holds dense document vectors addressed by corpus index and
// supports similarity search.
type Storage interface {
	Init(dimension int) error
	Upsert(vectors [][]float64) error
	Search(vector []float64, topK int) ([]domain.Scored, error)
	Len() int
}
