package wordvec

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"searchbot/internal/domain"
)

// Encoder averages precomputed word vectors. Tokens without a vector are
// skipped; a sequence with no known token encodes to the zero vector.
type Encoder struct {
	vectors   map[string][]float64
	dimension int
}

// New creates an encoder over an in-memory table. Every vector must have
// the same length.
func New(vectors map[string][]float64) (*Encoder, error) {
	e := &Encoder{vectors: vectors}
	for tok, v := range vectors {
		if e.dimension == 0 {
			e.dimension = len(v)
		}
		if len(v) != e.dimension || len(v) == 0 {
			return nil, fmt.Errorf("%w: vector for %q has %d components", domain.ErrDimensionMismatch, tok, len(v))
		}
	}
	return e, nil
}

// Load reads a word2vec text file: "token v1 v2 ... vd" per line, with an
// optional leading "count dim" header line.
func Load(path string) (*Encoder, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: word vectors: %v", domain.ErrCorpusLoad, err)
	}
	defer f.Close()

	vectors := make(map[string][]float64)
	dim := 0
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if lineNo == 1 && len(fields) == 2 {
			if _, err := strconv.Atoi(fields[0]); err == nil {
				if d, err := strconv.Atoi(fields[1]); err == nil {
					dim = d
					continue
				}
			}
		}
		if len(fields) < 2 {
			return nil, fmt.Errorf("%w: %s:%d: missing vector", domain.ErrCorpusLoad, path, lineNo)
		}
		if dim == 0 {
			dim = len(fields) - 1
		}
		if len(fields)-1 != dim {
			return nil, fmt.Errorf("%w: %s:%d: got %d components, want %d", domain.ErrCorpusLoad, path, lineNo, len(fields)-1, dim)
		}
		vec := make([]float64, dim)
		for i, s := range fields[1:] {
			x, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %s:%d: %v", domain.ErrCorpusLoad, path, lineNo, err)
			}
			vec[i] = x
		}
		if _, dup := vectors[fields[0]]; !dup {
			vectors[fields[0]] = vec
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrCorpusLoad, path, err)
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("%w: %s: no word vectors", domain.ErrCorpusLoad, path)
	}
	return &Encoder{vectors: vectors, dimension: dim}, nil
}

// Name returns the identifier of this encoder implementation.
func (e *Encoder) Name() string { return "wordvec" }

// Prepare is a no-op; the table is fixed at load time.
func (e *Encoder) Prepare(corpus [][]string) error { return nil }

// Dimension returns the vector size.
func (e *Encoder) Dimension() int { return e.dimension }

// Encode returns the mean of the known token vectors.
func (e *Encoder) Encode(tokens []string) ([]float64, error) {
	if e.dimension == 0 {
		return nil, domain.ErrNotPrepared
	}
	out := make([]float64, e.dimension)
	n := 0
	for _, tok := range tokens {
		v, ok := e.vectors[tok]
		if !ok {
			continue
		}
		for i, x := range v {
			out[i] += x
		}
		n++
	}
	if n > 1 {
		for i := range out {
			out[i] /= float64(n)
		}
	}
	return out, nil
}
