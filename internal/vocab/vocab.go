package vocab

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"searchbot/internal/domain"
)

// Vocabulary maps tokens to stable integer ids and back.
// It is read-only after construction.
type Vocabulary struct {
	wordToID map[string]int
	idToWord []string
}

// New builds a vocabulary from tokens in id order. Duplicates keep their first id.
func New(tokens []string) *Vocabulary {
	v := &Vocabulary{wordToID: make(map[string]int, len(tokens))}
	for _, tok := range tokens {
		v.add(tok)
	}
	return v
}

func (v *Vocabulary) add(tok string) {
	if tok == "" {
		return
	}
	if _, ok := v.wordToID[tok]; ok {
		return
	}
	v.wordToID[tok] = len(v.idToWord)
	v.idToWord = append(v.idToWord, tok)
}

// Load reads a vocabulary file: one token per line, optionally followed by a
// tab and a frequency count. Ids follow line order. maxSize > 0 caps the
// number of entries kept.
func Load(path string, maxSize int) (*Vocabulary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open vocabulary %s: %v", domain.ErrConfiguration, path, err)
	}
	defer f.Close()

	v := &Vocabulary{wordToID: make(map[string]int)}
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if maxSize > 0 && v.Len() >= maxSize {
			break
		}
		line := strings.TrimRight(sc.Text(), "\r")
		tok, _, _ := strings.Cut(line, "\t")
		v.add(strings.TrimSpace(tok))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: read vocabulary %s: %v", domain.ErrConfiguration, path, err)
	}
	return v, nil
}

// ID returns the id of tok.
func (v *Vocabulary) ID(tok string) (int, bool) {
	id, ok := v.wordToID[tok]
	return id, ok
}

// Word returns the token for id.
func (v *Vocabulary) Word(id int) (string, bool) {
	if id < 0 || id >= len(v.idToWord) {
		return "", false
	}
	return v.idToWord[id], true
}

// Contains reports whether tok is in the vocabulary.
func (v *Vocabulary) Contains(tok string) bool {
	_, ok := v.wordToID[tok]
	return ok
}

// Filter keeps the in-vocabulary tokens, preserving order.
func (v *Vocabulary) Filter(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if v.Contains(t) {
			out = append(out, t)
		}
	}
	return out
}

// Len is the number of entries.
func (v *Vocabulary) Len() int { return len(v.idToWord) }
