package corpus

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"searchbot/internal/domain"
	"searchbot/internal/vocab"
)

// Corpus holds aligned contexts and responses. Index i joins Contexts[i],
// Responses[i] and ranking results. It is never mutated after Load.
type Corpus struct {
	Contexts  [][]string
	Responses []string
}

// New builds a corpus from already tokenized contexts.
func New(contexts [][]string, responses []string) (*Corpus, error) {
	if len(contexts) != len(responses) {
		return nil, fmt.Errorf("%w: %d contexts for %d responses", domain.ErrCorpusLoad, len(contexts), len(responses))
	}
	return &Corpus{Contexts: contexts, Responses: responses}, nil
}

// Load reads a corpus file of "context<TAB>response" lines. Contexts are
// tokenized without punctuation and, when v is not nil, reduced to
// in-vocabulary tokens. Blank lines are skipped.
func Load(path string, tok domain.Tokenizer, v *vocab.Vocabulary) (*Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorpusLoad, err)
	}
	defer f.Close()

	c := &Corpus{}
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		context, response, ok := strings.Cut(line, "\t")
		response = strings.TrimSpace(response)
		if !ok || response == "" {
			return nil, fmt.Errorf("%w: %s:%d: expected context<TAB>response", domain.ErrCorpusLoad, path, lineNo)
		}
		tokens := tok.Tokenize(context, true)
		if v != nil {
			tokens = v.Filter(tokens)
		}
		c.Contexts = append(c.Contexts, tokens)
		c.Responses = append(c.Responses, response)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrCorpusLoad, path, err)
	}
	return c, nil
}

// Len is the number of records.
func (c *Corpus) Len() int { return len(c.Contexts) }
