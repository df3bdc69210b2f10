package tokenizer

import (
	"strings"
	"unicode"
)

// Tokenizer splits text into lower-cased word tokens. Runs of letters and
// digits form one token, except ideographic and kana characters which are
// emitted one rune at a time since they carry no whitespace boundaries.
type Tokenizer struct {
	stopwords map[string]struct{}
}

// New creates a tokenizer. Tokens listed in stopwords are dropped.
func New(stopwords ...string) *Tokenizer {
	m := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		m[strings.ToLower(w)] = struct{}{}
	}
	return &Tokenizer{stopwords: m}
}

// Tokenize splits text. With dropPunct false, punctuation and symbol runes
// are kept as single-rune tokens.
func (t *Tokenizer) Tokenize(text string, dropPunct bool) []string {
	var (
		tokens []string
		word   strings.Builder
	)
	flush := func() {
		if word.Len() == 0 {
			return
		}
		t.emit(&tokens, word.String())
		word.Reset()
	}
	for _, r := range strings.ToLower(text) {
		switch {
		case isIdeograph(r):
			flush()
			t.emit(&tokens, string(r))
		case unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r):
			word.WriteRune(r)
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			flush()
			if !dropPunct {
				t.emit(&tokens, string(r))
			}
		default:
			flush()
		}
	}
	flush()
	return tokens
}

func (t *Tokenizer) emit(tokens *[]string, tok string) {
	if _, stop := t.stopwords[tok]; stop {
		return
	}
	*tokens = append(*tokens, tok)
}

func isIdeograph(r rune) bool {
	return unicode.Is(unicode.Han, r) ||
		unicode.Is(unicode.Hiragana, r) ||
		unicode.Is(unicode.Katakana, r) ||
		unicode.Is(unicode.Hangul, r)
}
