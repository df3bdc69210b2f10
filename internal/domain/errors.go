package domain

import "errors"

var (
	// ErrConfiguration indicates the bot cannot be assembled: a missing or
	// unreadable vocabulary, an unknown strategy, or an incomplete encoder setup.
	ErrConfiguration = errors.New("configuration error")

	// ErrCorpusLoad indicates a corpus file is missing or malformed.
	ErrCorpusLoad = errors.New("corpus load error")

	// ErrNotPrepared indicates an encoder or store was used before initialisation.
	ErrNotPrepared = errors.New("not prepared")

	// ErrDimensionMismatch indicates vectors of different sizes were mixed.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
)
