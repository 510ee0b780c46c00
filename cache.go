package basen

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// cacheSize bounds the number of compiled alphabets kept for EncodeWith and
// DecodeWith. Callers usually cycle through a handful.
const cacheSize = 64

var compiled = newCache(cacheSize)

func newCache(size int) *lru.Cache[string, *Alphabet] {
	c, err := lru.New[string, *Alphabet](size)
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup returns the compiled form of symbols, building and caching it on
// first use. Invalid alphabets are not cached. Alphabets with options must be
// built with NewAlphabet.
func Lookup(symbols string) (*Alphabet, error) {
	if symbols == DefaultAlphabet {
		return defaultAlphabet, nil
	}
	if a, ok := compiled.Get(symbols); ok {
		return a, nil
	}
	a, err := NewAlphabet(symbols)
	if err != nil {
		return nil, err
	}
	compiled.Add(symbols, a)
	return a, nil
}
