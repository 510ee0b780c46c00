// Package basen encodes int64 values as compact strings over an ordered alphabet
// of unique symbols, and decodes them back exactly.
//
// The symbol at position i of the alphabet is digit i. Encoded strings are
// most-significant digit first and never carry a leading zero digit, except for
// the value 0 itself, which encodes to the single symbol at digit 0.
//
//	basen.Encode(255)                          // "47"
//	basen.EncodeWith(255, "0123456789ABCDEF")  // "FF", nil
//	basen.DecodeWith("101", "01")              // 5, nil
//
// Negative values are encoded as their two's-complement bit pattern, so every
// int64 round-trips.
package basen

import "errors"

// DefaultAlphabet is the 62 ASCII alphanumerics, digits first, then lowercase,
// then uppercase. It is safe in URL paths, query strings and file names.
const DefaultAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

var (
	// ErrInvalidAlphabet is returned for alphabets shorter than two symbols,
	// with repeated symbols, or with conflicting decode options.
	ErrInvalidAlphabet = errors.New("basen: invalid alphabet")

	// ErrInvalidSymbol is returned when decoding text that contains a character
	// outside the alphabet.
	ErrInvalidSymbol = errors.New("basen: invalid symbol")

	// ErrEmptyInput is returned when decoding text without any digits.
	ErrEmptyInput = errors.New("basen: empty input")

	// ErrOverflow is returned when decoded text does not fit in 64 bits.
	ErrOverflow = errors.New("basen: value overflows 64 bits")
)

var defaultAlphabet = MustAlphabet(DefaultAlphabet)

// Default returns the compiled DefaultAlphabet.
func Default() *Alphabet {
	return defaultAlphabet
}

// Encode returns value encoded with DefaultAlphabet.
func Encode(value int64) string {
	return defaultAlphabet.Encode(value)
}

// Decode parses text encoded with DefaultAlphabet.
func Decode(text string) (int64, error) {
	return defaultAlphabet.Decode(text)
}

// EncodeWith returns value encoded with the given alphabet.
// Compiled alphabets are cached, so repeated calls with the same alphabet
// only validate it once.
func EncodeWith(value int64, alphabet string) (string, error) {
	a, err := Lookup(alphabet)
	if err != nil {
		return "", err
	}
	return a.Encode(value), nil
}

// DecodeWith parses text encoded with the given alphabet.
func DecodeWith(text, alphabet string) (int64, error) {
	a, err := Lookup(alphabet)
	if err != nil {
		return 0, err
	}
	return a.Decode(text)
}
