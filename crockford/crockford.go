// Package crockford provides Crockford Base32 encoding and decoding for int64 values.
// It uses the Crockford alphabet which excludes I, L, O, U to avoid ambiguity.
// Decoding is case-insensitive.
package crockford

import (
	"errors"
	"fmt"

	"github.com/paraglidehq/basen"
)

// Symbols is the Crockford Base32 alphabet, lowercase, in digit order.
const Symbols = "0123456789abcdefghjkmnpqrstvwxyz"

// Alphabet decodes case-insensitively, reads I and L as 1 and O as 0, and
// skips hyphens.
var Alphabet = basen.MustAlphabet(Symbols,
	basen.WithCaseFold(),
	basen.WithAlias('i', '1'),
	basen.WithAlias('l', '1'),
	basen.WithAlias('o', '0'),
	basen.WithIgnore("-"),
)

// ErrInvalid is returned when decoding a string with invalid characters.
// It matches basen.ErrInvalidSymbol under errors.Is.
var ErrInvalid = fmt.Errorf("crockford: invalid character: %w", basen.ErrInvalidSymbol)

// Encode returns the Crockford Base32 encoding of the given int64.
func Encode(id int64) string {
	return Alphabet.Encode(id)
}

// Decode parses a Crockford Base32-encoded string and returns the int64 value.
// I and L are treated as 1, O is treated as 0, hyphens are skipped.
func Decode(s string) (int64, error) {
	n, err := Alphabet.Decode(s)
	if errors.Is(err, basen.ErrInvalidSymbol) {
		return 0, ErrInvalid
	}
	return n, err
}
