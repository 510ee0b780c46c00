// Package base58 provides Base58 encoding and decoding for int64 values.
// It uses the Bitcoin alphabet which excludes 0, O, I, and l to avoid ambiguity.
package base58

import (
	"errors"
	"fmt"

	"github.com/paraglidehq/basen"
)

// Symbols is the Bitcoin Base58 alphabet in digit order.
const Symbols = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// Alphabet is the compiled Bitcoin alphabet.
var Alphabet = basen.MustAlphabet(Symbols)

// ErrInvalidBase58 is returned when decoding a string with invalid Base58 characters.
// It matches basen.ErrInvalidSymbol under errors.Is.
var ErrInvalidBase58 = fmt.Errorf("base58: invalid character: %w", basen.ErrInvalidSymbol)

// Encode returns the Base58 encoding of the given int64.
func Encode(id int64) string {
	return Alphabet.Encode(id)
}

// Decode parses a Base58-encoded string and returns the int64 value.
func Decode(s string) (int64, error) {
	n, err := Alphabet.Decode(s)
	if errors.Is(err, basen.ErrInvalidSymbol) {
		return 0, ErrInvalidBase58
	}
	return n, err
}
