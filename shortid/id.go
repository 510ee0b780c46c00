// Package shortid issues int64 identifiers from a Sequence and renders them
// as short base-N strings through a Codec.
package shortid

import (
	"database/sql"
	"database/sql/driver"
	"encoding"
	"errors"
	"fmt"
	"strconv"

	"github.com/paraglidehq/basen"
	"github.com/paraglidehq/basen/base58"
	"github.com/paraglidehq/basen/crockford"
)

var (
	_ fmt.Stringer             = ID(0)
	_ driver.Valuer            = ID(0)
	_ sql.Scanner              = (*ID)(nil)
	_ encoding.TextMarshaler   = ID(0)
	_ encoding.TextUnmarshaler = (*ID)(nil)
)

// Format names the alphabet an ID is rendered in.
type Format string

const (
	FormatBase62    Format = "base62"
	FormatBase58    Format = "base58"
	FormatCrockford Format = "crockford"
	FormatHex       Format = "hex"
	FormatDecimal   Format = "decimal"

	// DefaultFormat is used by String, Parse and the text codecs.
	DefaultFormat = FormatBase62
)

var hexAlphabet = basen.MustAlphabet("0123456789abcdef", basen.WithCaseFold())

// Valid reports whether f is one of the named formats.
func (f Format) Valid() bool {
	switch f {
	case FormatBase62, FormatBase58, FormatCrockford, FormatHex, FormatDecimal:
		return true
	}
	return false
}

// Alphabet returns the alphabet behind f, or nil for FormatDecimal.
// Unknown formats fall back to DefaultFormat.
func (f Format) Alphabet() *basen.Alphabet {
	switch f {
	case FormatDecimal:
		return nil
	case FormatBase58:
		return base58.Alphabet
	case FormatCrockford:
		return crockford.Alphabet
	case FormatHex:
		return hexAlphabet
	default:
		return basen.Default()
	}
}

// ID is a 64-bit identifier rendered through a base-N alphabet.
type ID int64

var Nil ID = 0

// ErrEmpty is returned when parsing an empty string.
var ErrEmpty = fmt.Errorf("shortid: empty string: %w", basen.ErrEmptyInput)

func (id ID) Int64() int64 {
	return int64(id)
}

func (id ID) IsNil() bool {
	return id == Nil
}

func (id ID) String() string {
	return id.Format(DefaultFormat)
}

func (id ID) Format(f Format) string {
	if a := f.Alphabet(); a != nil {
		return a.Encode(int64(id))
	}
	return strconv.FormatInt(int64(id), 10)
}

// MarshalText implements encoding.TextMarshaler, so IDs render in
// DefaultFormat as JSON strings and map keys.
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ID) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// Value implements driver.Valuer. IDs are stored as bigint, never as text,
// so rows stay sortable whatever Codec renders them.
func (id ID) Value() (driver.Value, error) {
	return int64(id), nil
}

// Scan implements sql.Scanner for bigint columns.
func (id *ID) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*id = Nil
	case int64:
		*id = ID(v)
	default:
		return fmt.Errorf("shortid: cannot scan %T into ID", src)
	}
	return nil
}

// Parse parses a string in DefaultFormat.
func Parse(s string) (ID, error) {
	return ParseFormat(s, DefaultFormat)
}

// ParseFormat parses a string rendered with Format(f).
func ParseFormat(s string, f Format) (ID, error) {
	if len(s) == 0 {
		return Nil, ErrEmpty
	}
	a := f.Alphabet()
	if a == nil {
		n, err := strconv.ParseInt(s, 10, 64)
		if errors.Is(err, strconv.ErrRange) {
			return Nil, fmt.Errorf("shortid: parse decimal %q: %w", s, basen.ErrOverflow)
		}
		if err != nil {
			return Nil, fmt.Errorf("shortid: parse decimal %q: %w", s, basen.ErrInvalidSymbol)
		}
		return ID(n), nil
	}
	n, err := a.Decode(s)
	if err != nil {
		return Nil, fmt.Errorf("shortid: parse %s: %w", f, err)
	}
	return ID(n), nil
}

// Must panics if err is not nil
func Must(id ID, err error) ID {
	if err != nil {
		panic(err)
	}
	return id
}
