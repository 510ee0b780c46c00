package basen

import (
	"fmt"
	"math"
	"math/bits"
	"unicode"
	"unicode/utf8"
)

const (
	invalidDigit int16 = -1
	ignoredDigit int16 = -2

	// MaxBase is the largest supported alphabet.
	MaxBase = math.MaxInt16
)

// Alphabet is a compiled digit set. It is immutable once built and safe for
// concurrent use. Build one with NewAlphabet or MustAlphabet; the zero
// Alphabet behaves like Default().
type Alphabet struct {
	symbols string
	encode  []rune
	ascii   bool
	base    uint64
	maxLen  int

	// decode tables hold a digit, invalidDigit or ignoredDigit
	lookup [utf8.RuneSelf]int16
	wide   map[rune]int16
}

// Option tunes how an Alphabet decodes. Options never change encoded output.
type Option func(*options)

type alias struct {
	from, to rune
}

type options struct {
	foldCase bool
	aliases  []alias
	ignore   string
}

// WithCaseFold makes decoding case-insensitive. The alphabet must not contain
// the same letter in two cases.
func WithCaseFold() Option {
	return func(o *options) { o.foldCase = true }
}

// WithAlias decodes from as if it were the symbol to.
func WithAlias(from, to rune) Option {
	return func(o *options) { o.aliases = append(o.aliases, alias{from: from, to: to}) }
}

// WithIgnore skips the given characters while decoding, e.g. "-" separators.
func WithIgnore(chars string) Option {
	return func(o *options) { o.ignore += chars }
}

// NewAlphabet compiles symbols into an Alphabet. Each rune of symbols is one
// digit, in order.
func NewAlphabet(symbols string, opts ...Option) (*Alphabet, error) {
	if !utf8.ValidString(symbols) {
		return nil, fmt.Errorf("%w: not valid UTF-8", ErrInvalidAlphabet)
	}
	runes := []rune(symbols)
	if len(runes) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 symbols, got %d", ErrInvalidAlphabet, len(runes))
	}
	if len(runes) > MaxBase {
		return nil, fmt.Errorf("%w: at most %d symbols, got %d", ErrInvalidAlphabet, MaxBase, len(runes))
	}

	a := &Alphabet{
		symbols: symbols,
		encode:  runes,
		ascii:   true,
		base:    uint64(len(runes)),
	}
	for i := range a.lookup {
		a.lookup[i] = invalidDigit
	}

	for i, r := range runes {
		if r >= utf8.RuneSelf {
			a.ascii = false
		}
		if d := a.digit(r); d >= 0 {
			return nil, fmt.Errorf("%w: symbol %q repeated at digits %d and %d", ErrInvalidAlphabet, r, d, i)
		}
		a.set(r, int16(i))
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.foldCase {
		for i, r := range runes {
			if err := a.fold(r, int16(i)); err != nil {
				return nil, err
			}
		}
	}
	for _, al := range o.aliases {
		to := a.digit(al.to)
		if to < 0 || a.encode[to] != al.to {
			return nil, fmt.Errorf("%w: alias target %q is not a symbol", ErrInvalidAlphabet, al.to)
		}
		if d := a.digit(al.from); d >= 0 && d != to {
			return nil, fmt.Errorf("%w: alias %q already decodes as digit %d", ErrInvalidAlphabet, al.from, d)
		}
		a.set(al.from, to)
		if o.foldCase {
			if err := a.fold(al.from, to); err != nil {
				return nil, err
			}
		}
	}
	for _, r := range o.ignore {
		if d := a.digit(r); d >= 0 {
			return nil, fmt.Errorf("%w: ignored character %q decodes as digit %d", ErrInvalidAlphabet, r, d)
		}
		a.set(r, ignoredDigit)
	}

	a.maxLen = utf8.RuneCountInString(a.encodeUint64(math.MaxUint64))
	return a, nil
}

// MustAlphabet is like NewAlphabet but panics on error.
// Use it for package-level alphabets built from constants.
func MustAlphabet(symbols string, opts ...Option) *Alphabet {
	a, err := NewAlphabet(symbols, opts...)
	if err != nil {
		panic(err)
	}
	return a
}

// fold maps every other case of r to digit d.
func (a *Alphabet) fold(r rune, d int16) error {
	for other := unicode.SimpleFold(r); other != r; other = unicode.SimpleFold(other) {
		switch got := a.digit(other); {
		case got == d:
		case got >= 0:
			return fmt.Errorf("%w: %q and %q differ only in case", ErrInvalidAlphabet, r, other)
		default:
			a.set(other, d)
		}
	}
	return nil
}

// orDefault substitutes the default alphabet for a zero Alphabet.
func (a *Alphabet) orDefault() *Alphabet {
	if a.base == 0 {
		return defaultAlphabet
	}
	return a
}

func (a *Alphabet) set(r rune, d int16) {
	if r < utf8.RuneSelf {
		a.lookup[r] = d
		return
	}
	if a.wide == nil {
		a.wide = make(map[rune]int16)
	}
	a.wide[r] = d
}

func (a *Alphabet) digit(r rune) int16 {
	if r >= 0 && r < utf8.RuneSelf {
		return a.lookup[r]
	}
	if d, ok := a.wide[r]; ok {
		return d
	}
	return invalidDigit
}

// String returns the symbols in digit order.
func (a *Alphabet) String() string {
	return a.orDefault().symbols
}

// Base returns the number of symbols.
func (a *Alphabet) Base() int {
	return int(a.orDefault().base)
}

// MaxLen returns the length, in symbols, of the longest encoding.
func (a *Alphabet) MaxLen() int {
	return a.orDefault().maxLen
}

// Symbol returns the symbol for digit d. It panics if d is out of range.
func (a *Alphabet) Symbol(d int) rune {
	return a.orDefault().encode[d]
}

// Digit returns the digit r decodes to, honouring case folding and aliases.
func (a *Alphabet) Digit(r rune) (int, bool) {
	d := a.orDefault().digit(r)
	if d < 0 {
		return 0, false
	}
	return int(d), true
}

// Encode returns value in this alphabet. Negative values are encoded as
// their two's-complement uint64.
func (a *Alphabet) Encode(value int64) string {
	return a.EncodeUint64(uint64(value))
}

// EncodeUint64 returns value in this alphabet.
func (a *Alphabet) EncodeUint64(value uint64) string {
	return a.orDefault().encodeUint64(value)
}

func (a *Alphabet) encodeUint64(value uint64) string {
	if value == 0 {
		return string(a.encode[0])
	}
	if a.ascii {
		var buf [64]byte
		i := len(buf)
		for value > 0 {
			i--
			buf[i] = byte(a.encode[value%a.base])
			value /= a.base
		}
		return string(buf[i:])
	}
	var buf [64]rune
	i := len(buf)
	for value > 0 {
		i--
		buf[i] = a.encode[value%a.base]
		value /= a.base
	}
	return string(buf[i:])
}

// Decode parses text in this alphabet. Values above math.MaxInt64 come back
// negative, mirroring Encode.
func (a *Alphabet) Decode(text string) (int64, error) {
	n, err := a.DecodeUint64(text)
	if err != nil {
		return 0, err
	}
	return int64(n), nil
}

// DecodeUint64 parses text in this alphabet.
func (a *Alphabet) DecodeUint64(text string) (uint64, error) {
	if text == "" {
		return 0, ErrEmptyInput
	}
	a = a.orDefault()
	var n uint64
	digits := 0
	for i, r := range text {
		if r == utf8.RuneError {
			if _, size := utf8.DecodeRuneInString(text[i:]); size == 1 {
				return 0, fmt.Errorf("%w: invalid UTF-8 byte %#x at offset %d", ErrInvalidSymbol, text[i], i)
			}
		}
		d := a.digit(r)
		if d == ignoredDigit {
			continue
		}
		if d < 0 {
			return 0, fmt.Errorf("%w: %q at offset %d", ErrInvalidSymbol, r, i)
		}
		hi, lo := bits.Mul64(n, a.base)
		lo, carry := bits.Add64(lo, uint64(d), 0)
		if hi != 0 || carry != 0 {
			return 0, fmt.Errorf("%w: %q", ErrOverflow, text)
		}
		n = lo
		digits++
	}
	if digits == 0 {
		return 0, ErrEmptyInput
	}
	return n, nil
}
