package shortid

import (
	"errors"
	"math"
	"testing"

	"github.com/paraglidehq/basen"
)

func TestIssuerGenerateBatch(t *testing.T) {
	codec := Codec{Format: FormatCrockford, Obfuscator: NewObfuscator(0x5DEECE66D)}
	iss := NewIssuer(NewSequence(100), codec)

	ids, err := iss.GenerateBatch(3)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 3 {
		t.Fatalf("GenerateBatch(3) returned %d IDs", len(ids))
	}
	for n, s := range ids {
		got, err := iss.Parse(s)
		if err != nil {
			t.Fatalf("Parse(%q): %v", s, err)
		}
		id := ID(100 + n)
		if got != id {
			t.Errorf("Parse(%q) = %d, want %d", s, got, id)
		}
		if s == id.Format(FormatCrockford) {
			t.Errorf("ID %d rendered without obfuscation", id)
		}
	}

	next, err := iss.Generate()
	if err != nil {
		t.Fatal(err)
	}
	if got := Must(iss.Parse(next)); got != 103 {
		t.Errorf("Generate after batch = %d, want 103", got)
	}
}

func TestIssuerBatchBounds(t *testing.T) {
	iss := NewIssuer(nil, Codec{})
	for _, n := range []int{0, -1, MaxBatch + 1} {
		if _, err := iss.GenerateBatch(n); err == nil {
			t.Errorf("GenerateBatch(%d): want err != nil", n)
		}
	}
	if got, err := iss.Generate(); err != nil || got != "1" {
		t.Errorf("first Generate on zero Sequence = %q, %v; want \"1\", nil", got, err)
	}
}

func TestIssuerExhausted(t *testing.T) {
	iss := NewIssuer(NewSequence(math.MaxInt64-1), Codec{})
	if _, err := iss.GenerateBatch(3); !errors.Is(err, ErrExhausted) {
		t.Errorf("GenerateBatch past MaxInt64: got %v, want ErrExhausted", err)
	}
}

func TestIssuerParseError(t *testing.T) {
	iss := NewIssuer(nil, Codec{Format: FormatHex})
	if _, err := iss.Parse("xyz"); !errors.Is(err, basen.ErrInvalidSymbol) {
		t.Errorf("Parse(\"xyz\"): got %v, want basen.ErrInvalidSymbol", err)
	}
}
