package shortid

import "fmt"

// MaxBatch is the largest count GenerateBatch accepts.
const MaxBatch = 1000

// Issuer hands out IDs from a Sequence in their external Codec form and
// resolves external forms back to IDs.
type Issuer struct {
	seq   *Sequence
	codec Codec
}

func NewIssuer(seq *Sequence, codec Codec) *Issuer {
	if seq == nil {
		seq = &Sequence{}
	}
	return &Issuer{seq: seq, codec: codec}
}

// Codec returns the codec external forms are rendered with.
func (i *Issuer) Codec() Codec {
	return i.codec
}

// Generate issues one ID.
func (i *Issuer) Generate() (string, error) {
	id, err := i.seq.Next()
	if err != nil {
		return "", err
	}
	return i.codec.Encode(id), nil
}

// GenerateBatch issues count consecutive IDs in one reservation.
func (i *Issuer) GenerateBatch(count int) ([]string, error) {
	if count < 1 || count > MaxBatch {
		return nil, fmt.Errorf("shortid: count must be between 1 and %d, got %d", MaxBatch, count)
	}
	first, err := i.seq.Reserve(count)
	if err != nil {
		return nil, err
	}
	ids := make([]string, count)
	for n := range ids {
		ids[n] = i.codec.Encode(first + ID(n))
	}
	return ids, nil
}

// Parse resolves an external form produced by this issuer's codec.
func (i *Issuer) Parse(s string) (ID, error) {
	return i.codec.Decode(s)
}
