package shortid

// Obfuscator XORs IDs with a key so that sequential IDs do not render as
// sequential strings. It hides ordering, it is not encryption.
type Obfuscator struct {
	key int64
}

// NewObfuscator creates an obfuscator with the given key.
// Use a random int64 and keep it secret.
func NewObfuscator(key int64) *Obfuscator {
	return &Obfuscator{key: key}
}

// Obfuscate XORs the ID with the key. A nil Obfuscator returns id unchanged.
func (o *Obfuscator) Obfuscate(id ID) ID {
	if o == nil {
		return id
	}
	return ID(int64(id) ^ o.key)
}

// Deobfuscate reverses obfuscation (XOR is its own inverse).
func (o *Obfuscator) Deobfuscate(id ID) ID {
	return o.Obfuscate(id)
}

// Codec renders IDs for the outside world in one Format, optionally
// obfuscated. The zero Codec uses DefaultFormat without obfuscation.
type Codec struct {
	Format     Format
	Obfuscator *Obfuscator
}

func (c Codec) format() Format {
	if c.Format == "" {
		return DefaultFormat
	}
	return c.Format
}

// Encode returns the external form of id.
func (c Codec) Encode(id ID) string {
	return c.Obfuscator.Obfuscate(id).Format(c.format())
}

// Decode parses an external form produced by Encode.
func (c Codec) Decode(s string) (ID, error) {
	id, err := ParseFormat(s, c.format())
	if err != nil {
		return Nil, err
	}
	return c.Obfuscator.Deobfuscate(id), nil
}
