package domain

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

// IDLength is the width of the canonical text form of an ID.
const IDLength = 25

// ID is the primary key type shared by every entity. Underneath it is a
// UUIDv7, so the high bits carry the creation timestamp; the canonical text
// form is the 128-bit value encoded as lowercase base-36, left-padded with
// '0' to a fixed width of 25 characters. Because the encoding is fixed-width
// and zero-padded, lexicographic order of the text form equals generation
// order.
type ID uuid.UUID

// NewID generates a new time-ordered ID.
func NewID() ID {
	return ID(uuid.Must(uuid.NewV7()))
}

// ParseID parses the canonical 25-character base-36 text form.
// Anything else (wrong length, uppercase, characters outside [0-9a-z],
// values exceeding 128 bits) fails with ErrValidation.
func ParseID(raw string) (ID, error) {
	if len(raw) != IDLength {
		return ID{}, fmt.Errorf("%w: id must be %d characters, got %d", ErrValidation, IDLength, len(raw))
	}
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'z') {
			return ID{}, fmt.Errorf("%w: id contains invalid character %q", ErrValidation, rune(c))
		}
	}
	n, ok := new(big.Int).SetString(raw, 36)
	if !ok {
		return ID{}, fmt.Errorf("%w: id is not valid base-36", ErrValidation)
	}
	if n.BitLen() > 128 {
		return ID{}, fmt.Errorf("%w: id value exceeds 128 bits", ErrValidation)
	}
	var id ID
	n.FillBytes(id[:])
	return id, nil
}

// IDFromBytes restores an ID from its 16-byte big-endian storage form.
func IDFromBytes(b []byte) (ID, error) {
	if len(b) != 16 {
		return ID{}, fmt.Errorf("%w: id storage form must be 16 bytes, got %d", ErrValidation, len(b))
	}
	var id ID
	copy(id[:], b)
	return id, nil
}

// String returns the canonical 25-character base-36 text form.
func (id ID) String() string {
	enc := new(big.Int).SetBytes(id[:]).Text(36)
	if len(enc) < IDLength {
		enc = strings.Repeat("0", IDLength-len(enc)) + enc
	}
	return enc
}

// Bytes returns the 16-byte big-endian storage form. This is what gets
// bound to BYTEA columns; the text form never touches the database.
func (id ID) Bytes() []byte {
	b := make([]byte, 16)
	copy(b, id[:])
	return b
}

// IsZero reports whether the ID is the zero value.
func (id ID) IsZero() bool {
	return id == ID{}
}
