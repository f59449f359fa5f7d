package id

import (
	"errors"

	"github.com/google/uuid"
)

// ID is a 128-bit opaque identifier for nodes and ports. Equality is
// bitwise, matching the value semantics of uuid.UUID.
type ID uuid.UUID

// Nil is the zero-value ID, used to represent "no source" / "not yet
// assigned" rather than a sentinel string.
var Nil = ID(uuid.Nil)

// New generates a fresh random ID.
func New() ID {
	return ID(uuid.New())
}

// Parse decodes the canonical hyphenated-hex textual form. It fails with
// ErrBadIdentifier (wrapping the underlying parse error) if s is not in
// canonical form.
func Parse(s string) (ID, error) {
	if len(s) != 36 {
		return Nil, badIdentifier(s, errors.New("not the 36-character hyphenated form"))
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return Nil, badIdentifier(s, err)
	}
	return ID(u), nil
}

// String renders the canonical textual form.
func (i ID) String() string {
	return uuid.UUID(i).String()
}

// IsNil reports whether i is the zero value.
func (i ID) IsNil() bool {
	return i == Nil
}

// MarshalJSON renders the ID as its canonical JSON string form.
func (i ID) MarshalJSON() ([]byte, error) {
	return uuid.UUID(i).MarshalJSON()
}

// UnmarshalJSON parses the canonical JSON string form, failing with
// ErrBadIdentifier on malformed input.
func (i *ID) UnmarshalJSON(data []byte) error {
	var u uuid.UUID
	if err := u.UnmarshalJSON(data); err != nil {
		return badIdentifier(string(data), err)
	}
	*i = ID(u)
	return nil
}
