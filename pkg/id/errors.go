package id

import (
	"errors"
	"fmt"
)

// ErrBadIdentifier is returned when a string does not parse as a
// canonical UUID. Use errors.Is to test for it; the returned error
// wraps the input and the underlying parse failure for diagnostics.
var ErrBadIdentifier = errors.New("id: bad identifier")

func badIdentifier(input string, cause error) error {
	return fmt.Errorf("%w: %q: %v", ErrBadIdentifier, input, cause)
}
