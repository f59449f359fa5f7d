package registry

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrDuplicateRegistration is returned by Register when tag is already
// bound to a different concrete type, or when the constructor's type is
// already bound under a different tag.
var ErrDuplicateRegistration = errors.New("registry: duplicate registration")

// ErrUnknownType is returned by Create when tag has no bound
// constructor.
var ErrUnknownType = errors.New("registry: unknown tag")

// ErrUnregisteredType is returned by DeregisterType/TagOf when no tag
// is bound to the given type.
var ErrUnregisteredType = errors.New("registry: unregistered type")

func duplicateRegistration(tag string, existing, attempted reflect.Type) error {
	return fmt.Errorf("%w: tag %q already bound to %s, got %s", ErrDuplicateRegistration, tag, existing, attempted)
}

func unknownType(tag string) error {
	return fmt.Errorf("%w: %q", ErrUnknownType, tag)
}

func unregisteredType(t reflect.Type) error {
	return fmt.Errorf("%w: %s", ErrUnregisteredType, t)
}
