package registry

import (
	"errors"
	"reflect"
	"testing"

	"github.com/arjunv/flowgraph/pkg/pnode"
)

type stubNode struct {
	*pnode.Base
}

func newStubNode() pnode.Node {
	return &stubNode{Base: pnode.NewBase()}
}

type otherStubNode struct {
	*pnode.Base
}

func newOtherStubNode() pnode.Node {
	return &otherStubNode{Base: pnode.NewBase()}
}

func TestRegisterAndCreate(t *testing.T) {
	r := New()
	if err := r.Register("stub", newStubNode); err != nil {
		t.Fatalf("Register: %v", err)
	}

	n, err := r.Create("stub")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, ok := n.(*stubNode); !ok {
		t.Fatalf("Create() returned %T, want *stubNode", n)
	}
}

func TestCreateUnregisteredTag(t *testing.T) {
	r := New()
	_, err := r.Create("missing")
	if !errors.Is(err, ErrUnknownType) {
		t.Fatalf("Create() err = %v, want ErrUnknownType", err)
	}
}

func TestRegisterSameTagSameTypeIsIdempotent(t *testing.T) {
	r := New()
	if err := r.Register("stub", newStubNode); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	if err := r.Register("stub", newStubNode); err != nil {
		t.Fatalf("re-registering identical tag/type should succeed: %v", err)
	}
}

func TestRegisterSameTagDifferentTypeFails(t *testing.T) {
	r := New()
	if err := r.Register("stub", newStubNode); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	err := r.Register("stub", newOtherStubNode)
	if !errors.Is(err, ErrDuplicateRegistration) {
		t.Fatalf("Register() err = %v, want ErrDuplicateRegistration", err)
	}
}

func TestRegisterSameTypeDifferentTagFails(t *testing.T) {
	r := New()
	if err := r.Register("stub", newStubNode); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	err := r.Register("stub2", newStubNode)
	if !errors.Is(err, ErrDuplicateRegistration) {
		t.Fatalf("Register() err = %v, want ErrDuplicateRegistration", err)
	}
}

func TestTagOf(t *testing.T) {
	r := New()
	if err := r.Register("stub", newStubNode); err != nil {
		t.Fatalf("Register: %v", err)
	}

	tag, err := r.TagOf(reflect.TypeOf(&stubNode{}))
	if err != nil {
		t.Fatalf("TagOf: %v", err)
	}
	if tag != "stub" {
		t.Fatalf("TagOf() = %q, want %q", tag, "stub")
	}

	if _, err := r.TagOf(reflect.TypeOf(&otherStubNode{})); !errors.Is(err, ErrUnregisteredType) {
		t.Fatalf("TagOf(unregistered) err = %v, want ErrUnregisteredType", err)
	}
}

func TestDeregister(t *testing.T) {
	r := New()
	if err := r.Register("stub", newStubNode); err != nil {
		t.Fatalf("Register: %v", err)
	}
	r.Deregister("stub")

	if _, err := r.Create("stub"); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("Create() after Deregister err = %v, want ErrUnknownType", err)
	}
	r.Deregister("stub") // idempotent
}

func TestDeregisterType(t *testing.T) {
	r := New()
	if err := r.Register("stub", newStubNode); err != nil {
		t.Fatalf("Register: %v", err)
	}
	typ := reflect.TypeOf(&stubNode{})

	if err := r.DeregisterType(typ); err != nil {
		t.Fatalf("DeregisterType: %v", err)
	}
	if err := r.DeregisterType(typ); !errors.Is(err, ErrUnregisteredType) {
		t.Fatalf("second DeregisterType err = %v, want ErrUnregisteredType", err)
	}
}
