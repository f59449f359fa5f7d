package registry

import (
	"reflect"
	"sync"

	"github.com/arjunv/flowgraph/pkg/pnode"
)

// Constructor builds a fresh, zero-valued node instance.
type Constructor func() pnode.Node

type entry struct {
	tag  string
	ctor Constructor
	typ  reflect.Type
}

// Registry maps string tags to node constructors, and the reverse:
// concrete node types back to their tag, so a Graph can round-trip a
// document without a type switch over every known node kind.
type Registry struct {
	mu     sync.RWMutex
	byTag  map[string]entry
	byType map[reflect.Type]string
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{
		byTag:  make(map[string]entry),
		byType: make(map[reflect.Type]string),
	}
}

var (
	defaultMu  sync.Mutex
	defaultReg *Registry
)

// Default returns the process-wide Registry, creating it on first use.
// Node packages call Register against it from an explicit
// registration function, never from an init() (spec design note 9).
func Default() *Registry {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultReg == nil {
		defaultReg = New()
	}
	return defaultReg
}

// Register binds tag to ctor. Re-registering the same tag with a
// constructor that produces the same concrete type is a no-op
// success. Binding the same tag to a different type, or binding a
// type that is already registered under a different tag, fails with
// ErrDuplicateRegistration.
func (r *Registry) Register(tag string, ctor Constructor) error {
	sample := ctor()
	typ := reflect.TypeOf(sample)

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byTag[tag]; ok {
		if existing.typ == typ {
			return nil
		}
		return duplicateRegistration(tag, existing.typ, typ)
	}
	if existingTag, ok := r.byType[typ]; ok && existingTag != tag {
		return duplicateRegistration(existingTag, typ, typ)
	}

	r.byTag[tag] = entry{tag: tag, ctor: ctor, typ: typ}
	r.byType[typ] = tag
	return nil
}

// Deregister removes tag, if present. It is a no-op on an unknown tag.
func (r *Registry) Deregister(tag string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.byTag[tag]
	if !ok {
		return
	}
	delete(r.byTag, tag)
	delete(r.byType, e.typ)
}

// DeregisterType removes whatever tag is bound to t. It fails with
// ErrUnregisteredType if t has no binding.
func (r *Registry) DeregisterType(t reflect.Type) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tag, ok := r.byType[t]
	if !ok {
		return unregisteredType(t)
	}
	delete(r.byType, t)
	delete(r.byTag, tag)
	return nil
}

// Create constructs a fresh node for tag. It fails with
// ErrUnknownType if tag has no binding (spec 4.C).
func (r *Registry) Create(tag string) (pnode.Node, error) {
	r.mu.RLock()
	e, ok := r.byTag[tag]
	r.mu.RUnlock()

	if !ok {
		return nil, unknownType(tag)
	}
	return e.ctor(), nil
}

// TagOf returns the tag bound to t. It fails with ErrUnregisteredType
// if t has no binding (spec 4.C) — t is a live node's concrete type
// that was never passed to Register.
func (r *Registry) TagOf(t reflect.Type) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tag, ok := r.byType[t]
	if !ok {
		return "", unregisteredType(t)
	}
	return tag, nil
}

// Tags returns every registered tag, in no particular order.
func (r *Registry) Tags() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tags := make([]string, 0, len(r.byTag))
	for tag := range r.byTag {
		tags = append(tags, tag)
	}
	return tags
}
