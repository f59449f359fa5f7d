package nodes

import (
	"golang.org/x/text/language"

	"github.com/arjunv/flowgraph/pkg/pnode"
	"github.com/arjunv/flowgraph/pkg/registry"
)

var defaultLocale = language.English

// Register binds every node variant in this package to a stable tag
// on reg. It is an explicit call, not an init() side effect, per the
// process-wide registry design note: callers control when and in what
// order node types become known.
func Register(reg *registry.Registry) error {
	bindings := []struct {
		tag  string
		ctor registry.Constructor
	}{
		{"flowgraph.int_source", func() pnode.Node { return NewIntSource(0) }},
		{"flowgraph.int_sink", func() pnode.Node { return NewIntSink() }},
		{"flowgraph.float_source", func() pnode.Node { return NewFloatSource(0) }},
		{"flowgraph.adder", func() pnode.Node { return NewAdder() }},
		{"flowgraph.failer", func() pnode.Node { return NewFailer() }},
		{"flowgraph.expression", func() pnode.Node { return NewExpression("") }},
		{"flowgraph.text_transform", func() pnode.Node { return NewTextTransform(TextCaseUpper, defaultLocale) }},
	}

	for _, b := range bindings {
		if err := reg.Register(b.tag, b.ctor); err != nil {
			return err
		}
	}
	return nil
}
