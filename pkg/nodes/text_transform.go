package nodes

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/arjunv/flowgraph/pkg/meta"
	"github.com/arjunv/flowgraph/pkg/pnode"
	"github.com/arjunv/flowgraph/pkg/port"
)

// TextCase selects the casing TextTransform applies.
type TextCase string

const (
	TextCaseUpper TextCase = "upper"
	TextCaseLower TextCase = "lower"
	TextCaseTitle TextCase = "title"
)

// TextTransform has one string input ("in") and one string output
// ("out"); its compute action applies a locale-aware case conversion
// via golang.org/x/text/cases. The selected case and locale are
// private state.
type TextTransform struct {
	*pnode.Base
	in  *port.In[string]
	out *port.Out[string]

	mode   TextCase
	locale language.Tag
}

// NewTextTransform constructs a TextTransform applying mode in the
// given BCP 47 locale tag (for example "en" or "tr").
func NewTextTransform(mode TextCase, locale language.Tag) *TextTransform {
	n := &TextTransform{
		Base:   pnode.NewBase(),
		in:     port.NewInput[string](),
		out:    port.NewOutput[string](),
		mode:   mode,
		locale: locale,
	}
	_ = n.RegisterInput("in", n.in)
	_ = n.RegisterOutput("out", n.out)
	n.SetCompute(n.compute)
	return n
}

func (n *TextTransform) compute() error {
	var caser cases.Caser
	switch n.mode {
	case TextCaseLower:
		caser = cases.Lower(n.locale)
	case TextCaseTitle:
		caser = cases.Title(n.locale)
	default:
		caser = cases.Upper(n.locale)
	}
	n.out.Set(caser.String(n.in.Value()))
	return nil
}

func (n *TextTransform) SerializePrivate(useCache bool, cacheDir string) (meta.Tree, error) {
	return meta.New().Set("mode", string(n.mode)).Set("locale", n.locale.String()), nil
}

func (n *TextTransform) DeserializePrivate(data meta.Tree, cacheDir string) error {
	if mode := data.String("mode"); mode != "" {
		n.mode = TextCase(mode)
	}
	if loc := data.String("locale"); loc != "" {
		tag, err := language.Parse(loc)
		if err == nil {
			n.locale = tag
		}
	}
	return nil
}
