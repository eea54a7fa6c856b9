package minidom

import "github.com/lestrrat-go/option"

type Option = option.Interface

type identDefaultNamespace struct{}
type identEncoding struct{}
type identPrefixes struct{}
type identRejectComments struct{}

// ParseOption is an option accepted by Parse, ParseReader, ParseString
// and NewTreeBuilder.
type ParseOption interface {
	Option
	parseOption()
}

type parseOption struct{ Option }

func (*parseOption) parseOption() {}

// WithRejectComments makes comment events a fatal parse error instead
// of storing Comment nodes.
func WithRejectComments(v bool) ParseOption {
	return &parseOption{option.New(identRejectComments{}, v)}
}

// WithDefaultNamespace seeds the root scope's default binding before
// parsing begins, for fragments whose enclosing context is implied but
// not textually present.
func WithDefaultNamespace(uri string) ParseOption {
	return &parseOption{option.New(identDefaultNamespace{}, uri)}
}

// WithPrefixes seeds arbitrary prefix bindings into the root scope, as
// if they had been declared on an enclosing element outside the input.
// The empty prefix stands for the default namespace.
func WithPrefixes(prefixes map[string]string) ParseOption {
	return &parseOption{option.New(identPrefixes{}, prefixes)}
}

// WithEncoding forces the input encoding, bypassing BOM sniffing and
// the XML declaration. Only meaningful for the Parse entry points; the
// tree builder itself never sees bytes.
func WithEncoding(name string) ParseOption {
	return &parseOption{option.New(identEncoding{}, name)}
}
