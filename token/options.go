package token

import "github.com/lestrrat-go/option"

type Option = option.Interface

type identEncoding struct{}
type identMaxAttrs struct{}
type identMaxDepth struct{}

// ReaderOption is an option that can be passed to NewReader.
type ReaderOption interface {
	Option
	readerOption()
}

type readerOption struct{ Option }

func (*readerOption) readerOption() {}

// WithEncoding forces the input encoding instead of relying on BOM
// sniffing and the XML declaration. The name must be one understood by
// the internal encoding registry (e.g. "utf-8", "utf16le", "iso-8859-1").
func WithEncoding(v string) ReaderOption {
	return &readerOption{option.New(identEncoding{}, v)}
}

// WithMaxDepth caps element nesting. Zero means the default (256).
func WithMaxDepth(v int) ReaderOption {
	return &readerOption{option.New(identMaxDepth{}, v)}
}

// WithMaxAttrs caps the number of attributes on a single start tag.
// Zero means the default (256).
func WithMaxAttrs(v int) ReaderOption {
	return &readerOption{option.New(identMaxAttrs{}, v)}
}
