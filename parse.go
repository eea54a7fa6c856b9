package minidom

import (
	"io"

	"github.com/pkg/errors"

	"github.com/lestrrat-go/minidom/token"
)

// Parse materializes the XML document in data into an Element tree.
// Tokenizer errors are passed through as-is; structural errors are the
// typed errors of this package.
func Parse(data []byte, options ...ParseOption) (*Element, error) {
	var ropts []token.ReaderOption
	for _, o := range options {
		if o.Ident() == (identEncoding{}) {
			ropts = append(ropts, token.WithEncoding(o.Value().(string)))
		}
	}

	rdr, err := token.NewReader(data, ropts...)
	if err != nil {
		return nil, err
	}
	tb, err := NewTreeBuilder(options...)
	if err != nil {
		return nil, err
	}

	for {
		ev, err := rdr.Next()
		if err != nil {
			if err == io.EOF {
				return tb.Close()
			}
			return nil, err
		}
		if err := tb.HandleEvent(ev); err != nil {
			return nil, err
		}
	}
}

// ParseString is Parse for string input.
func ParseString(s string, options ...ParseOption) (*Element, error) {
	return Parse([]byte(s), options...)
}

// ParseReader reads src to completion and parses it. The tree is always
// materialized in full before it is returned; there is no streaming
// mode.
func ParseReader(src io.Reader, options ...ParseOption) (*Element, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read input")
	}
	return Parse(data, options...)
}
