package minidom

import (
	"errors"
	"fmt"
)

var (
	// ErrUnexpectedEndOfStream is returned when the event stream ends
	// while elements are still open, or before any root element opened.
	// Inspect with errors.Is; the returned error usually carries extra
	// context about which element was left open.
	ErrUnexpectedEndOfStream = errors.New("unexpected end of stream")

	// ErrMultipleRoots is returned when non-whitespace content appears
	// at the top level outside the single root element.
	ErrMultipleRoots = errors.New("content outside the document root")

	// ErrDisallowedComment is returned when a comment is encountered
	// while WithRejectComments(true) is in effect.
	ErrDisallowedComment = errors.New("comments are not allowed")
)

// MalformedNestingError is returned when an end tag does not close the
// element that is currently open. Expected is the qualified name of the
// open element; Name is the raw end tag as spelled in the document, and
// may be empty when the end tag appeared with nothing open at all.
type MalformedNestingError struct {
	Expected QName
	Name     string
}

func (e MalformedNestingError) Error() string {
	if e.Name == "" {
		return "end tag with no open element"
	}
	return fmt.Sprintf(`end tag "%s" does not close element %s`, e.Name, e.Expected)
}

// DuplicateAttributeError is returned when an element declares the same
// resolved attribute name twice. Namespace declarations count too, in
// which case Name is in the reserved xmlns namespace.
type DuplicateAttributeError struct {
	Name QName
}

func (e DuplicateAttributeError) Error() string {
	return fmt.Sprintf("duplicate attribute %s", e.Name)
}

// UnboundPrefixError is returned when a tag or attribute name uses a
// prefix with no binding in scope.
type UnboundPrefixError struct {
	Prefix string
}

func (e UnboundPrefixError) Error() string {
	return fmt.Sprintf(`prefix "%s" is not bound to a namespace`, e.Prefix)
}

// InvalidNamespaceDeclarationError is returned when a declaration tries
// to rebind the reserved "xml" or "xmlns" prefixes, or to bind any
// prefix to the reserved xmlns namespace URI.
type InvalidNamespaceDeclarationError struct {
	Prefix string
	URI    string
}

func (e InvalidNamespaceDeclarationError) Error() string {
	if e.Prefix == "" {
		return fmt.Sprintf(`invalid default namespace declaration "%s"`, e.URI)
	}
	return fmt.Sprintf(`invalid namespace declaration xmlns:%s="%s"`, e.Prefix, e.URI)
}

// UnserializableCommentError is returned at serialize time for a comment
// whose content cannot be represented in the XML comment syntax.
type UnserializableCommentError struct {
	Content string
}

func (e UnserializableCommentError) Error() string {
	return fmt.Sprintf(`comment cannot be serialized: "%s"`, e.Content)
}
