package token

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// escaper covers the five XML-reserved characters. The Writer applies it
// to text content and attribute values; everything else is written out
// verbatim.
var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"'", "&apos;",
	`"`, "&quot;",
)

// Escape replaces the five XML-reserved characters with their entity
// forms.
func Escape(s string) string {
	return escaper.Replace(s)
}

// Writer is the low-level event sink. It buffers output, escapes text
// and attribute values, and collapses elements with no content into the
// self-closing form.
//
// Callers are expected to hand it a balanced event sequence; Writer does
// not verify that end names match start names.
type Writer struct {
	out     *bufio.Writer
	openTag bool
}

func NewWriter(out io.Writer) *Writer {
	return &Writer{out: bufio.NewWriter(out)}
}

// XMLDecl emits a leading XML declaration. version defaults to "1.0".
func (w *Writer) XMLDecl(version string) error {
	if version == "" {
		version = "1.0"
	}
	if _, err := w.out.WriteString(`<?xml version="` + version + `" encoding="utf-8"?>` + "\n"); err != nil {
		return errors.Wrap(err, "failed to write XML declaration")
	}
	return nil
}

// closePending finishes a start tag left open by StartElement.
func (w *Writer) closePending() error {
	if !w.openTag {
		return nil
	}
	w.openTag = false
	return w.out.WriteByte('>')
}

// StartElement writes the head of an element. The tag is left open so
// that an immediately following EndElement can collapse it to "<name/>".
func (w *Writer) StartElement(name string, attrs []Attr) error {
	if err := w.closePending(); err != nil {
		return err
	}
	if err := w.out.WriteByte('<'); err != nil {
		return err
	}
	if _, err := w.out.WriteString(name); err != nil {
		return err
	}
	for _, attr := range attrs {
		if _, err := w.out.WriteString(" " + attr.Name + `="` + Escape(attr.Value) + `"`); err != nil {
			return err
		}
	}
	w.openTag = true
	return nil
}

func (w *Writer) EndElement(name string) error {
	if w.openTag {
		w.openTag = false
		_, err := w.out.WriteString("/>")
		return err
	}
	_, err := w.out.WriteString("</" + name + ">")
	return err
}

func (w *Writer) Text(s string) error {
	if err := w.closePending(); err != nil {
		return err
	}
	_, err := w.out.WriteString(Escape(s))
	return err
}

// Comment writes s verbatim between comment delimiters. The caller is
// responsible for rejecting content that cannot appear in a comment.
func (w *Writer) Comment(s string) error {
	if err := w.closePending(); err != nil {
		return err
	}
	_, err := w.out.WriteString("<!--" + s + "-->")
	return err
}

func (w *Writer) Flush() error {
	if err := w.closePending(); err != nil {
		return err
	}
	return errors.Wrap(w.out.Flush(), "failed to flush output")
}
