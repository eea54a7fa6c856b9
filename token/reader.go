package token

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/lestrrat-go/pdebug"
	"github.com/lestrrat-go/strcursor"
	"github.com/pkg/errors"

	"github.com/lestrrat-go/minidom/internal/encoding"
)

const (
	defaultMaxDepth = 256
	defaultMaxAttrs = 256
)

// byte order mark patterns, longest first
var (
	patUTF8      = []byte{0xEF, 0xBB, 0xBF}
	patUTF16LE2B = []byte{0xFF, 0xFE}
	patUTF16BE2B = []byte{0xFE, 0xFF}
)

// ParseError is the error type returned by Reader for malformed input.
// It carries the location the cursor was at when the problem was found.
type ParseError struct {
	Err        error
	Line       string
	LineNumber int
	Column     int
	Offset     int
}

func (e ParseError) Error() string {
	return fmt.Sprintf(
		"%s at line %d, column %d\n -> '%s' <-- around here",
		e.Err,
		e.LineNumber,
		e.Column,
		e.Line,
	)
}

func (e ParseError) Unwrap() error {
	return e.Err
}

// Reader tokenizes a complete XML document held in memory. Use Next to
// pull events one at a time; Next returns io.EOF once the input is
// exhausted. Reader performs no well-formedness checking beyond the
// token level: matching of start and end tags is the consumer's job.
type Reader struct {
	cur      strcursor.Cursor
	raw      []byte // input backing cur, for re-decoding after the XML decl
	pending  []*Event // queued end events for self-closing tags
	err      error
	encoding string
	sawDecl  bool
	started  bool
	depth    int
	maxDepth int
	maxAttrs int
}

// NewReader creates a Reader over data. The encoding is sniffed from a
// byte order mark if present, then from the XML declaration; both can be
// overridden with WithEncoding.
func NewReader(data []byte, options ...ReaderOption) (*Reader, error) {
	r := &Reader{
		maxDepth: defaultMaxDepth,
		maxAttrs: defaultMaxAttrs,
	}

	var forced string
	for _, o := range options {
		switch o.Ident() {
		case identEncoding{}:
			forced = o.Value().(string)
		case identMaxDepth{}:
			if v := o.Value().(int); v > 0 {
				r.maxDepth = v
			}
		case identMaxAttrs{}:
			if v := o.Value().(int); v > 0 {
				r.maxAttrs = v
			}
		}
	}

	if forced == "" {
		switch {
		case hasPat(data, patUTF8):
			// already in our native encoding, just drop the BOM
			data = data[len(patUTF8):]
			r.encoding = "utf-8"
		case hasPat(data, patUTF16LE2B):
			forced = "utf16le"
		case hasPat(data, patUTF16BE2B):
			forced = "utf16be"
		}
	}
	if forced != "" {
		decoded, err := transcode(forced, data)
		if err != nil {
			return nil, err
		}
		data = decoded
		r.encoding = forced
	}

	r.raw = data
	r.cur = strcursor.NewRuneCursor(bytes.NewReader(data))
	return r, nil
}

func hasPat(data, pat []byte) bool {
	if len(data) < len(pat) {
		return false
	}
	for i, b := range pat {
		if data[i] != b {
			return false
		}
	}
	return true
}

func transcode(name string, data []byte) ([]byte, error) {
	enc := encoding.Load(name)
	if enc == nil {
		return nil, errors.Errorf(`encoding "%s" not supported`, name)
	}
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return nil, errors.Wrapf(err, `failed to decode input as "%s"`, name)
	}
	return decoded, nil
}

// Encoding reports the encoding the input was decoded from. Empty means
// the input was consumed as-is (UTF-8).
func (r *Reader) Encoding() string {
	return r.encoding
}

func (r *Reader) error(err error) error {
	if _, ok := err.(ParseError); ok {
		r.err = err
		return err
	}
	perr := ParseError{
		Err:        err,
		Line:       r.cur.Line(),
		LineNumber: r.cur.LineNumber(),
		Column:     r.cur.Column(),
	}
	r.err = perr
	return perr
}

// Next returns the next event, or io.EOF when the input is exhausted.
// Once Next returns a non-EOF error, every subsequent call returns the
// same error.
func (r *Reader) Next() (*Event, error) {
	if r.err != nil {
		return nil, r.err
	}

	if len(r.pending) > 0 {
		ev := r.pending[0]
		r.pending = r.pending[1:]
		return ev, nil
	}

	if !r.started {
		r.started = true
		if err := r.handleProlog(); err != nil {
			return nil, err
		}
	}

	for {
		if r.cur.Done() {
			return nil, io.EOF
		}

		if r.cur.Peek() != '<' {
			return r.parseText()
		}

		switch {
		case r.cur.HasPrefixString("<!--"):
			return r.parseComment()
		case r.cur.HasPrefixString("<![CDATA["):
			return r.parseCDATA()
		case r.cur.HasPrefixString("<!DOCTYPE"):
			return nil, r.error(errors.New("DOCTYPE is not supported"))
		case r.cur.HasPrefixString("<?"):
			// processing instructions carry no content model here
			if err := r.skipPI(); err != nil {
				return nil, err
			}
			continue
		case r.cur.HasPrefixString("</"):
			return r.parseEndTag()
		default:
			return r.parseStartTag()
		}
	}
}

// handleProlog consumes the XML declaration if present, and switches
// the cursor to the declared encoding.
func (r *Reader) handleProlog() error {
	if !r.cur.HasPrefixString("<?xml") {
		return nil
	}
	// "<?xml-stylesheet" and friends are ordinary PIs
	if c := r.cur.PeekN(6); isNameChar(c) || c == '-' {
		return nil
	}

	r.cur.Advance(5)
	declared := ""
	for {
		r.skipBlanks()
		if r.cur.Done() {
			return r.error(errors.New("unterminated XML declaration"))
		}
		if r.cur.ConsumeString("?>") {
			break
		}
		name, err := r.parseName()
		if err != nil {
			return err
		}
		r.skipBlanks()
		if !r.cur.ConsumeString("=") {
			return r.error(errors.Errorf(`expected '=' after "%s" in XML declaration`, name))
		}
		r.skipBlanks()
		value, err := r.parseQuoted()
		if err != nil {
			return err
		}
		if name == "encoding" {
			declared = value
		}
	}
	r.sawDecl = true

	if declared == "" || r.encoding != "" {
		// either nothing declared, or a BOM / explicit option already
		// settled the question
		return nil
	}

	if strings.EqualFold(declared, "utf-8") || strings.EqualFold(declared, "utf8") {
		r.encoding = declared
		return nil
	}

	if pdebug.Enabled {
		pdebug.Printf("token.Reader: switching encoding to %s", declared)
	}
	// the cursor cannot hand back unconsumed raw bytes, so slice the
	// original input just past the declaration we consumed above
	rest := r.raw
	if idx := bytes.Index(rest, []byte("?>")); idx >= 0 {
		rest = rest[idx+2:]
	}
	decoded, err := transcode(declared, rest)
	if err != nil {
		return r.error(err)
	}
	r.cur = strcursor.NewRuneCursor(bytes.NewReader(decoded))
	r.encoding = declared
	return nil
}

func (r *Reader) skipPI() error {
	r.cur.Advance(2)
	for !r.cur.ConsumeString("?>") {
		if r.cur.Done() {
			return r.error(errors.New("unterminated processing instruction"))
		}
		r.cur.Advance(1)
	}
	return nil
}

func (r *Reader) parseText() (*Event, error) {
	var buf strings.Builder
	for !r.cur.Done() {
		c := r.cur.Peek()
		if c == '<' {
			break
		}
		if c == '&' {
			decoded, err := r.parseReference()
			if err != nil {
				return nil, err
			}
			buf.WriteString(decoded)
			continue
		}
		buf.WriteRune(c)
		r.cur.Advance(1)
	}
	return &Event{Type: TextEvent, Text: buf.String()}, nil
}

func (r *Reader) parseComment() (*Event, error) {
	r.cur.Advance(4)
	var buf strings.Builder
	for !r.cur.HasPrefixString("-->") {
		if r.cur.Done() {
			return nil, r.error(errors.New("unterminated comment"))
		}
		buf.WriteRune(r.cur.Peek())
		r.cur.Advance(1)
	}
	r.cur.Advance(3)
	return &Event{Type: CommentEvent, Text: buf.String()}, nil
}

// parseCDATA returns the section content as a text event, verbatim:
// no reference decoding happens inside CDATA.
func (r *Reader) parseCDATA() (*Event, error) {
	r.cur.Advance(9)
	var buf strings.Builder
	for !r.cur.HasPrefixString("]]>") {
		if r.cur.Done() {
			return nil, r.error(errors.New("unterminated CDATA section"))
		}
		buf.WriteRune(r.cur.Peek())
		r.cur.Advance(1)
	}
	r.cur.Advance(3)
	return &Event{Type: TextEvent, Text: buf.String()}, nil
}

func (r *Reader) parseStartTag() (*Event, error) {
	if pdebug.Enabled {
		g := pdebug.Marker("token.Reader.parseStartTag")
		defer g.End()
	}

	r.cur.Advance(1) // '<'
	name, err := r.parseName()
	if err != nil {
		return nil, err
	}

	var attrs []Attr
	for {
		r.skipBlanks()
		if r.cur.Done() {
			return nil, r.error(errors.Errorf(`unterminated start tag "%s"`, name))
		}

		if r.cur.ConsumeString("/>") {
			ev := &Event{Type: StartElementEvent, Name: name, Attrs: attrs}
			r.pending = append(r.pending, &Event{Type: EndElementEvent, Name: name})
			return ev, nil
		}
		if r.cur.ConsumeString(">") {
			r.depth++
			if r.depth > r.maxDepth {
				return nil, r.error(errors.Errorf("element nesting deeper than %d", r.maxDepth))
			}
			return &Event{Type: StartElementEvent, Name: name, Attrs: attrs}, nil
		}

		aname, err := r.parseName()
		if err != nil {
			return nil, err
		}
		r.skipBlanks()
		if !r.cur.ConsumeString("=") {
			return nil, r.error(errors.Errorf(`expected '=' after attribute "%s"`, aname))
		}
		r.skipBlanks()
		value, err := r.parseQuoted()
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, Attr{Name: aname, Value: value})
		if len(attrs) > r.maxAttrs {
			return nil, r.error(errors.Errorf("more than %d attributes on a single element", r.maxAttrs))
		}
	}
}

func (r *Reader) parseEndTag() (*Event, error) {
	r.cur.Advance(2) // "</"
	name, err := r.parseName()
	if err != nil {
		return nil, err
	}
	r.skipBlanks()
	if !r.cur.ConsumeString(">") {
		return nil, r.error(errors.Errorf(`malformed end tag "%s"`, name))
	}
	if r.depth > 0 {
		r.depth--
	}
	return &Event{Type: EndElementEvent, Name: name}, nil
}

func (r *Reader) parseName() (string, error) {
	if r.cur.Done() || !isNameStartChar(r.cur.Peek()) {
		return "", r.error(errors.New("expected a name"))
	}
	var buf strings.Builder
	buf.WriteRune(r.cur.Peek())
	r.cur.Advance(1)
	for !r.cur.Done() && isNameChar(r.cur.Peek()) {
		buf.WriteRune(r.cur.Peek())
		r.cur.Advance(1)
	}
	return buf.String(), nil
}

func (r *Reader) parseQuoted() (string, error) {
	if r.cur.Done() {
		return "", r.error(errors.New("expected a quoted value"))
	}
	q := r.cur.Peek()
	if q != '"' && q != '\'' {
		return "", r.error(errors.New("attribute value is not quoted"))
	}
	r.cur.Advance(1)

	var buf strings.Builder
	for {
		if r.cur.Done() {
			return "", r.error(errors.New("unterminated attribute value"))
		}
		c := r.cur.Peek()
		if c == q {
			r.cur.Advance(1)
			return buf.String(), nil
		}
		if c == '<' {
			return "", r.error(errors.New("'<' is not allowed in attribute values"))
		}
		if c == '&' {
			decoded, err := r.parseReference()
			if err != nil {
				return "", err
			}
			buf.WriteString(decoded)
			continue
		}
		buf.WriteRune(c)
		r.cur.Advance(1)
	}
}

var predefinedEntities = map[string]string{
	"lt":   "<",
	"gt":   ">",
	"amp":  "&",
	"apos": "'",
	"quot": `"`,
}

// parseReference decodes a predefined entity reference or a decimal/hex
// character reference. The cursor is positioned on '&'.
func (r *Reader) parseReference() (string, error) {
	r.cur.Advance(1)

	var charref bool
	var hex bool
	switch {
	case r.cur.ConsumeString("#x"):
		charref, hex = true, true
	case r.cur.ConsumeString("#"):
		charref = true
	}

	var buf strings.Builder
	for {
		if r.cur.Done() {
			return "", r.error(errors.New("unterminated entity reference"))
		}
		c := r.cur.Peek()
		if c == ';' {
			r.cur.Advance(1)
			break
		}
		buf.WriteRune(c)
		r.cur.Advance(1)
	}

	if charref {
		return decodeCharRef(buf.String(), hex, r)
	}

	if s, ok := predefinedEntities[buf.String()]; ok {
		return s, nil
	}
	return "", r.error(errors.Errorf(`undefined entity "&%s;"`, buf.String()))
}

func decodeCharRef(digits string, hex bool, r *Reader) (string, error) {
	if digits == "" {
		return "", r.error(errors.New("empty character reference"))
	}
	var val int32
	var err error
	for _, c := range digits {
		if hex {
			val, err = accumulateHexCharRef(val, c)
		} else {
			val, err = accumulateDecimalCharRef(val, c)
		}
		if err != nil {
			return "", r.error(err)
		}
	}
	if !isChar(val) {
		return "", r.error(errors.Errorf("character reference out of range: %d", val))
	}
	return string(rune(val)), nil
}

func accumulateDecimalCharRef(val int32, c rune) (int32, error) {
	if c >= '0' && c <= '9' {
		val = val*10 + (c - '0')
	} else {
		return 0, errors.New("invalid decimal character reference")
	}
	return val, nil
}

func accumulateHexCharRef(val int32, c rune) (int32, error) {
	if c >= '0' && c <= '9' {
		val = val*16 + (c - '0')
	} else if c >= 'a' && c <= 'f' {
		val = val*16 + (c - 'a') + 10
	} else if c >= 'A' && c <= 'F' {
		val = val*16 + (c - 'A') + 10
	} else {
		return 0, errors.New("invalid hex character reference")
	}
	return val, nil
}

func (r *Reader) skipBlanks() {
	for !r.cur.Done() && isBlankCh(r.cur.Peek()) {
		r.cur.Advance(1)
	}
}

func isBlankCh(c rune) bool {
	return c == 0x20 || (0x9 <= c && c <= 0xa) || c == 0xd
}

func isChar(v int32) bool {
	return v == 0x9 || v == 0xa || v == 0xd ||
		(v >= 0x20 && v <= 0xd7ff) ||
		(v >= 0xe000 && v <= 0xfffd) ||
		(v >= 0x10000 && v <= 0x10ffff)
}

func isNameStartChar(c rune) bool {
	return c == '_' || c == ':' || unicode.IsLetter(c)
}

func isNameChar(c rune) bool {
	return isNameStartChar(c) || c == '-' || c == '.' || unicode.IsDigit(c)
}
