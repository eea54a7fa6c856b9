package minidom

import (
	"strings"

	"github.com/lestrrat-go/pdebug"
	"github.com/pkg/errors"

	"github.com/lestrrat-go/minidom/token"
)

type builderState int

const (
	stateAwaitingRoot builderState = iota
	stateInElement
	stateDone
	stateFailed
)

// frame is one open element: the partially built node plus the pending
// run of text tokens, coalesced into a single Text child at the next
// non-text event.
type frame struct {
	elem *Element
	text strings.Builder
}

// TreeBuilder consumes a flat stream of token events and assembles an
// Element tree. It is an explicit state machine so it can be driven from
// any event-delivery discipline: feed events with HandleEvent, then call
// Close when the stream ends.
//
// Every error is fatal: once HandleEvent returns non-nil the builder
// stays failed and the partially built tree is discarded.
type TreeBuilder struct {
	state          builderState
	stack          []*frame
	root           *Element
	err            error
	scope          *NamespaceSet
	rejectComments bool
}

// NewTreeBuilder creates a builder. WithDefaultNamespace and
// WithPrefixes seed the outermost scope; WithRejectComments makes
// comments fatal.
func NewTreeBuilder(options ...ParseOption) (*TreeBuilder, error) {
	seeded := make(map[string]string)
	t := &TreeBuilder{scope: rootSet}
	for _, o := range options {
		switch o.Ident() {
		case identRejectComments{}:
			t.rejectComments = o.Value().(bool)
		case identDefaultNamespace{}:
			seeded[""] = o.Value().(string)
		case identPrefixes{}:
			for p, u := range o.Value().(map[string]string) {
				seeded[p] = u
			}
		}
	}
	scope, err := rootSet.ChildWith(seeded)
	if err != nil {
		return nil, err
	}
	t.scope = scope
	return t, nil
}

// Depth reports how many elements are currently open.
func (t *TreeBuilder) Depth() int {
	return len(t.stack)
}

// fail latches err as the builder's terminal state.
func (t *TreeBuilder) fail(err error) error {
	t.state = stateFailed
	t.err = err
	return err
}

// HandleEvent advances the state machine by one event.
func (t *TreeBuilder) HandleEvent(ev *token.Event) error {
	if pdebug.Enabled {
		g := pdebug.Marker("TreeBuilder.HandleEvent %s", ev.Type)
		defer g.End()
	}

	if t.state == stateFailed {
		return t.err
	}

	switch ev.Type {
	case token.StartElementEvent:
		return t.startElement(ev.Name, ev.Attrs)
	case token.EndElementEvent:
		return t.endElement(ev.Name)
	case token.TextEvent:
		return t.text(ev.Text)
	case token.CommentEvent:
		return t.comment(ev.Text)
	default:
		return t.fail(errors.Errorf("unexpected event %s", ev.Type))
	}
}

func (t *TreeBuilder) top() *frame {
	return t.stack[len(t.stack)-1]
}

// flushText turns the frame's pending text run into a Text child.
func (t *TreeBuilder) flushText(f *frame) {
	if f.text.Len() == 0 {
		return
	}
	f.elem.children = append(f.elem.children, NewText(f.text.String()))
	f.text.Reset()
}

// startElement implements the resolution order of "Namespaces in XML
// 1.0": partition the raw attributes into declarations and
// ordinary attributes, build this element's scope from parent plus
// declarations, then resolve the element's own name and every ordinary
// attribute against that just-built scope. Unprefixed attributes are in
// no namespace; the default namespace does not apply to them.
func (t *TreeBuilder) startElement(raw string, rawAttrs []token.Attr) error {
	if t.state == stateDone {
		return t.fail(errors.Wrapf(ErrMultipleRoots, `element "%s" after the root closed`, raw))
	}

	parentScope := t.scope
	if len(t.stack) > 0 {
		parentScope = t.top().elem.nsset
	}

	decls := make(map[string]string)
	ordinary := rawAttrs[:0:0]
	for _, attr := range rawAttrs {
		prefix, local := splitName(attr.Name)
		switch {
		case prefix == "" && local == xmlnsPrefix:
			if _, dup := decls[""]; dup {
				return t.fail(DuplicateAttributeError{Name: QName{URI: XMLNSNamespaceURI, Local: xmlnsPrefix}})
			}
			decls[""] = attr.Value
		case prefix == xmlnsPrefix:
			if _, dup := decls[local]; dup {
				return t.fail(DuplicateAttributeError{Name: QName{URI: XMLNSNamespaceURI, Local: local}})
			}
			decls[local] = attr.Value
		default:
			ordinary = append(ordinary, attr)
		}
	}

	nss, err := parentScope.ChildWith(decls)
	if err != nil {
		return t.fail(err)
	}

	name, err := resolveName(raw, nss, true)
	if err != nil {
		return t.fail(err)
	}

	elem := &Element{
		name:  name,
		attrs: make(map[QName]string, len(ordinary)),
		nsset: nss,
	}
	for _, attr := range ordinary {
		q, err := resolveName(attr.Name, nss, false)
		if err != nil {
			return t.fail(err)
		}
		if _, dup := elem.attrs[q]; dup {
			return t.fail(DuplicateAttributeError{Name: q})
		}
		elem.attrs[q] = attr.Value
	}

	if t.state == stateInElement {
		t.flushText(t.top())
	}
	t.stack = append(t.stack, &frame{elem: elem})
	t.state = stateInElement
	return nil
}

func (t *TreeBuilder) endElement(raw string) error {
	if t.state != stateInElement {
		return t.fail(MalformedNestingError{Name: raw})
	}

	f := t.top()
	t.flushText(f)

	name, err := resolveName(raw, f.elem.nsset, true)
	if err != nil {
		return t.fail(err)
	}
	if name != f.elem.name {
		return t.fail(MalformedNestingError{Expected: f.elem.name, Name: raw})
	}

	t.stack = t.stack[:len(t.stack)-1]
	if len(t.stack) == 0 {
		t.root = f.elem
		t.state = stateDone
		return nil
	}
	parent := t.top()
	parent.elem.children = append(parent.elem.children, f.elem)
	return nil
}

func (t *TreeBuilder) text(s string) error {
	switch t.state {
	case stateInElement:
		t.top().text.WriteString(s)
		return nil
	default:
		// whitespace around the root is fine, anything else violates
		// the single-root invariant
		if strings.TrimSpace(s) != "" {
			return t.fail(errors.Wrap(ErrMultipleRoots, "text at the top level"))
		}
		return nil
	}
}

func (t *TreeBuilder) comment(s string) error {
	if t.rejectComments {
		return t.fail(ErrDisallowedComment)
	}
	if t.state != stateInElement {
		// prolog / trailing comments are legal XML; nothing to attach
		// them to, so they are dropped
		return nil
	}
	f := t.top()
	t.flushText(f)
	f.elem.children = append(f.elem.children, NewComment(s))
	return nil
}

// Close signals end of stream and returns the finished tree.
func (t *TreeBuilder) Close() (*Element, error) {
	switch t.state {
	case stateDone:
		return t.root, nil
	case stateFailed:
		return nil, t.err
	case stateAwaitingRoot:
		return nil, t.fail(errors.Wrap(ErrUnexpectedEndOfStream, "empty document"))
	default:
		return nil, t.fail(errors.Wrapf(ErrUnexpectedEndOfStream, "element %s is not closed", t.top().elem.name))
	}
}

// resolveName resolves a raw, possibly prefixed name against scope.
// Element names pick up the default namespace; attribute names do not.
func resolveName(raw string, scope *NamespaceSet, isElement bool) (QName, error) {
	prefix, local := splitName(raw)
	if prefix == "" {
		if !isElement {
			return QName{Local: local}, nil
		}
		uri, _ := scope.Resolve("")
		return QName{URI: uri, Local: local}, nil
	}
	uri, ok := scope.Resolve(prefix)
	if !ok || prefix == xmlnsPrefix {
		return QName{}, UnboundPrefixError{Prefix: prefix}
	}
	return QName{URI: uri, Local: local}, nil
}

func splitName(raw string) (string, string) {
	if i := strings.IndexByte(raw, ':'); i >= 0 {
		return raw[:i], raw[i+1:]
	}
	return "", raw
}
