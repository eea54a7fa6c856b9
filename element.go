package minidom

import (
	"sort"
	"strings"
)

// QName identifies an element or attribute by namespace URI and local
// name, independent of any prefix spelling. Two qualified names are
// equal iff both components are equal byte for byte.
type QName struct {
	URI   string
	Local string
}

func (q QName) String() string {
	if q.URI == "" {
		return q.Local
	}
	return "{" + q.URI + "}" + q.Local
}

// Attr is a resolved attribute: qualified name plus value. Note that
// per XML semantics an unprefixed attribute is in no namespace, even
// under a default namespace declaration.
type Attr struct {
	Name  QName
	Value string
}

// Element is a DOM element: a resolved qualified name, a set of
// resolved attributes, an ordered child list, and a reference to the
// namespace scope that was in effect when it was created. xmlns
// declarations are consumed into that scope and never appear among the
// attributes.
//
// An Element is freely mutable by the caller after construction.
// Mutation never touches the (shared, immutable) namespace scope; use
// DeclareNamespace or SetNS to change namespace state explicitly.
type Element struct {
	name     QName
	attrs    map[QName]string
	children []Node
	nsset    *NamespaceSet
}

// New creates a bare element with the given local name and namespace
// URI, declaring the URI as the element's default namespace.
func New(local, uri string) *Element {
	nss := rootSet
	if uri != "" {
		// cannot fail: "" prefix with a non-reserved URI
		nss, _ = rootSet.ChildWith(map[string]string{"": uri})
	}
	return &Element{
		name:  QName{URI: uri, Local: local},
		attrs: make(map[QName]string),
		nsset: nss,
	}
}

func (e *Element) Type() NodeType {
	return ElementNode
}

// Name returns the element's resolved qualified name.
func (e *Element) Name() QName {
	return e.name
}

// LocalName returns the local part of the element's name.
func (e *Element) LocalName() string {
	return e.name.Local
}

// NS returns the element's namespace URI. Empty means no namespace.
func (e *Element) NS() string {
	return e.name.URI
}

// SetNS changes the element's namespace URI. The namespace scope is not
// touched; if no prefix resolves to the new URI at serialize time, the
// serializer declares one.
func (e *Element) SetNS(uri string) {
	e.name.URI = uri
}

// Namespaces returns the element's namespace scope.
func (e *Element) Namespaces() *NamespaceSet {
	return e.nsset
}

// DeclareNamespace binds prefix to uri for this element and its
// descendants. The existing scope object is never mutated; the element
// swaps in a child scope, so siblings sharing the old scope are
// unaffected.
func (e *Element) DeclareNamespace(prefix, uri string) error {
	nss, err := e.nsset.ChildWith(map[string]string{prefix: uri})
	if err != nil {
		return err
	}
	e.nsset = nss
	return nil
}

// Attr returns the value of the attribute with the given local name in
// no namespace.
func (e *Element) Attr(local string) (string, bool) {
	return e.AttrNS("", local)
}

// AttrNS returns the value of the attribute with the given namespace
// URI and local name.
func (e *Element) AttrNS(uri, local string) (string, bool) {
	v, ok := e.attrs[QName{URI: uri, Local: local}]
	return v, ok
}

// SetAttr sets an attribute with the given local name in no namespace.
func (e *Element) SetAttr(local, value string) {
	e.SetAttrNS("", local, value)
}

// SetAttrNS sets an attribute by namespace URI and local name.
func (e *Element) SetAttrNS(uri, local, value string) {
	e.attrs[QName{URI: uri, Local: local}] = value
}

// RemoveAttr removes the attribute with the given local name in no
// namespace, reporting whether it was present.
func (e *Element) RemoveAttr(local string) bool {
	return e.RemoveAttrNS("", local)
}

func (e *Element) RemoveAttrNS(uri, local string) bool {
	q := QName{URI: uri, Local: local}
	if _, ok := e.attrs[q]; !ok {
		return false
	}
	delete(e.attrs, q)
	return true
}

// Attrs returns the element's attributes, sorted by namespace URI then
// local name so the result is stable.
func (e *Element) Attrs() []Attr {
	attrs := make([]Attr, 0, len(e.attrs))
	for q, v := range e.attrs {
		attrs = append(attrs, Attr{Name: q, Value: v})
	}
	sort.Slice(attrs, func(i, j int) bool {
		if attrs[i].Name.URI != attrs[j].Name.URI {
			return attrs[i].Name.URI < attrs[j].Name.URI
		}
		return attrs[i].Name.Local < attrs[j].Name.Local
	})
	return attrs
}

// Nodes returns the child list. The slice is the element's own backing
// store; do not reorder it behind the element's back.
func (e *Element) Nodes() []Node {
	return e.children
}

// Children returns the element children, skipping text and comments.
func (e *Element) Children() []*Element {
	var children []*Element
	for _, n := range e.children {
		if child, ok := n.(*Element); ok {
			children = append(children, child)
		}
	}
	return children
}

// Texts returns the direct text children, in order.
func (e *Element) Texts() []string {
	var texts []string
	for _, n := range e.children {
		if t, ok := n.(*Text); ok {
			texts = append(texts, t.content)
		}
	}
	return texts
}

// Text returns the concatenation of all direct text children.
func (e *Element) Text() string {
	var b strings.Builder
	for _, n := range e.children {
		if t, ok := n.(*Text); ok {
			b.WriteString(t.content)
		}
	}
	return b.String()
}

// AppendChild appends child and returns it.
func (e *Element) AppendChild(child *Element) *Element {
	e.children = append(e.children, child)
	return child
}

// AppendText appends a text node.
func (e *Element) AppendText(s string) {
	e.children = append(e.children, NewText(s))
}

// AppendNode appends any node.
func (e *Element) AppendNode(n Node) {
	e.children = append(e.children, n)
}

// Is reports whether the element has the given local name and a
// namespace satisfying ns.
func (e *Element) Is(local string, ns NSChoice) bool {
	return e.name.Local == local && ns.Matches(e.name.URI)
}

// HasNS reports whether the element's namespace satisfies ns.
func (e *Element) HasNS(ns NSChoice) bool {
	return ns.Matches(e.name.URI)
}

// GetChild returns the first element child with the given local name
// and a namespace satisfying ns, or nil.
func (e *Element) GetChild(local string, ns NSChoice) *Element {
	for _, n := range e.children {
		if child, ok := n.(*Element); ok && child.Is(local, ns) {
			return child
		}
	}
	return nil
}

func (e *Element) HasChild(local string, ns NSChoice) bool {
	return e.GetChild(local, ns) != nil
}

// RemoveChild removes and returns the first element child matching
// local name and ns, or nil if there is none.
func (e *Element) RemoveChild(local string, ns NSChoice) *Element {
	for i, n := range e.children {
		if child, ok := n.(*Element); ok && child.Is(local, ns) {
			e.children = append(e.children[:i], e.children[i+1:]...)
			return child
		}
	}
	return nil
}

// TakeFirstChild drops leading non-element nodes and pops the first
// element child, or returns nil if the element has no element children.
// Useful when consuming stream-style wrappers one stanza at a time.
func (e *Element) TakeFirstChild() *Element {
	for len(e.children) > 0 {
		n := e.children[0]
		e.children = e.children[1:]
		if child, ok := n.(*Element); ok {
			return child
		}
	}
	return nil
}

// Equals reports strict equality: same resolved names, same attributes,
// same child sequence. Shorthand for Equal(e, other, Strict).
func (e *Element) Equals(other *Element) bool {
	return Equal(e, other, Strict)
}

// String serializes the element as an XML fragment, without a leading
// declaration. Serialization failures (which only comments can cause)
// degrade to an error pseudo-comment rather than panicking.
func (e *Element) String() string {
	var b strings.Builder
	var s Serializer
	if err := s.Serialize(&b, e); err != nil {
		return "<!-- serialization failed: " + err.Error() + " -->"
	}
	return b.String()
}

// ElementBuilder assembles an Element fluently. Errors found along the
// way (duplicate or reserved prefix declarations) are deferred and
// reported by Build.
type ElementBuilder struct {
	elem  *Element
	decls map[string]string
	err   error
}

// Builder starts building an element with the given local name and
// namespace URI, which becomes the element's default namespace.
func Builder(local, uri string) *ElementBuilder {
	decls := make(map[string]string)
	if uri != "" {
		decls[""] = uri
	}
	return &ElementBuilder{
		elem: &Element{
			name:  QName{URI: uri, Local: local},
			attrs: make(map[QName]string),
		},
		decls: decls,
	}
}

// Prefix declares an additional prefix on the element. Declaring the
// same prefix twice is an error.
func (b *ElementBuilder) Prefix(prefix, uri string) *ElementBuilder {
	if b.err != nil {
		return b
	}
	if _, ok := b.decls[prefix]; ok {
		name := xmlnsPrefix
		if prefix != "" {
			name = prefix
		}
		b.err = DuplicateAttributeError{Name: QName{URI: XMLNSNamespaceURI, Local: name}}
		return b
	}
	b.decls[prefix] = uri
	return b
}

// Attr sets an attribute with the given local name, in no namespace.
func (b *ElementBuilder) Attr(local, value string) *ElementBuilder {
	b.elem.SetAttr(local, value)
	return b
}

// AttrNS sets an attribute by namespace URI and local name.
func (b *ElementBuilder) AttrNS(uri, local, value string) *ElementBuilder {
	b.elem.SetAttrNS(uri, local, value)
	return b
}

// Text appends a text child.
func (b *ElementBuilder) Text(s string) *ElementBuilder {
	b.elem.AppendText(s)
	return b
}

// Append appends a child node.
func (b *ElementBuilder) Append(n Node) *ElementBuilder {
	b.elem.AppendNode(n)
	return b
}

// AppendAll appends a sequence of child nodes.
func (b *ElementBuilder) AppendAll(nodes ...Node) *ElementBuilder {
	for _, n := range nodes {
		b.elem.AppendNode(n)
	}
	return b
}

// Build validates the declarations and returns the element.
func (b *ElementBuilder) Build() (*Element, error) {
	if b.err != nil {
		return nil, b.err
	}
	nss, err := rootSet.ChildWith(b.decls)
	if err != nil {
		return nil, err
	}
	b.elem.nsset = nss
	return b.elem, nil
}

// MustBuild is Build for static trees; it panics on error.
func (b *ElementBuilder) MustBuild() *Element {
	elem, err := b.Build()
	if err != nil {
		panic(err)
	}
	return elem
}
