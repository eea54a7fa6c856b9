package minidom

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/lestrrat-go/minidom/token"
)

// Serializer walks an Element tree depth first and emits it through a
// token.Writer. At each element it computes the minimal set of prefix
// declarations: only bindings whose resolution differs from what the
// enclosing scope already provides are re-emitted. Prefix spellings are
// re-derived from the namespace URIs the tree records, so output need
// not be byte-identical with the original document — only
// namespace-equivalent.
//
// The zero value is ready to use.
type Serializer struct{}

// Serialize writes el as an XML fragment, without an XML declaration.
// Use this for sub-fragments; emitting a declaration in the middle of a
// larger document is exactly the bug class the two entry points exist
// to avoid.
func (s Serializer) Serialize(out io.Writer, el *Element) error {
	w := token.NewWriter(out)
	if err := s.element(w, el, rootSet); err != nil {
		return err
	}
	return w.Flush()
}

// SerializeWithDecl writes el as a complete document, preceded by an
// XML declaration.
func (s Serializer) SerializeWithDecl(out io.Writer, el *Element) error {
	w := token.NewWriter(out)
	if err := w.XMLDecl("1.0"); err != nil {
		return err
	}
	if err := s.element(w, el, rootSet); err != nil {
		return err
	}
	return w.Flush()
}

func (s Serializer) element(w *token.Writer, el *Element, scope *NamespaceSet) error {
	// bindings this element must (re)declare: everything reachable in
	// its recorded scope that the emission scope resolves differently
	decls := make(map[string]string)
	for prefix, uri := range el.nsset.effective() {
		if got, ok := scope.Resolve(prefix); !ok || got != uri {
			decls[prefix] = uri
		}
	}

	// the element's own name prefers the default prefix
	namePrefix, ok := emitLookup(scope, decls, el.name.URI, true)
	if !ok {
		decls[""] = el.name.URI
		namePrefix = ""
	}
	name := joinName(namePrefix, el.name.Local)

	// attributes never use the default prefix: an unprefixed attribute
	// is in no namespace, so a namespaced one needs a real prefix, and
	// a synthesized binding if nothing in scope resolves to its URI
	attrs := el.Attrs()
	names := make([]string, len(attrs))
	for i, attr := range attrs {
		if attr.Name.URI == "" {
			names[i] = attr.Name.Local
			continue
		}
		prefix, ok := emitLookupNonDefault(scope, decls, attr.Name.URI)
		if !ok {
			prefix = synthesizePrefix(scope, decls)
			decls[prefix] = attr.Name.URI
		}
		names[i] = prefix + ":" + attr.Name.Local
	}

	wireAttrs := make([]token.Attr, 0, len(decls)+len(attrs))
	for _, prefix := range sortedPrefixes(decls) {
		declName := xmlnsPrefix
		if prefix != "" {
			declName = xmlnsPrefix + ":" + prefix
		}
		wireAttrs = append(wireAttrs, token.Attr{Name: declName, Value: decls[prefix]})
	}
	for i, attr := range attrs {
		wireAttrs = append(wireAttrs, token.Attr{Name: names[i], Value: attr.Value})
	}

	if err := w.StartElement(name, wireAttrs); err != nil {
		return err
	}

	childScope, err := scope.ChildWith(decls)
	if err != nil {
		// decls came from validated sets plus synthesized prefixes
		return err
	}
	for _, n := range el.children {
		switch n := n.(type) {
		case *Element:
			if err := s.element(w, n, childScope); err != nil {
				return err
			}
		case *Text:
			if err := w.Text(n.content); err != nil {
				return err
			}
		case *Comment:
			// "--" can never appear in a serialized comment, and a
			// trailing "-" would fuse with the terminator
			if strings.Contains(n.content, "--") || strings.HasSuffix(n.content, "-") {
				return UnserializableCommentError{Content: n.content}
			}
			if err := w.Comment(n.content); err != nil {
				return err
			}
		}
	}

	return w.EndElement(name)
}

// emitLookup finds a prefix resolving to uri under scope overlaid with
// the pending decls, preferring the default prefix.
func emitLookup(scope *NamespaceSet, decls map[string]string, uri string, includeDefault bool) (string, bool) {
	merged := scope.effective()
	for p, u := range decls {
		merged[p] = u
	}
	if includeDefault {
		def, hasDef := merged[""]
		if !hasDef {
			def = ""
		}
		if def == uri {
			return "", true
		}
	}
	var candidates []string
	for p, u := range merged {
		if p != "" && u == uri {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		return "", false
	}
	sort.Strings(candidates)
	return candidates[0], true
}

func emitLookupNonDefault(scope *NamespaceSet, decls map[string]string, uri string) (string, bool) {
	return emitLookup(scope, decls, uri, false)
}

// synthesizePrefix picks the first nsN not bound in scope or pending.
func synthesizePrefix(scope *NamespaceSet, decls map[string]string) string {
	for i := 0; ; i++ {
		p := fmt.Sprintf("ns%d", i)
		if _, pending := decls[p]; pending {
			continue
		}
		if _, bound := scope.Resolve(p); bound {
			continue
		}
		return p
	}
}

func sortedPrefixes(decls map[string]string) []string {
	prefixes := make([]string, 0, len(decls))
	for p := range decls {
		prefixes = append(prefixes, p)
	}
	sort.Strings(prefixes)
	return prefixes
}

func joinName(prefix, local string) string {
	if prefix == "" {
		return local
	}
	return prefix + ":" + local
}
