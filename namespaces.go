package minidom

import "sort"

// Reserved namespace names, per "Namespaces in XML 1.0".
const (
	// XMLNamespaceURI is the namespace the "xml" prefix is always
	// bound to, without any declaration.
	XMLNamespaceURI = "http://www.w3.org/XML/1998/namespace"

	// XMLNSNamespaceURI is the namespace of xmlns declarations. It can
	// never be bound to a prefix, and declarations are never stored as
	// ordinary attributes; the constant exists so errors can name it.
	XMLNSNamespaceURI = "http://www.w3.org/2000/xmlns/"
)

const (
	xmlPrefix   = "xml"
	xmlnsPrefix = "xmlns"
)

// NamespaceSet is one lexical scope of prefix-to-URI bindings, chained
// to the scope of the enclosing element. A set is built once, when an
// element opens, and never mutated afterwards; an element that declares
// nothing shares its parent's set by reference. Because sets are
// immutable they can be shared freely between sibling subtrees.
//
// The zero value is not useful; start from RootNamespaceSet.
type NamespaceSet struct {
	parent   *NamespaceSet
	bindings map[string]string
}

// rootSet terminates every chain. It provides the implicit binding of
// the "xml" prefix that XML grants without any declaration.
var rootSet = &NamespaceSet{
	bindings: map[string]string{xmlPrefix: XMLNamespaceURI},
}

// RootNamespaceSet returns the scope every chain bottoms out in: no
// default namespace, and only the implicit "xml" binding.
func RootNamespaceSet() *NamespaceSet {
	return rootSet
}

// Resolve walks the chain from the innermost scope outward and returns
// the nearest binding for prefix. The empty prefix denotes the default
// namespace and always resolves: if never declared it resolves to the
// empty URI, i.e. "no namespace". For any other prefix the second
// return value reports whether a binding exists.
func (s *NamespaceSet) Resolve(prefix string) (string, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if uri, ok := cur.bindings[prefix]; ok {
			return uri, true
		}
	}
	if prefix == "" {
		return "", true
	}
	return "", false
}

// ChildWith builds the scope for an element that declares decls,
// falling back to s for everything not redeclared. An empty decls
// returns s itself so sibling subtrees share one set. Reserved-name
// violations surface as InvalidNamespaceDeclarationError.
func (s *NamespaceSet) ChildWith(decls map[string]string) (*NamespaceSet, error) {
	if len(decls) == 0 {
		return s, nil
	}
	bindings := make(map[string]string, len(decls))
	for prefix, uri := range decls {
		if err := validateDeclaration(prefix, uri); err != nil {
			return nil, err
		}
		bindings[prefix] = uri
	}
	return &NamespaceSet{parent: s, bindings: bindings}, nil
}

func validateDeclaration(prefix, uri string) error {
	switch prefix {
	case xmlPrefix:
		if uri != XMLNamespaceURI {
			return InvalidNamespaceDeclarationError{Prefix: prefix, URI: uri}
		}
	case xmlnsPrefix:
		return InvalidNamespaceDeclarationError{Prefix: prefix, URI: uri}
	default:
		if uri == XMLNSNamespaceURI {
			return InvalidNamespaceDeclarationError{Prefix: prefix, URI: uri}
		}
	}
	return nil
}

// LookupPrefix finds a prefix that resolves to uri in this scope,
// preferring the default (empty) prefix, then the lexicographically
// smallest. Bindings shadowed by an inner scope are never returned.
func (s *NamespaceSet) LookupPrefix(uri string) (string, bool) {
	if got, _ := s.Resolve(""); got == uri {
		return "", true
	}
	prefixes := make([]string, 0, 4)
	for p, u := range s.effective() {
		if p != "" && u == uri {
			prefixes = append(prefixes, p)
		}
	}
	if len(prefixes) == 0 {
		return "", false
	}
	sort.Strings(prefixes)
	return prefixes[0], true
}

// effective flattens the chain into the full prefix-to-URI mapping
// visible from this scope, with inner bindings shadowing outer ones.
func (s *NamespaceSet) effective() map[string]string {
	m := make(map[string]string)
	for cur := s; cur != nil; cur = cur.parent {
		for p, u := range cur.bindings {
			if _, ok := m[p]; !ok {
				m[p] = u
			}
		}
	}
	return m
}

// NSChoice is the namespace predicate used when filtering or matching
// elements, e.g. by Element.Is and Element.GetChild. It is deliberately
// separate from the ComparePolicy used by Equal.
type NSChoice interface {
	// Matches reports whether an element in the given namespace URI
	// satisfies this choice.
	Matches(uri string) bool
}

type exactNS string

func (n exactNS) Matches(uri string) bool { return string(n) == uri }

// ExactNS matches exactly the given namespace URI. ExactNS("") matches
// only elements in no namespace.
func ExactNS(uri string) NSChoice { return exactNS(uri) }

type anyNS struct{}

func (anyNS) Matches(string) bool { return true }

// AnyNS matches every namespace, including none.
var AnyNS NSChoice = anyNS{}

type oneOfNS []string

func (n oneOfNS) Matches(uri string) bool {
	for _, candidate := range n {
		if candidate == uri {
			return true
		}
	}
	return false
}

// OneOfNS matches any of the given namespace URIs.
func OneOfNS(uris ...string) NSChoice { return oneOfNS(uris) }
