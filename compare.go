package minidom

import "sort"

// ComparePolicy controls how Equal treats namespaces. It is an explicit
// parameter rather than a default baked into one equality operator:
// different callers legitimately want different answers, and a silently
// wrong comparison is worse than a verbose one.
type ComparePolicy interface {
	nsEqual(a, b string) bool
}

type strictPolicy struct{}

func (strictPolicy) nsEqual(a, b string) bool { return a == b }

// Strict requires namespace URIs to match exactly, including the
// distinction between "no namespace" and a namespace declared as the
// empty URI. Prefix spellings never matter: names are compared fully
// resolved.
var Strict ComparePolicy = strictPolicy{}

type anyNamespacePolicy struct{}

func (anyNamespacePolicy) nsEqual(a, b string) bool { return true }

// AnyNamespace ignores namespaces entirely and compares local names and
// content only.
var AnyNamespace ComparePolicy = anyNamespacePolicy{}

type oneOfPolicy map[string]struct{}

func (p oneOfPolicy) nsEqual(a, b string) bool {
	_, oka := p[a]
	_, okb := p[b]
	return oka && okb
}

// OneOf requires both namespaces under comparison to be members of the
// given set.
func OneOf(uris ...string) ComparePolicy {
	p := make(oneOfPolicy, len(uris))
	for _, u := range uris {
		p[u] = struct{}{}
	}
	return p
}

// Equal compares two nodes under the given namespace policy. Nodes of
// different variants are never equal; Text and Comment compare by exact
// string; Elements compare by resolved name, attribute content (order
// independent) and child sequence (order dependent). How the namespace
// scopes were assembled never matters, only what names resolved to.
func Equal(a, b Node, policy ComparePolicy) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Type() != b.Type() {
		return false
	}
	switch a := a.(type) {
	case *Text:
		return a.content == b.(*Text).content
	case *Comment:
		return a.content == b.(*Comment).content
	case *Element:
		return equalElements(a, b.(*Element), policy)
	default:
		return false
	}
}

func equalElements(a, b *Element, policy ComparePolicy) bool {
	if a.name.Local != b.name.Local {
		return false
	}
	if !policy.nsEqual(a.name.URI, b.name.URI) {
		return false
	}
	if !equalAttrs(a, b, policy) {
		return false
	}
	if len(a.children) != len(b.children) {
		return false
	}
	for i := range a.children {
		if !Equal(a.children[i], b.children[i], policy) {
			return false
		}
	}
	return true
}

func equalAttrs(a, b *Element, policy ComparePolicy) bool {
	if len(a.attrs) != len(b.attrs) {
		return false
	}
	if _, ok := policy.(anyNamespacePolicy); ok {
		// namespace-blind: compare the multiset of (local, value)
		return equalStringMultisets(attrPairs(a), attrPairs(b))
	}
	// exact qualified names; OneOf deliberately falls back to exact
	// attribute identity, membership only softens element names
	for q, v := range a.attrs {
		if w, ok := b.attrs[q]; !ok || v != w {
			return false
		}
	}
	return true
}

func attrPairs(e *Element) []string {
	pairs := make([]string, 0, len(e.attrs))
	for q, v := range e.attrs {
		pairs = append(pairs, q.Local+"\x00"+v)
	}
	return pairs
}

func equalStringMultisets(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	sort.Strings(a)
	sort.Strings(b)
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
