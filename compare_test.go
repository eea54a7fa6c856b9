package minidom

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, input string, options ...ParseOption) *Element {
	t.Helper()
	elem, err := ParseString(input, options...)
	require.NoError(t, err, "Parse %s should succeed", input)
	return elem
}

func TestEqualStrict(t *testing.T) {
	a := mustParse(t, `<p:a xmlns:p="u" p:x="1">t</p:a>`)
	b := mustParse(t, `<q:a xmlns:q="u" q:x="1">t</q:a>`)
	require.True(t, Equal(a, b, Strict), "prefix spellings never matter")

	c := mustParse(t, `<a xmlns="v" x="1">t</a>`)
	require.False(t, Equal(a, c, Strict), "different element namespace")

	d := mustParse(t, `<p:a xmlns:p="u" x="1">t</p:a>`)
	require.False(t, Equal(a, d, Strict), "prefixed vs unprefixed attribute differ in namespace")
}

func TestEqualStrictAttributeOrder(t *testing.T) {
	a := mustParse(t, `<a x="1" y="2"/>`)
	b := mustParse(t, `<a y="2" x="1"/>`)
	require.True(t, Equal(a, b, Strict), "attribute order is irrelevant")
}

func TestEqualStrictChildOrder(t *testing.T) {
	a := mustParse(t, `<r><a/><b/></r>`)
	b := mustParse(t, `<r><b/><a/></r>`)
	require.False(t, Equal(a, b, Strict), "child order is significant")
}

func TestEqualAnyNamespace(t *testing.T) {
	a := mustParse(t, `<a xmlns="u1" x="1"/>`)
	b := mustParse(t, `<a xmlns="u2" x="1"/>`)
	require.True(t, Equal(a, b, AnyNamespace))

	c := mustParse(t, `<a xmlns:p="v1" p:x="1"/>`)
	d := mustParse(t, `<a xmlns:q="v2" q:x="1"/>`)
	require.True(t, Equal(c, d, AnyNamespace), "attributes compare namespace-blind too")

	e := mustParse(t, `<a x="2"/>`)
	require.False(t, Equal(a, e, AnyNamespace), "values still matter")

	f := mustParse(t, `<b xmlns="u1" x="1"/>`)
	require.False(t, Equal(a, f, AnyNamespace), "local names still matter")
}

func TestEqualOneOf(t *testing.T) {
	policy := OneOf("u1", "u2")

	a := mustParse(t, `<a xmlns="u1"/>`)
	b := mustParse(t, `<a xmlns="u2"/>`)
	c := mustParse(t, `<a xmlns="u3"/>`)
	require.True(t, Equal(a, b, policy), "both namespaces are in the set")
	require.False(t, Equal(a, c, policy), "u3 is outside the set")
	require.True(t, Equal(a, a, policy))

	// OneOf softens element names only; attributes keep exact identity
	d := mustParse(t, `<a xmlns:p="u1" p:x="1"/>`)
	e := mustParse(t, `<a xmlns:p="u2" p:x="1"/>`)
	require.False(t, Equal(d, e, policy))
}

func TestEqualNodeVariants(t *testing.T) {
	require.True(t, Equal(NewText("x"), NewText("x"), Strict))
	require.False(t, Equal(NewText("x"), NewText("y"), Strict))
	require.True(t, Equal(NewComment("c"), NewComment("c"), Strict))
	require.False(t, Equal(NewText("x"), NewComment("x"), Strict), "different variants never compare equal")
	require.False(t, Equal(NewText("x"), nil, Strict))
	require.True(t, Equal(nil, nil, Strict))
}

func TestEqualMixedContent(t *testing.T) {
	a := mustParse(t, `<r>one<c/>two</r>`)
	b := mustParse(t, `<r>one<c/>two</r>`)
	require.True(t, Equal(a, b, Strict))

	c := mustParse(t, `<r>one<c/></r>`)
	require.False(t, Equal(a, c, Strict), "child counts differ")
}

func TestEqualScopeIndependence(t *testing.T) {
	// unused declarations are scope state, not element identity
	a := mustParse(t, `<a xmlns:unused="u"/>`)
	b := mustParse(t, `<a/>`)
	require.True(t, Equal(a, b, Strict))
}
