package token

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriterEmptyElement(t *testing.T) {
	var b strings.Builder
	w := NewWriter(&b)
	require.NoError(t, w.StartElement("a", nil))
	require.NoError(t, w.EndElement("a"))
	require.NoError(t, w.Flush())
	require.Equal(t, `<a/>`, b.String(), "childless elements collapse")
}

func TestWriterNested(t *testing.T) {
	var b strings.Builder
	w := NewWriter(&b)
	require.NoError(t, w.StartElement("a", nil))
	require.NoError(t, w.StartElement("b", nil))
	require.NoError(t, w.EndElement("b"))
	require.NoError(t, w.EndElement("a"))
	require.NoError(t, w.Flush())
	require.Equal(t, `<a><b/></a>`, b.String())
}

func TestWriterTextPreventsCollapse(t *testing.T) {
	var b strings.Builder
	w := NewWriter(&b)
	require.NoError(t, w.StartElement("a", nil))
	require.NoError(t, w.Text(""))
	require.NoError(t, w.EndElement("a"))
	require.NoError(t, w.Flush())
	require.Equal(t, `<a></a>`, b.String(), "even empty text closes the start tag")
}

func TestWriterAttributes(t *testing.T) {
	var b strings.Builder
	w := NewWriter(&b)
	attrs := []Attr{
		{Name: "x", Value: `a"b`},
		{Name: "y", Value: "1<2"},
	}
	require.NoError(t, w.StartElement("a", attrs))
	require.NoError(t, w.EndElement("a"))
	require.NoError(t, w.Flush())
	require.Equal(t, `<a x="a&quot;b" y="1&lt;2"/>`, b.String())
}

func TestWriterTextEscaping(t *testing.T) {
	var b strings.Builder
	w := NewWriter(&b)
	require.NoError(t, w.StartElement("a", nil))
	require.NoError(t, w.Text(`<>&'"`))
	require.NoError(t, w.EndElement("a"))
	require.NoError(t, w.Flush())
	require.Equal(t, `<a>&lt;&gt;&amp;&apos;&quot;</a>`, b.String())
}

func TestWriterComment(t *testing.T) {
	var b strings.Builder
	w := NewWriter(&b)
	require.NoError(t, w.StartElement("a", nil))
	require.NoError(t, w.Comment(" <unescaped> "))
	require.NoError(t, w.EndElement("a"))
	require.NoError(t, w.Flush())
	require.Equal(t, `<a><!-- <unescaped> --></a>`, b.String(), "comment content goes out verbatim")
}

func TestWriterXMLDecl(t *testing.T) {
	var b strings.Builder
	w := NewWriter(&b)
	require.NoError(t, w.XMLDecl(""))
	require.NoError(t, w.StartElement("a", nil))
	require.NoError(t, w.EndElement("a"))
	require.NoError(t, w.Flush())
	require.Equal(t, "<?xml version=\"1.0\" encoding=\"utf-8\"?>\n<a/>", b.String())
}

func TestEscape(t *testing.T) {
	require.Equal(t, "&amp;&lt;&gt;&apos;&quot;", Escape(`&<>'"`))
	require.Equal(t, "plain", Escape("plain"))
}
