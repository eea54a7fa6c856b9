package minidom

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lestrrat-go/minidom/token"
)

func start(name string, attrs ...token.Attr) *token.Event {
	return &token.Event{Type: token.StartElementEvent, Name: name, Attrs: attrs}
}

func end(name string) *token.Event {
	return &token.Event{Type: token.EndElementEvent, Name: name}
}

func text(s string) *token.Event {
	return &token.Event{Type: token.TextEvent, Text: s}
}

func TestTreeBuilderDepth(t *testing.T) {
	tb, err := NewTreeBuilder()
	require.NoError(t, err)
	require.Equal(t, 0, tb.Depth())

	require.NoError(t, tb.HandleEvent(start("a")))
	require.NoError(t, tb.HandleEvent(start("b")))
	require.Equal(t, 2, tb.Depth())

	require.NoError(t, tb.HandleEvent(end("b")))
	require.Equal(t, 1, tb.Depth())

	require.NoError(t, tb.HandleEvent(end("a")))
	require.Equal(t, 0, tb.Depth())

	root, err := tb.Close()
	require.NoError(t, err)
	require.Equal(t, "a", root.LocalName())
}

func TestTreeBuilderTextRunsCoalesce(t *testing.T) {
	tb, err := NewTreeBuilder()
	require.NoError(t, err)

	require.NoError(t, tb.HandleEvent(start("a")))
	require.NoError(t, tb.HandleEvent(text("one")))
	require.NoError(t, tb.HandleEvent(text("two")))
	require.NoError(t, tb.HandleEvent(end("a")))

	root, err := tb.Close()
	require.NoError(t, err)
	require.Len(t, root.Nodes(), 1)
	require.Equal(t, "onetwo", root.Text())
}

func TestTreeBuilderTextFlushedBeforeChild(t *testing.T) {
	tb, err := NewTreeBuilder()
	require.NoError(t, err)

	require.NoError(t, tb.HandleEvent(start("a")))
	require.NoError(t, tb.HandleEvent(text("pre")))
	require.NoError(t, tb.HandleEvent(start("b")))
	require.NoError(t, tb.HandleEvent(end("b")))
	require.NoError(t, tb.HandleEvent(text("post")))
	require.NoError(t, tb.HandleEvent(end("a")))

	root, err := tb.Close()
	require.NoError(t, err)
	nodes := root.Nodes()
	require.Len(t, nodes, 3)
	require.Equal(t, TextNode, nodes[0].Type())
	require.Equal(t, ElementNode, nodes[1].Type())
	require.Equal(t, TextNode, nodes[2].Type())
}

func TestTreeBuilderFailureIsLatched(t *testing.T) {
	tb, err := NewTreeBuilder()
	require.NoError(t, err)

	require.NoError(t, tb.HandleEvent(start("a")))
	err1 := tb.HandleEvent(end("mismatch"))
	require.Error(t, err1)

	// every subsequent call reports the original failure
	err2 := tb.HandleEvent(start("b"))
	require.Equal(t, err1, err2)

	_, err3 := tb.Close()
	require.Equal(t, err1, err3)
}

func TestTreeBuilderCloseStates(t *testing.T) {
	tb, err := NewTreeBuilder()
	require.NoError(t, err)
	_, err = tb.Close()
	require.ErrorIs(t, err, ErrUnexpectedEndOfStream, "nothing seen yet")

	tb, err = NewTreeBuilder()
	require.NoError(t, err)
	require.NoError(t, tb.HandleEvent(start("a")))
	_, err = tb.Close()
	require.ErrorIs(t, err, ErrUnexpectedEndOfStream, "a is still open")
}

func TestTreeBuilderStartAfterDone(t *testing.T) {
	tb, err := NewTreeBuilder()
	require.NoError(t, err)
	require.NoError(t, tb.HandleEvent(start("a")))
	require.NoError(t, tb.HandleEvent(end("a")))

	err = tb.HandleEvent(start("b"))
	require.ErrorIs(t, err, ErrMultipleRoots)
}

func TestTreeBuilderSeededScope(t *testing.T) {
	tb, err := NewTreeBuilder(
		WithDefaultNamespace("jabber:client"),
		WithPrefixes(map[string]string{"stream": "http://etherx.jabber.org/streams"}),
	)
	require.NoError(t, err)

	require.NoError(t, tb.HandleEvent(start("stream:stream")))
	require.NoError(t, tb.HandleEvent(start("message")))
	require.NoError(t, tb.HandleEvent(end("message")))
	require.NoError(t, tb.HandleEvent(end("stream:stream")))

	root, err := tb.Close()
	require.NoError(t, err)
	require.Equal(t, "http://etherx.jabber.org/streams", root.NS())

	msg := root.GetChild("message", ExactNS("jabber:client"))
	require.NotNil(t, msg, "seeded default namespace applied to unprefixed elements")
}

func TestTreeBuilderSeededScopeValidation(t *testing.T) {
	_, err := NewTreeBuilder(WithPrefixes(map[string]string{"xmlns": "u"}))
	var inde InvalidNamespaceDeclarationError
	require.ErrorAs(t, err, &inde, "seeded prefixes go through the same validation")
}
