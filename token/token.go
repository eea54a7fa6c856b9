// Package token provides the low-level XML event layer that the minidom
// tree machinery is built on: a Reader that turns raw bytes into a flat
// stream of start/end/text/comment events, and a Writer that accepts the
// inverse calls and performs byte-level escaping.
//
// The Reader performs entity and character-reference decoding, CDATA
// passthrough, and encoding detection, but it knows nothing about
// namespaces: names are handed to the consumer exactly as they are
// spelled in the document, prefix and all.
package token

import "fmt"

// EventType describes the kind of an Event.
type EventType int

const (
	InvalidEvent EventType = iota
	StartElementEvent
	EndElementEvent
	TextEvent
	CommentEvent
)

func (t EventType) String() string {
	switch t {
	case StartElementEvent:
		return "StartElement"
	case EndElementEvent:
		return "EndElement"
	case TextEvent:
		return "Text"
	case CommentEvent:
		return "Comment"
	default:
		return fmt.Sprintf("InvalidEvent(%d)", int(t))
	}
}

// Attr is a raw attribute as spelled in the document. Name may carry a
// prefix; Value has already been unescaped.
type Attr struct {
	Name  string
	Value string
}

// Event is a single structural event read from the document.
//
// Name is only meaningful for StartElementEvent and EndElementEvent, and
// Attrs only for StartElementEvent. Attrs preserves document order.
// Text holds the content of TextEvent and CommentEvent.
type Event struct {
	Type  EventType
	Name  string
	Text  string
	Attrs []Attr
}
