// Package minidom builds and serializes a namespace-aware, in-memory
// tree representation of an XML document, targeting the subset of XML
// useful for protocol work (notably XMPP-style stanzas and fragments).
//
// A document is materialized into an Element tree by Parse and friends.
// Names are stored fully resolved: an element or attribute is identified
// by its (namespace URI, local name) pair, never by the prefix it
// happened to be spelled with. Trees can be inspected, mutated, compared
// under an explicit namespace policy, and re-emitted; the serializer
// re-derives a minimal set of prefix declarations from the tree's
// namespace state rather than replaying the original spelling.
//
// The byte-level tokenizer and writer live in the token subpackage. This
// package only drives them through their event contracts.
package minidom

// Version describes this library's version.
const Version = "0.1.0"
