package ast

import (
	"fmt"
	"strconv"
	"strings"

	"demystify-mtg/demystify/pkg/mtg/token"
)

// Node is an immutable AST node. Its child order is fixed by the rule
// that built it. Nodes never reference their parent.
type Node struct {
	kind     Kind
	children []*Node
	text     string
	value    int
	hasValue bool
	span     token.Span
}

// New creates an interior node with the given ordered children.
// Nil children are dropped, so optional parts can be passed directly.
func New(kind Kind, span token.Span, children ...*Node) *Node {
	n := &Node{kind: kind, span: span}
	for _, c := range children {
		if c != nil {
			n.children = append(n.children, c)
		}
	}
	return n
}

// NewMarker creates a terminal node with no payload (ANYWHERE, IN, BATTLEFIELD, ...).
func NewMarker(kind Kind, span token.Span) *Node {
	return &Node{kind: kind, span: span}
}

// NewText creates a terminal node carrying the literal text it came from.
func NewText(kind Kind, text string, span token.Span) *Node {
	return &Node{kind: kind, text: text, span: span}
}

// NewNumber creates a NUMBER terminal with an integer value.
func NewNumber(value int, span token.Span) *Node {
	return &Node{kind: KindNumber, value: value, hasValue: true, span: span}
}

// Kind returns the node variant.
func (n *Node) Kind() Kind {
	return n.kind
}

// Children returns a copy of the ordered child list.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Len returns the number of children.
func (n *Node) Len() int {
	return len(n.children)
}

// Child returns the i-th child, or nil if there is none.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// Text returns the literal payload of a terminal node, if any.
func (n *Node) Text() string {
	return n.text
}

// Value returns the integer payload of a NUMBER node.
func (n *Node) Value() (int, bool) {
	return n.value, n.hasValue
}

// Span returns the source range the node was built from.
func (n *Node) Span() token.Span {
	return n.span
}

// IsLeaf returns true if the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.children) == 0
}

// Find returns the first child of the given kind, or nil.
func (n *Node) Find(kind Kind) *Node {
	for _, c := range n.children {
		if c.kind == kind {
			return c
		}
	}
	return nil
}

// String renders the tree as an S-expression:
//
//	(TRIGGER (SUBSET SELF[~]) (EVENT (ENTER BATTLEFIELD)))
//
// Terminals print as KIND, KIND=value for numbers and KIND[text] for text.
func (n *Node) String() string {
	var sb strings.Builder
	n.write(&sb)
	return sb.String()
}

func (n *Node) write(sb *strings.Builder) {
	if n == nil {
		sb.WriteString("<nil>")
		return
	}
	if len(n.children) > 0 {
		sb.WriteByte('(')
	}
	sb.WriteString(string(n.kind))
	switch {
	case n.hasValue:
		sb.WriteByte('=')
		sb.WriteString(strconv.Itoa(n.value))
	case n.text != "":
		sb.WriteByte('[')
		sb.WriteString(n.text)
		sb.WriteByte(']')
	}
	for _, c := range n.children {
		sb.WriteByte(' ')
		c.write(sb)
	}
	if len(n.children) > 0 {
		sb.WriteByte(')')
	}
}

// GoString implements fmt.GoStringer for %#v in test failures.
func (n *Node) GoString() string {
	return fmt.Sprintf("ast.Node<%s>", n.String())
}
