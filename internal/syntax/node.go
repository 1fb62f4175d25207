package syntax

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Node is a read-only view of a syntax tree node. The zero Node is null.
type Node struct {
	raw *sitter.Node
}

// IsNull reports whether the node is missing
func (n Node) IsNull() bool {
	return n.raw == nil || n.raw.IsNull()
}

// Kind returns the grammar node type, or "" for a null node
func (n Node) Kind() string {
	if n.IsNull() {
		return ""
	}
	return n.raw.Type()
}

// StartLine returns the 1-based line the node starts on
func (n Node) StartLine() int {
	if n.IsNull() {
		return 0
	}
	return int(n.raw.StartPoint().Row) + 1
}

// EndLine returns the 1-based line the node ends on
func (n Node) EndLine() int {
	if n.IsNull() {
		return 0
	}
	return int(n.raw.EndPoint().Row) + 1
}

func (n Node) NamedChildCount() int {
	if n.IsNull() {
		return 0
	}
	return int(n.raw.NamedChildCount())
}

func (n Node) NamedChild(i int) Node {
	if n.IsNull() || i < 0 || i >= n.NamedChildCount() {
		return Node{}
	}
	return Node{raw: n.raw.NamedChild(i)}
}

// ChildByField returns the child stored under a grammar field name
func (n Node) ChildByField(name string) Node {
	if n.IsNull() {
		return Node{}
	}
	return Node{raw: n.raw.ChildByFieldName(name)}
}

func (n Node) Parent() Node {
	if n.IsNull() {
		return Node{}
	}
	return Node{raw: n.raw.Parent()}
}

// Text returns the source text spanned by the node
func (n Node) Text(src []byte) string {
	if n.IsNull() {
		return ""
	}
	return n.raw.Content(src)
}

// Same reports whether both nodes denote the same tree position
func (n Node) Same(other Node) bool {
	if n.IsNull() || other.IsNull() {
		return n.IsNull() && other.IsNull()
	}
	return n.raw.StartByte() == other.raw.StartByte() &&
		n.raw.EndByte() == other.raw.EndByte() &&
		n.raw.Type() == other.raw.Type()
}
