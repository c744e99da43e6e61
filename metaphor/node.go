package metaphor

import "errors"

type NodeKind int

const (
	KindRoot NodeKind = iota
	KindText
	KindRole
	KindContext
	KindAction
)

var nodeKindNames = map[NodeKind]string{
	KindRoot:    "Root",
	KindText:    "Text",
	KindRole:    "Role",
	KindContext: "Context",
	KindAction:  "Action",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// ErrNotAChild is returned by DetachChild when the given node is not a
// direct child of the receiver.
var ErrNotAChild = errors.New("node is not a child of this node")

// Node is one element of a parsed Metaphor document. For block nodes
// (Role, Context, Action) Value holds the optional label text; for
// Text nodes it holds one line of content. The parent reference is a
// plain back-pointer; children own their subtrees.
type Node struct {
	Kind     NodeKind
	Value    string
	parent   *Node
	children []*Node
}

func NewNode(kind NodeKind, value string) *Node {
	return &Node{Kind: kind, Value: value}
}

// AttachChild appends child and sets its parent reference.
func (n *Node) AttachChild(child *Node) {
	if child == nil {
		return
	}
	child.parent = n
	n.children = append(n.children, child)
}

// DetachChild removes child from the receiver and clears its parent
// reference. It returns ErrNotAChild if child is not currently a
// direct child.
func (n *Node) DetachChild(child *Node) error {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return nil
		}
	}
	return ErrNotAChild
}

func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns a snapshot of the current children. Mutating the
// returned slice does not affect the node.
func (n *Node) Children() []*Node {
	snapshot := make([]*Node, len(n.children))
	copy(snapshot, n.children)
	return snapshot
}

func (n *Node) FirstChildOfKind(kind NodeKind) *Node {
	for _, child := range n.children {
		if child.Kind == kind {
			return child
		}
	}
	return nil
}

// ChildrenOfKind returns the direct children of one kind, in order.
func (n *Node) ChildrenOfKind(kind NodeKind) []*Node {
	var result []*Node
	for _, child := range n.children {
		if child.Kind == kind {
			result = append(result, child)
		}
	}
	return result
}

// String renders the node structure for debugging, one node per line,
// two-space indented per depth. Prompt output rendering lives in the
// format package.
func (n *Node) String() string {
	return n.stringIndent(0)
}

func (n *Node) stringIndent(indent int) string {
	prefix := ""
	for i := 0; i < indent; i++ {
		prefix += "  "
	}

	result := prefix + n.Kind.String()
	if n.Value != "" {
		result += " " + n.Value
	}
	result += "\n"

	for _, child := range n.children {
		result += child.stringIndent(indent + 1)
	}
	return result
}
