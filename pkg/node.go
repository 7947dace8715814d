package msgtree

import "strings"

// InternalMarker is the payload of structural nodes in a serialized tree shape.
const InternalMarker = '^'

// Node is one position of a message tree. Internal nodes carry InternalMarker
// and always have two children once the tree is built; leaves carry the
// decodable character and have none.
type Node struct {
	Payload rune
	Left    *Node
	Right   *Node
}

func newNode(payload rune) *Node {
	return &Node{Payload: payload}
}

func (n *Node) IsInternal() bool {
	return n.Payload == InternalMarker
}

func (n *Node) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// PreOrder serializes the tree back to the shape it was built from.
func (n *Node) PreOrder() string {
	var sb strings.Builder
	n.walk(func(node *Node, _ string) {
		sb.WriteRune(node.Payload)
	}, "")
	return sb.String()
}

// Leaves counts the leaf nodes of the tree.
func (n *Node) Leaves() int {
	count := 0
	n.walk(func(node *Node, _ string) {
		if node.IsLeaf() {
			count++
		}
	}, "")
	return count
}

// walk visits the tree in pre-order, passing the '0'/'1' path from the root.
func (n *Node) walk(visit func(node *Node, path string), path string) {
	if n == nil {
		return
	}
	visit(n, path)
	n.Left.walk(visit, path+"0")
	n.Right.walk(visit, path+"1")
}
