package msgtree

import "fmt"

// BuildTree rebuilds a tree from its pre-order shape, where internal nodes
// are written as InternalMarker and leaves as their own character.
//
// Construction is iterative. The stack holds the internal nodes still waiting
// for a right child; the cursor is the node whose next slot gets filled.
func BuildTree(shape string) (*Node, error) {
	symbols := []rune(shape)
	if len(symbols) == 0 {
		return nil, ErrEmptyTreeSpec
	}

	root := newNode(symbols[0])
	stack := []*Node{root}
	cursor := root
	leftChild := true
	// A tree made of a single leaf is already complete.
	complete := !root.IsInternal()

	for pos := 1; pos < len(symbols); pos++ {
		if complete {
			return nil, &TreeSpecError{Pos: pos, Reason: "characters after the last leaf"}
		}
		node := newNode(symbols[pos])
		if leftChild {
			cursor.Left = node
		} else {
			cursor.Right = node
		}

		if node.IsInternal() {
			stack = append(stack, node)
			cursor = node
			leftChild = true
			continue
		}

		// A leaf placed with nobody left to resume closes the tree.
		if len(stack) == 0 {
			complete = true
		} else {
			cursor = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
		}
		leftChild = false
	}

	if !complete {
		return nil, &TreeSpecError{Pos: len(symbols), Reason: "internal node left without two children"}
	}
	if configuration.Verbosity > 2 {
		message := fmt.Sprintf("Tree built with %d nodes", len(symbols))
		logger.Info(message, "tree")
	}
	return root, nil
}
