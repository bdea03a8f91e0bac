package dom

// NodeFilter accepts or rejects a node during traversal.
type NodeFilter func(node *Node) bool

// ElementsOnly accepts element nodes.
var ElementsOnly NodeFilter = func(node *Node) bool {
	return node.NodeType == ElementNode
}

// TreeWalker is a filtered cursor over the subtree rooted at Root. Every
// navigation method either moves the cursor and returns the new current node
// or leaves it in place and returns nil.
// https://dom.spec.whatwg.org/#interface-treewalker
type TreeWalker struct {
	root, currentNode *Node
	filter            NodeFilter
}

// NewTreeWalker returns a walker positioned at root. A nil filter accepts
// every node.
func NewTreeWalker(root *Node, filter NodeFilter) *TreeWalker {
	if filter == nil {
		filter = func(*Node) bool { return true }
	}
	return &TreeWalker{root: root, currentNode: root, filter: filter}
}

func (t *TreeWalker) Root() *Node        { return t.root }
func (t *TreeWalker) CurrentNode() *Node { return t.currentNode }

func (t *TreeWalker) SetCurrentNode(node *Node) {
	if node != nil {
		t.currentNode = node
	}
}

func (t *TreeWalker) moveTo(node *Node) *Node {
	if node != nil {
		t.currentNode = node
	}
	return node
}

// ParentNode moves to the closest accepted ancestor, not going above root.
func (t *TreeWalker) ParentNode() *Node {
	for node := t.currentNode; node != nil && node != t.root; {
		node = node.parentNode
		if node != nil && t.filter(node) {
			return t.moveTo(node)
		}
	}
	return nil
}

// FirstChild moves to the first accepted direct child.
func (t *TreeWalker) FirstChild() *Node {
	for _, child := range t.currentNode.childNodes {
		if t.filter(child) {
			return t.moveTo(child)
		}
	}
	return nil
}

// LastChild moves to the last accepted direct child.
func (t *TreeWalker) LastChild() *Node {
	children := t.currentNode.childNodes
	for i := len(children) - 1; i >= 0; i-- {
		if t.filter(children[i]) {
			return t.moveTo(children[i])
		}
	}
	return nil
}

func (t *TreeWalker) PreviousSibling() *Node {
	if t.currentNode == t.root {
		return nil
	}
	for node := t.currentNode.PreviousSibling(); node != nil; node = node.PreviousSibling() {
		if t.filter(node) {
			return t.moveTo(node)
		}
	}
	return nil
}

func (t *TreeWalker) NextSibling() *Node {
	if t.currentNode == t.root {
		return nil
	}
	for node := t.currentNode.NextSibling(); node != nil; node = node.NextSibling() {
		if t.filter(node) {
			return t.moveTo(node)
		}
	}
	return nil
}

// step moves by delta positions in the accepted pre-order sequence. A current
// node that the filter rejects is located by its position among all nodes.
func (t *TreeWalker) step(delta int) *Node {
	all := flatten(t.root)
	pos := all.Contains(t.currentNode)
	if pos == -1 {
		return nil
	}
	for i := pos + delta; i >= 0 && i < len(all); i += delta {
		if t.filter(all[i]) {
			return t.moveTo(all[i])
		}
	}
	return nil
}

// PreviousNode moves to the accepted node before the current one in pre-order.
func (t *TreeWalker) PreviousNode() *Node { return t.step(-1) }

// NextNode moves to the accepted node after the current one in pre-order.
func (t *TreeWalker) NextNode() *Node { return t.step(1) }
