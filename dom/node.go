package dom

import (
	"fmt"
	"sort"
	"strings"
)

type NodeType uint16

const (
	ElementNode NodeType = iota + 1
	AttrNode
	TextNode
	CDATASectionNode
	ProcessingInstructionNode
	CommentNode
	DocumentNode
	DocumentTypeNode
	DocumentFragmentNode
)

type DocumentPosition uint16

const (
	Disconnected           DocumentPosition = 0x01
	Preceding              DocumentPosition = 0x02
	Following              DocumentPosition = 0x04
	Contain                DocumentPosition = 0x08
	ContainedBy            DocumentPosition = 0x10
	ImplementationSpecific DocumentPosition = 0x20
)

// Node is the tree primitive. Exactly one of the embedded kind pointers is
// set, matching NodeType.
// https://dom.spec.whatwg.org/#node
type Node struct {
	NodeType NodeType
	NodeName string

	parentNode    *Node
	childNodes    NodeList
	ownerDocument *Node
	window        *Window

	// Node types
	*Element
	*Text
	*Comment
	*Document
	*DocumentFragment
}

// Window returns the window whose registries govern the node.
func (n *Node) Window() *Window { return n.window }

// ParentNode returns the parent or nil for a detached node.
func (n *Node) ParentNode() *Node { return n.parentNode }

// ParentElement returns the parent when it is an element.
func (n *Node) ParentElement() *Node {
	if n.parentNode != nil && n.parentNode.NodeType == ElementNode {
		return n.parentNode
	}
	return nil
}

// ChildNodes returns the children. The list must not be modified.
func (n *Node) ChildNodes() NodeList { return n.childNodes }

// Children returns the element children.
func (n *Node) Children() NodeList {
	var elements NodeList
	for _, child := range n.childNodes {
		if child.NodeType == ElementNode {
			elements = append(elements, child)
		}
	}
	return elements
}

func (n *Node) HasChildNodes() bool {
	return len(n.childNodes) > 0
}

func (n *Node) FirstChild() *Node {
	return n.childNodes.Item(0)
}

func (n *Node) LastChild() *Node {
	return n.childNodes.Item(len(n.childNodes) - 1)
}

func (n *Node) PreviousSibling() *Node {
	if n.parentNode == nil {
		return nil
	}
	siblings := n.parentNode.childNodes
	return siblings.Item(siblings.Contains(n) - 1)
}

func (n *Node) NextSibling() *Node {
	if n.parentNode == nil {
		return nil
	}
	siblings := n.parentNode.childNodes
	i := siblings.Contains(n)
	if i == -1 {
		return nil
	}
	return siblings.Item(i + 1)
}

// OwnerDocument returns the document the node belongs to. It is nil for
// documents themselves and for clones that were never attached.
func (n *Node) OwnerDocument() *Node { return n.ownerDocument }

func (n *Node) GetRootNode() *Node {
	root := n
	for root.parentNode != nil {
		root = root.parentNode
	}
	return root
}

// IsConnected reports whether the node is reachable from a document root.
func (n *Node) IsConnected() bool {
	return n.GetRootNode().NodeType == DocumentNode
}

// Contains reports whether other is an inclusive descendant of n.
func (n *Node) Contains(other *Node) bool {
	for p := other; p != nil; p = p.parentNode {
		if p == n {
			return true
		}
	}
	return false
}

func (n *Node) IsSameNode(other *Node) bool { return n == other }

// https://dom.spec.whatwg.org/#concept-node-equals
func (n *Node) IsEqualNode(other *Node) bool {
	if other == nil || n.NodeType != other.NodeType || n.NodeName != other.NodeName {
		return false
	}
	switch n.NodeType {
	case ElementNode:
		if n.Element.Is != other.Element.Is || n.Attributes.Length() != other.Attributes.Length() {
			return false
		}
		for _, attr := range n.Attributes.Attrs {
			v, ok := other.GetAttribute(attr.Name)
			if !ok || v != attr.Value {
				return false
			}
		}
	case TextNode, CommentNode:
		if n.NodeValue() != other.NodeValue() {
			return false
		}
	}
	if len(n.childNodes) != len(other.childNodes) {
		return false
	}
	for i := range n.childNodes {
		if !n.childNodes[i].IsEqualNode(other.childNodes[i]) {
			return false
		}
	}
	return true
}

// ancestors returns the inclusive ancestor chain of n, root first.
func (n *Node) ancestors() NodeList {
	var chain NodeList
	for p := n; p != nil; p = p.parentNode {
		chain = append(chain, p)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// CompareDocumentPosition returns the position of other relative to n.
// Ancestors precede their descendants and siblings are ordered by index.
// https://dom.spec.whatwg.org/#dom-node-comparedocumentposition
func (n *Node) CompareDocumentPosition(other *Node) DocumentPosition {
	if other == nil {
		return Disconnected | ImplementationSpecific | Following
	}
	if n == other {
		return 0
	}
	a, b := n.ancestors(), other.ancestors()
	if a[0] != b[0] {
		return Disconnected | ImplementationSpecific | Following
	}
	i := 0
	for i < len(a) && i < len(b) && a[i] == b[i] {
		i++
	}
	switch {
	case i == len(b):
		return Contain | Preceding
	case i == len(a):
		return ContainedBy | Following
	}
	parent := a[i-1]
	if parent.childNodes.Contains(b[i]) < parent.childNodes.Contains(a[i]) {
		return Preceding
	}
	return Following
}

// Precedes reports whether n comes before other in document position order.
func (n *Node) Precedes(other *Node) bool {
	pos := n.CompareDocumentPosition(other)
	return pos&Following != 0 && pos&Disconnected == 0
}

func (n *Node) canHaveChildren() bool {
	switch n.NodeType {
	case ElementNode, DocumentNode, DocumentFragmentNode:
		return true
	}
	return false
}

// documentForChildren returns the document nodes inserted into n belong to.
func (n *Node) documentForChildren() *Node {
	if n.NodeType == DocumentNode {
		return n
	}
	return n.ownerDocument
}

// AppendChild appends child to the children of n. A document fragment is
// flattened: its children are moved instead of the fragment itself.
// https://dom.spec.whatwg.org/#concept-node-append
func (n *Node) AppendChild(child *Node) (*Node, error) {
	return n.insert("appendChild", child, nil)
}

// InsertBefore inserts child before reference, or appends it when reference
// is nil. A node attached elsewhere is removed from its old parent first, so
// a move is observed as a removal followed by an addition.
func (n *Node) InsertBefore(child, reference *Node) (*Node, error) {
	if reference != nil && reference.parentNode != n {
		return nil, hierarchyError("insertBefore", "the node before which the new node is to be inserted is not a child of this node")
	}
	return n.insert("insertBefore", child, reference)
}

// ReplaceChild replaces old with child and returns old.
func (n *Node) ReplaceChild(child, old *Node) (*Node, error) {
	if old == nil || old.parentNode != n {
		return nil, hierarchyError("replaceChild", "the node to be replaced is not a child of this node")
	}
	if child == old {
		return old, nil
	}
	if _, err := n.insert("replaceChild", child, old); err != nil {
		return nil, err
	}
	n.remove("replaceChild", old)
	return old, nil
}

// RemoveChild detaches child from n.
func (n *Node) RemoveChild(child *Node) (*Node, error) {
	if child == nil || child.parentNode != n {
		return nil, hierarchyError("removeChild", "the node to be removed is not a child of this node")
	}
	n.remove("removeChild", child)
	return child, nil
}

func (n *Node) validateInsert(method string, child *Node) error {
	switch {
	case child == nil:
		return hierarchyError(method, "the node to be inserted is nil")
	case !n.canHaveChildren():
		return hierarchyError(method, fmt.Sprintf("a %s node cannot have children", n.NodeName))
	case child.NodeType == DocumentNode:
		return hierarchyError(method, "a document cannot be inserted")
	case child.Contains(n):
		return hierarchyError(method, "the new child is an ancestor of the parent")
	}
	return nil
}

func (n *Node) insert(method string, child, reference *Node) (*Node, error) {
	if err := n.validateInsert(method, child); err != nil {
		return nil, err
	}

	var nodes NodeList
	if child.NodeType == DocumentFragmentNode {
		nodes = child.childNodes.clone()
		if len(nodes) == 0 {
			return child, nil
		}
		child.childNodes = nil
		for _, node := range nodes {
			node.parentNode = nil
		}
		child.window.trigger(child, MutationChildList, mutationInit{removedNodes: nodes})
	} else {
		if reference == child {
			reference = child.NextSibling()
		}
		if child.parentNode != nil {
			child.parentNode.remove(method, child)
		}
		nodes = NodeList{child}
	}

	// a lifecycle callback run by the removal may have detached the reference
	if reference != nil && reference.parentNode != n {
		reference = nil
	}
	index := len(n.childNodes)
	if reference != nil {
		index = n.childNodes.Contains(reference)
	}
	n.childNodes.WedgeIn(index, nodes...)
	for _, node := range nodes {
		node.parentNode = n
	}
	previous := n.childNodes.Item(index - 1)
	next := n.childNodes.Item(index + len(nodes))

	n.window.logger().WithField("method", method).Debugf("[TREE]: inserted %d node(s) into %s at %d", len(nodes), n.NodeName, index)

	if doc := n.documentForChildren(); doc != nil {
		for _, node := range nodes {
			adoptSubtree(node, doc)
		}
	}
	if n.IsConnected() {
		for _, node := range nodes {
			connectSubtree(node)
		}
	}
	n.window.trigger(n, MutationChildList, mutationInit{
		addedNodes:      nodes,
		previousSibling: previous,
		nextSibling:     next,
	})
	return child, nil
}

func (n *Node) remove(method string, child *Node) {
	i := n.childNodes.Contains(child)
	if i == -1 {
		return
	}
	wasConnected := child.IsConnected()
	previous := n.childNodes.Item(i - 1)
	next := n.childNodes.Item(i + 1)
	n.childNodes.Remove(i)
	child.parentNode = nil

	n.window.logger().WithField("method", method).Debugf("[TREE]: removed %s from %s at %d", child.NodeName, n.NodeName, i)

	if wasConnected {
		disconnectSubtree(child)
	}
	n.window.trigger(n, MutationChildList, mutationInit{
		removedNodes:    NodeList{child},
		previousSibling: previous,
		nextSibling:     next,
	})
}

// replaceChildren removes every child of n then appends nodes, notifying
// each step.
func (n *Node) replaceChildren(method string, nodes NodeList) {
	for len(n.childNodes) > 0 {
		n.remove(method, n.childNodes[0])
	}
	for _, node := range nodes {
		if _, err := n.insert(method, node, nil); err != nil {
			n.window.logger().WithField("method", method).WithError(err).Warn("[TREE]: dropped node")
		}
	}
}

// appendQuiet links child under n without notifications. It is only used
// while building nodes nothing can observe yet.
func (n *Node) appendQuiet(child *Node) *Node {
	child.parentNode = n
	n.childNodes = append(n.childNodes, child)
	return child
}

// CloneNode returns a copy of n built through the document factory. The
// clone's owner document stays unset until it is attached somewhere.
func (n *Node) CloneNode(deep bool) *Node {
	var clone *Node
	switch n.NodeType {
	case ElementNode:
		clone = newElementNode(n.window, nil, n.Element.LocalName, ElementCreationOptions{Is: n.Element.Is})
		clone.Attributes = n.Attributes.clone(clone)
		if deep && n.Element.content != nil {
			for _, child := range n.Element.content.childNodes {
				clone.Element.content.appendQuiet(child.CloneNode(true))
			}
			adoptSubtree(clone.Element.content, clone.Element.content.ownerDocument)
		}
	case TextNode:
		clone = newTextNode(n.window, nil, n.Text.Data)
	case CommentNode:
		clone = newCommentNode(n.window, nil, n.Comment.Data)
	case DocumentFragmentNode:
		clone = newFragmentNode(n.window, nil)
	case DocumentNode:
		clone = newDocumentNode(n.window)
	default:
		panic(fmt.Sprintf("cannot clone node type %d", n.NodeType))
	}

	if deep {
		for _, child := range n.childNodes {
			copied := clone.appendQuiet(child.CloneNode(true))
			if clone.NodeType == DocumentNode {
				adoptSubtree(copied, clone)
			}
		}
	}
	return clone
}

func serializeNodeType(node *Node, ident int) string {
	switch node.NodeType {
	case ElementNode:
		e := "<" + node.Element.LocalName + ">"
		if node.Attributes.Length() == 0 {
			return e
		}
		keys := make([]string, 0, node.Attributes.Length())
		for _, attr := range node.Attributes.Attrs {
			keys = append(keys, attr.Name)
		}
		sort.Strings(keys)
		spaces := "| "
		for i := 1; i < ident; i++ {
			spaces += "  "
		}
		for _, name := range keys {
			value, _ := node.GetAttribute(name)
			e += "\n" + spaces + name + "=\"" + value + "\""
		}
		return e
	case TextNode:
		return "\"" + node.Text.Data + "\""
	case CommentNode:
		return "<!-- " + node.Comment.Data + " -->"
	case DocumentNode:
		return "#document"
	case DocumentFragmentNode:
		return "#document-fragment"
	default:
		return ""
	}
}

func (n *Node) serialize(ident int) string {
	ser := serializeNodeType(n, ident+1) + "\n"
	if ident > 0 {
		spaces := "| "
		for i := 1; i < ident; i++ {
			spaces += "  "
		}
		ser = spaces + ser
	}
	for _, child := range n.childNodes {
		ser += child.serialize(ident + 1)
	}
	if n.NodeType == ElementNode && n.Element.content != nil {
		for _, child := range n.Element.content.childNodes {
			ser += child.serialize(ident + 1)
		}
	}
	return ser
}

// String dumps the subtree in the html5lib tree format, one node per line.
func (n *Node) String() string {
	return strings.TrimRight(n.serialize(0), "\n")
}
