package dom

import (
	"strings"
)

// Document is the root of a tree and the factory of every other node kind.
// https://dom.spec.whatwg.org/#interface-document
type Document struct {
	documentElement, head, body *Node

	self *Node
}

// ElementCreationOptions carries the customized built-in name, if any.
// https://dom.spec.whatwg.org/#dictdef-elementcreationoptions
type ElementCreationOptions struct {
	Is string
}

// DocumentFragment is a lightweight container whose children are moved,
// not the fragment itself, when it is inserted.
type DocumentFragment struct{}

func (d *Document) DocumentElement() *Node { return d.documentElement }
func (d *Document) Head() *Node            { return d.head }
func (d *Document) Body() *Node            { return d.body }

// DefaultView returns the window the document was created by.
func (d *Document) DefaultView() *Window { return d.self.window }

// CreateElement creates an element, resolving its constructor from options.Is
// when given or from tagName otherwise. Unknown names fall back to
// HTMLUnknownElement.
func (d *Document) CreateElement(tagName string, options ...ElementCreationOptions) *Node {
	var opts ElementCreationOptions
	if len(options) > 0 {
		opts = options[0]
	}
	return newElementNode(d.self.window, d.self, tagName, opts)
}

func (d *Document) CreateTextNode(data string) *Node {
	return newTextNode(d.self.window, d.self, data)
}

func (d *Document) CreateComment(data string) *Node {
	return newCommentNode(d.self.window, d.self, data)
}

func (d *Document) CreateDocumentFragment() *Node {
	return newFragmentNode(d.self.window, d.self)
}

// CreateTreeWalker returns a walker over root. A nil filter accepts all nodes.
func (d *Document) CreateTreeWalker(root *Node, filter NodeFilter) *TreeWalker {
	return NewTreeWalker(root, filter)
}

// ImportNode returns a copy of node owned by the document.
func (d *Document) ImportNode(node *Node, deep bool) (*Node, error) {
	if node == nil || node.NodeType == DocumentNode {
		return nil, hierarchyError("importNode", "a document cannot be imported")
	}
	clone := node.CloneNode(deep)
	adoptSubtree(clone, d.self)
	return clone, nil
}

// AdoptNode detaches node from its parent and moves it, with its subtree,
// into the document.
func (d *Document) AdoptNode(node *Node) (*Node, error) {
	if node == nil || node.NodeType == DocumentNode {
		return nil, hierarchyError("adoptNode", "a document cannot be adopted")
	}
	if node.parentNode != nil {
		node.parentNode.remove("adoptNode", node)
	}
	adoptSubtree(node, d.self)
	return node, nil
}

func newDocumentNode(w *Window) *Node {
	n := &Node{
		NodeType: DocumentNode,
		NodeName: "#document",
		window:   w,
		Document: &Document{},
	}
	n.Document.self = n
	return n
}

func newTextNode(w *Window, od *Node, data string) *Node {
	return &Node{
		NodeType:      TextNode,
		NodeName:      "#text",
		ownerDocument: od,
		window:        w,
		Text:          NewText(data),
	}
}

func newCommentNode(w *Window, od *Node, data string) *Node {
	return &Node{
		NodeType:      CommentNode,
		NodeName:      "#comment",
		ownerDocument: od,
		window:        w,
		Comment:       NewComment(data),
	}
}

func newFragmentNode(w *Window, od *Node) *Node {
	return &Node{
		NodeType:         DocumentFragmentNode,
		NodeName:         "#document-fragment",
		ownerDocument:    od,
		window:           w,
		DocumentFragment: &DocumentFragment{},
	}
}

func newElementNode(w *Window, od *Node, tagName string, opts ElementCreationOptions) *Node {
	localName := strings.ToLower(tagName)
	iface, definition := w.resolveElement(localName, opts.Is)
	n := &Node{
		NodeType:      ElementNode,
		NodeName:      strings.ToUpper(tagName),
		ownerDocument: od,
		window:        w,
		Element: &Element{
			TagName:   strings.ToUpper(tagName),
			LocalName: localName,
			iface:     iface,
			void:      isVoidElement(localName),
		},
	}
	n.Element.node = n
	n.Attributes = NewNamedNodeMap(nil, n)

	if localName == "template" {
		// template contents live in an inert document and are never connected
		n.Element.content = newFragmentNode(w, newDocumentNode(w))
	}

	if definition != nil {
		if opts.Is != "" {
			n.Element.Is = definition.Name
		}
		n.Element.definition = definition
		if definition.Constructor.New != nil {
			n.Element.component = definition.Constructor.New(n)
		}
		w.logger().WithField("method", "createElement").Debugf("[LIFECYCLE]: constructed %s as %s", localName, definition.Name)
	}
	return n
}
