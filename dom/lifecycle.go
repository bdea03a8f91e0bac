package dom

// LifecycleState is the position of an element in the
// constructed → connected ⇄ disconnected state machine.
type LifecycleState uint8

const (
	LifecycleConstructed LifecycleState = iota
	LifecycleConnected
	LifecycleDisconnected
)

func (s LifecycleState) String() string {
	switch s {
	case LifecycleConstructed:
		return "constructed"
	case LifecycleConnected:
		return "connected"
	case LifecycleDisconnected:
		return "disconnected"
	}
	return "unknown"
}

// ConnectedCallback is implemented by components that want to know when
// their element becomes reachable from a document.
type ConnectedCallback interface {
	ConnectedCallback()
}

// DisconnectedCallback is the reverse of ConnectedCallback.
type DisconnectedCallback interface {
	DisconnectedCallback()
}

// AdoptedCallback fires when the owner document of an element changes to a
// different document. It does not fire on the first assignment.
type AdoptedCallback interface {
	AdoptedCallback(oldDocument, newDocument *Node)
}

// AttributeChangedCallback fires from Element.SetAttribute and
// Element.RemoveAttribute for observed attributes. A nil value means the
// attribute is absent.
type AttributeChangedCallback interface {
	AttributeChangedCallback(name string, oldValue, newValue *string)
}

// flatten returns root and its descendants in pre-order.
func flatten(root *Node) NodeList {
	list := NodeList{root}
	for _, child := range root.childNodes {
		list = append(list, flatten(child)...)
	}
	return list
}

// connectSubtree moves every element under root that is not yet connected
// to the connected state. The list is taken before any callback runs, and
// each node is checked again since callbacks may move it.
func connectSubtree(root *Node) {
	for _, node := range flatten(root) {
		if node.NodeType != ElementNode || node.Element.state == LifecycleConnected || !node.IsConnected() {
			continue
		}
		node.Element.state = LifecycleConnected
		if cb, ok := node.Element.component.(ConnectedCallback); ok {
			node.window.logger().WithField("method", "connectedCallback").Debugf("[LIFECYCLE]: %s connected", node.Element.LocalName)
			cb.ConnectedCallback()
		}
	}
}

func disconnectSubtree(root *Node) {
	for _, node := range flatten(root) {
		if node.NodeType != ElementNode || node.Element.state != LifecycleConnected || node.IsConnected() {
			continue
		}
		node.Element.state = LifecycleDisconnected
		if cb, ok := node.Element.component.(DisconnectedCallback); ok {
			node.window.logger().WithField("method", "disconnectedCallback").Debugf("[LIFECYCLE]: %s disconnected", node.Element.LocalName)
			cb.DisconnectedCallback()
		}
	}
}

// adoptSubtree sets the owner document of root and its descendants.
func adoptSubtree(root, doc *Node) {
	for _, node := range flatten(root) {
		old := node.ownerDocument
		if node == doc {
			continue
		}
		node.ownerDocument = doc
		node.window = doc.window
		if old == nil || old == doc || node.NodeType != ElementNode {
			continue
		}
		if cb, ok := node.Element.component.(AdoptedCallback); ok {
			node.window.logger().WithField("method", "adoptedCallback").Debugf("[LIFECYCLE]: %s adopted", node.Element.LocalName)
			cb.AdoptedCallback(old, doc)
		}
	}
}

func attributeChanged(node *Node, name string, oldValue, newValue *string) {
	definition := node.Element.definition
	if definition == nil || !definition.Observes(name) {
		return
	}
	if cb, ok := node.Element.component.(AttributeChangedCallback); ok {
		node.window.logger().WithField("method", "attributeChangedCallback").Debugf("[LIFECYCLE]: %s attribute %q changed", node.Element.LocalName, name)
		cb.AttributeChangedCallback(name, oldValue, newValue)
	}
}
