package dom

// CharacterData is https://dom.spec.whatwg.org/#characterdata
type CharacterData struct {
	Data string
}

// Text is https://dom.spec.whatwg.org/#text
type Text struct {
	*CharacterData
}

func NewText(data string) *Text {
	return &Text{CharacterData: &CharacterData{Data: data}}
}

// Comment is https://dom.spec.whatwg.org/#interface-comment
type Comment struct {
	*CharacterData
}

// NewComment returns a comment with its Data section filled.
func NewComment(data string) *Comment {
	return &Comment{CharacterData: &CharacterData{Data: data}}
}

func (n *Node) characterData() *CharacterData {
	switch n.NodeType {
	case TextNode:
		return n.Text.CharacterData
	case CommentNode:
		return n.Comment.CharacterData
	}
	return nil
}

// NodeValue returns the data of text and comment nodes, and "" otherwise.
func (n *Node) NodeValue() string {
	if cd := n.characterData(); cd != nil {
		return cd.Data
	}
	return ""
}

// SetNodeValue replaces the data of a text or comment node and queues a
// characterData record. It does nothing for other node kinds.
func (n *Node) SetNodeValue(data string) {
	cd := n.characterData()
	if cd == nil {
		return
	}
	old := cd.Data
	cd.Data = data
	n.window.logger().WithField("method", "setNodeValue").Debugf("[TREE]: %s data changed", n.NodeName)
	n.window.trigger(n, MutationCharacterData, mutationInit{oldValue: &old})
}

// TextContent returns the data of character data nodes and the readable
// text of containers.
func (n *Node) TextContent() string {
	if cd := n.characterData(); cd != nil {
		return cd.Data
	}
	return n.InnerText()
}

// SetTextContent sets the data of character data nodes and replaces the
// children of containers with a single text node.
func (n *Node) SetTextContent(text string) {
	if n.characterData() != nil {
		n.SetNodeValue(text)
		return
	}
	n.SetInnerText(text)
}
