package dom

import (
	"strings"
)

// InnerHTML serializes the children of n. Template elements serialize their
// content fragment.
func (n *Node) InnerHTML() string {
	var b strings.Builder
	for _, child := range n.markupChildren() {
		writeNode(&b, child)
	}
	return b.String()
}

// OuterHTML serializes n itself along with its children.
func (n *Node) OuterHTML() string {
	var b strings.Builder
	writeNode(&b, n)
	return b.String()
}

// SetInnerHTML replaces the children of n with the nodes parsed from markup.
// Each removal and insertion is observed as usual. Nodes that cannot have
// children, void elements included, ignore the call.
func (n *Node) SetInnerHTML(markup string) {
	target := n.markupTarget()
	if target == nil {
		return
	}
	nodes := parseMarkup(target.window, target.documentForChildren(), markup)
	target.replaceChildren("innerHTML", nodes)
}

// InnerText concatenates the text of all non-comment descendants.
func (n *Node) InnerText() string {
	var b strings.Builder
	for _, child := range n.childNodes {
		switch child.NodeType {
		case TextNode:
			b.WriteString(child.Text.Data)
		case ElementNode, DocumentFragmentNode:
			b.WriteString(child.InnerText())
		}
	}
	return b.String()
}

// SetInnerText replaces the children of n with a single text node, or with
// nothing when text is empty.
func (n *Node) SetInnerText(text string) {
	if !n.canHaveChildren() {
		return
	}
	var nodes NodeList
	if text != "" {
		nodes = NodeList{newTextNode(n.window, n.documentForChildren(), text)}
	}
	n.replaceChildren("innerText", nodes)
}

func (n *Node) markupChildren() NodeList {
	if n.NodeType == ElementNode && n.Element.content != nil {
		return n.Element.content.childNodes
	}
	return n.childNodes
}

func (n *Node) markupTarget() *Node {
	if !n.canHaveChildren() {
		return nil
	}
	if n.NodeType == ElementNode {
		if n.Element.content != nil {
			return n.Element.content
		}
		if n.Element.void {
			return nil
		}
	}
	return n
}

func writeNode(b *strings.Builder, n *Node) {
	switch n.NodeType {
	case TextNode:
		b.WriteString(n.Text.Data)
	case CommentNode:
		b.WriteString("<!--")
		b.WriteString(n.Comment.Data)
		b.WriteString("-->")
	case DocumentNode, DocumentFragmentNode:
		for _, child := range n.childNodes {
			writeNode(b, child)
		}
	case ElementNode:
		b.WriteByte('<')
		b.WriteString(n.Element.LocalName)
		for _, attr := range n.Attributes.Attrs {
			b.WriteByte(' ')
			b.WriteString(attr.Name)
			b.WriteByte('=')
			writeAttributeValue(b, attr.Value)
		}
		b.WriteByte('>')
		if n.Element.void {
			return
		}
		for _, child := range n.markupChildren() {
			writeNode(b, child)
		}
		b.WriteString("</")
		b.WriteString(n.Element.LocalName)
		b.WriteByte('>')
	}
}

// writeAttributeValue wraps value in double quotes, or in single quotes when it
// holds a double quote. A value holding both kinds writes '"' as &quot;.
func writeAttributeValue(b *strings.Builder, value string) {
	switch {
	case !strings.Contains(value, `"`):
		b.WriteString(`"` + value + `"`)
	case !strings.Contains(value, "'"):
		b.WriteString("'" + value + "'")
	default:
		b.WriteString(`"` + strings.ReplaceAll(value, `"`, "&quot;") + `"`)
	}
}
