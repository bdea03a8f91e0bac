package dom

// Attr is one name/value pair of an element. Attr values are snapshots:
// changing an attribute replaces its Attr instead of mutating it, so clones
// may share them.
// https://dom.spec.whatwg.org/#attr
type Attr struct {
	Name  string
	Value string
}

// NamedNodeMap is the ordered attribute list of an element. Names are
// unique and case-sensitive.
// https://dom.spec.whatwg.org/#namednodemap
type NamedNodeMap struct {
	Attrs             []*Attr
	AssociatedElement *Node
}

func NewNamedNodeMap(attrs []*Attr, oe *Node) *NamedNodeMap {
	m := &NamedNodeMap{AssociatedElement: oe}
	for _, attr := range attrs {
		m.setNamedItem(attr)
	}
	return m
}

func (n *NamedNodeMap) Length() int {
	if n == nil {
		return 0
	}
	return len(n.Attrs)
}

func (n *NamedNodeMap) Item(i int) *Attr {
	if i < 0 || i >= n.Length() {
		return nil
	}
	return n.Attrs[i]
}

func (n *NamedNodeMap) GetNamedItem(qn string) *Attr {
	if i := n.index(qn); i >= 0 {
		return n.Attrs[i]
	}
	return nil
}

func (n *NamedNodeMap) index(qn string) int {
	if n == nil {
		return -1
	}
	for i, attr := range n.Attrs {
		if attr.Name == qn {
			return i
		}
	}
	return -1
}

// setNamedItem stores attr in place of a same-named entry, or appends it.
// It returns the replaced entry.
func (n *NamedNodeMap) setNamedItem(attr *Attr) *Attr {
	if i := n.index(attr.Name); i >= 0 {
		old := n.Attrs[i]
		n.Attrs[i] = attr
		return old
	}
	n.Attrs = append(n.Attrs, attr)
	return nil
}

func (n *NamedNodeMap) removeNamedItem(qn string) *Attr {
	i := n.index(qn)
	if i < 0 {
		return nil
	}
	old := n.Attrs[i]
	n.Attrs = append(n.Attrs[:i], n.Attrs[i+1:]...)
	return old
}

// clone copies the list, sharing the Attr snapshots.
func (n *NamedNodeMap) clone(oe *Node) *NamedNodeMap {
	attrs := make([]*Attr, n.Length())
	copy(attrs, n.Attrs)
	return &NamedNodeMap{Attrs: attrs, AssociatedElement: oe}
}
