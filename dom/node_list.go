package dom

// NodeList is an ordered list of nodes.
// https://dom.spec.whatwg.org/#nodelist
type NodeList []*Node

// Length returns the number of nodes in the list.
func (h NodeList) Length() int { return len(h) }

// Item returns the node at index i or nil when out of range.
func (h NodeList) Item(i int) *Node {
	if i < 0 || i >= len(h) {
		return nil
	}
	return h[i]
}

// Contains returns the index of n in the list, or -1.
func (h *NodeList) Contains(n *Node) int {
	for i := range *h {
		if n == (*h)[i] {
			return i
		}
	}
	return -1
}

// Remove removes and returns the node at index i.
func (h *NodeList) Remove(i int) *Node {
	if i < 0 {
		return nil
	}
	if i >= len(*h) {
		return nil
	}
	node := (*h)[i]
	*h = append((*h)[:i], (*h)[i+1:]...)
	return node
}

// WedgeIn inserts the nodes at index i, shifting the following ones.
func (h *NodeList) WedgeIn(i int, nodes ...*Node) {
	if i < 0 {
		return
	}
	if i >= len(*h) {
		*h = append(*h, nodes...)
		return
	}
	tail := append(NodeList{}, (*h)[i:]...)
	*h = append(append((*h)[:i], nodes...), tail...)
}

func (h NodeList) clone() NodeList {
	if len(h) == 0 {
		return nil
	}
	return append(NodeList{}, h...)
}
