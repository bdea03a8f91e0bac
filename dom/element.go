package dom

// Element is an individual element in the tree. Its interface is decided
// once, at creation, by the document factory.
// https://dom.spec.whatwg.org/#interface-element
type Element struct {
	TagName, LocalName string
	// Is names the customized built-in definition governing the element.
	Is         string
	Attributes *NamedNodeMap

	node       *Node
	iface      Interface
	void       bool
	content    *Node
	definition *CustomElementDefinition
	component  interface{}
	state      LifecycleState
}

// Interface returns the interface the element was created with.
func (e *Element) Interface() Interface { return e.iface }

// IsVoid reports whether the element serializes without children or a
// closing tag.
func (e *Element) IsVoid() bool { return e.void }

// Content returns the fragment holding a template element's markup.
func (e *Element) Content() *Node { return e.content }

// Component returns the instance built by the custom element constructor,
// or nil for plain elements.
func (e *Element) Component() interface{} { return e.component }

// Definition returns the custom element definition of the element, if any.
func (e *Element) Definition() *CustomElementDefinition { return e.definition }

// LifecycleState returns where the element stands in the
// constructed → connected ⇄ disconnected state machine.
func (e *Element) LifecycleState() LifecycleState { return e.state }

func (e *Element) HasAttributes() bool { return e.Attributes.Length() > 0 }

func (e *Element) GetAttributeNames() []string {
	names := make([]string, 0, e.Attributes.Length())
	for _, attr := range e.Attributes.Attrs {
		names = append(names, attr.Name)
	}
	return names
}

// GetAttribute returns the value of the named attribute and whether it is
// present.
func (e *Element) GetAttribute(qualifiedName string) (string, bool) {
	if attr := e.Attributes.GetNamedItem(qualifiedName); attr != nil {
		return attr.Value, true
	}
	return "", false
}

func (e *Element) HasAttribute(qualifiedName string) bool {
	return e.Attributes.GetNamedItem(qualifiedName) != nil
}

// ID returns the id attribute.
func (e *Element) ID() string {
	id, _ := e.GetAttribute("id")
	return id
}

// SetAttribute sets the value of the named attribute. When the name is
// observed by the element's custom definition, the attribute changed
// callback runs before the store is updated and before the mutation record
// is queued, even when the value is unchanged.
func (e *Element) SetAttribute(qualifiedName, value string) {
	e.changeAttribute("setAttribute", qualifiedName, &value)
}

// RemoveAttribute removes the named attribute. The removal is a transition
// to the absent value: it runs the attribute changed callback with a nil new
// value and queues an attributes record. Removing an absent attribute does
// nothing.
func (e *Element) RemoveAttribute(qualifiedName string) {
	if !e.HasAttribute(qualifiedName) {
		return
	}
	e.changeAttribute("removeAttribute", qualifiedName, nil)
}

// ToggleAttribute adds the attribute with an empty value when absent and
// removes it when present. A force value pins the outcome. It returns
// whether the attribute is present afterwards.
func (e *Element) ToggleAttribute(qualifiedName string, force ...bool) bool {
	present := e.HasAttribute(qualifiedName)
	want := !present
	if len(force) > 0 {
		want = force[0]
	}
	switch {
	case want && !present:
		e.SetAttribute(qualifiedName, "")
	case !want && present:
		e.RemoveAttribute(qualifiedName)
	}
	return want
}

// Dataset returns the live data-* view of the element.
func (e *Element) Dataset() *DOMStringMap {
	return &DOMStringMap{element: e}
}

func (e *Element) changeAttribute(method, name string, value *string) {
	var old *string
	if attr := e.Attributes.GetNamedItem(name); attr != nil {
		v := attr.Value
		old = &v
	}

	attributeChanged(e.node, name, old, value)

	if value == nil {
		e.Attributes.removeNamedItem(name)
	} else {
		e.Attributes.setNamedItem(&Attr{Name: name, Value: *value})
	}

	e.node.window.logger().WithField("method", method).Debugf("[TREE]: %s attribute %q changed", e.LocalName, name)
	e.node.window.trigger(e.node, MutationAttributes, mutationInit{
		attributeName: name,
		oldValue:      old,
	})
}
