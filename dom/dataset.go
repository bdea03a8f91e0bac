package dom

import (
	"strings"
)

const dataPrefix = "data-"

// DOMStringMap is the dataset projection of an element: key fooBar maps to
// the attribute data-foo-bar. It holds no storage of its own; every call
// resolves through the element's attributes.
// https://html.spec.whatwg.org/#domstringmap
type DOMStringMap struct {
	element *Element
}

func isASCIIUpper(c byte) bool { return 'A' <= c && c <= 'Z' }
func isASCIILower(c byte) bool { return 'a' <= c && c <= 'z' }

// datasetAttributeName turns every ASCII upper case letter of key into '-'
// and its lower case form. Other bytes are kept.
func datasetAttributeName(key string) string {
	var b strings.Builder
	b.WriteString(dataPrefix)
	for i := 0; i < len(key); i++ {
		c := key[i]
		if isASCIIUpper(c) {
			b.WriteByte('-')
			c += 'a' - 'A'
		}
		b.WriteByte(c)
	}
	return b.String()
}

// datasetKey is the inverse of datasetAttributeName: every '-' followed by an
// ASCII lower case letter becomes that letter in upper case. Attributes with
// upper case letters have no key.
func datasetKey(attribute string) (string, bool) {
	if !strings.HasPrefix(attribute, dataPrefix) {
		return "", false
	}
	name := attribute[len(dataPrefix):]
	var b strings.Builder
	for i := 0; i < len(name); i++ {
		c := name[i]
		if isASCIIUpper(c) {
			return "", false
		}
		if c == '-' && i+1 < len(name) && isASCIILower(name[i+1]) {
			i++
			c = name[i] - ('a' - 'A')
		}
		b.WriteByte(c)
	}
	return b.String(), true
}

func (d *DOMStringMap) Get(key string) (string, bool) {
	return d.element.GetAttribute(datasetAttributeName(key))
}

// Set goes through Element.SetAttribute so observers and lifecycle callbacks
// see the change.
func (d *DOMStringMap) Set(key, value string) {
	d.element.SetAttribute(datasetAttributeName(key), value)
}

func (d *DOMStringMap) Delete(key string) {
	d.element.RemoveAttribute(datasetAttributeName(key))
}

// Keys returns the dataset keys in attribute order.
func (d *DOMStringMap) Keys() []string {
	var keys []string
	for _, attr := range d.element.Attributes.Attrs {
		if key, ok := datasetKey(attr.Name); ok {
			keys = append(keys, key)
		}
	}
	return keys
}

func (d *DOMStringMap) Len() int {
	return len(d.Keys())
}
