package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateElementNames(t *testing.T) {
	w := newTestWindow()
	tests := []struct {
		tag       string
		nodeName  string
		localName string
		iface     Interface
		void      bool
	}{
		{"div", "DIV", "div", "HTMLDivElement", false},
		{"SPAN", "SPAN", "span", "HTMLSpanElement", false},
		{"h3", "H3", "h3", "HTMLHeadingElement", false},
		{"section", "SECTION", "section", HTMLElementInterface, false},
		{"br", "BR", "br", "HTMLBRElement", true},
		{"img", "IMG", "img", "HTMLImageElement", true},
		{"col", "COL", "col", "HTMLTableColElement", true},
		{"made-up", "MADE-UP", "made-up", HTMLUnknownElementInterface, false},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			el := w.Document.CreateElement(tt.tag)
			assert.Equal(t, ElementNode, el.NodeType)
			assert.Equal(t, tt.nodeName, el.NodeName)
			assert.Equal(t, tt.nodeName, el.TagName)
			assert.Equal(t, tt.localName, el.LocalName)
			assert.Equal(t, tt.iface, el.Interface())
			assert.Equal(t, tt.void, el.IsVoid())
			assert.Same(t, w.Document, el.OwnerDocument())
			assert.Equal(t, LifecycleConstructed, el.LifecycleState())
		})
	}
}

func TestAttributes(t *testing.T) {
	w := newTestWindow()
	el := w.Document.CreateElement("input")

	assert.False(t, el.HasAttributes())
	_, ok := el.GetAttribute("type")
	assert.False(t, ok)

	el.SetAttribute("type", "text")
	el.SetAttribute("name", "q")
	el.SetAttribute("type", "search")
	assert.Equal(t, []string{"type", "name"}, el.GetAttributeNames())
	value, ok := el.GetAttribute("type")
	assert.True(t, ok)
	assert.Equal(t, "search", value)
	assert.Nil(t, el.Attributes.GetNamedItem("Type"))

	el.RemoveAttribute("type")
	assert.Equal(t, []string{"name"}, el.GetAttributeNames())
	assert.Equal(t, 1, el.Attributes.Length())
	assert.Equal(t, "name", el.Attributes.Item(0).Name)
	assert.Nil(t, el.Attributes.Item(1))
}

func TestToggleAttribute(t *testing.T) {
	w := newTestWindow()
	el := w.Document.CreateElement("details")

	assert.True(t, el.ToggleAttribute("open"))
	value, ok := el.GetAttribute("open")
	assert.True(t, ok)
	assert.Equal(t, "", value)
	assert.False(t, el.ToggleAttribute("open"))
	assert.False(t, el.HasAttribute("open"))
	assert.False(t, el.ToggleAttribute("open", false))
	assert.True(t, el.ToggleAttribute("open", true))
	assert.True(t, el.ToggleAttribute("open", true))
	assert.True(t, el.HasAttribute("open"))
}

func TestDataset(t *testing.T) {
	w := newTestWindow()
	el := w.Document.CreateElement("div")
	dataset := el.Dataset()

	dataset.Set("userId", "42")
	dataset.Set("theme", "dark")
	value, ok := el.GetAttribute("data-user-id")
	require.True(t, ok)
	assert.Equal(t, "42", value)

	el.SetAttribute("data-long-key-name", "v")
	el.SetAttribute("title", "not data")
	assert.Equal(t, []string{"userId", "theme", "longKeyName"}, dataset.Keys())
	assert.Equal(t, 3, dataset.Len())

	got, ok := dataset.Get("longKeyName")
	assert.True(t, ok)
	assert.Equal(t, "v", got)

	dataset.Delete("userId")
	assert.False(t, el.HasAttribute("data-user-id"))
	_, ok = dataset.Get("userId")
	assert.False(t, ok)
}

func TestDatasetKeysResolve(t *testing.T) {
	w := newTestWindow()
	el := w.Document.CreateElement("span")
	el.SetAttribute("data-item1", "v")
	el.SetAttribute("data-snake_case", "s")
	el.SetAttribute("data-foo-1-bar", "f")
	el.SetAttribute("data-Upper", "skipped")
	dataset := el.Dataset()

	dataset.Set("item2", "z")
	dataset.Set("x2Y", "y")
	assert.Equal(t, []string{"data-item1", "data-snake_case", "data-foo-1-bar", "data-Upper", "data-item2", "data-x2-y"}, el.GetAttributeNames())
	assert.Equal(t, []string{"item1", "snake_case", "foo-1Bar", "item2", "x2Y"}, dataset.Keys())

	for _, key := range dataset.Keys() {
		_, ok := dataset.Get(key)
		assert.True(t, ok, key)
	}
	got, _ := dataset.Get("item1")
	assert.Equal(t, "v", got)
}

func TestDatasetIsObserved(t *testing.T) {
	w := newTestWindow()
	el := w.Document.CreateElement("div")
	log := observe(t, w, el, MutationObserverInit{Attributes: true})

	el.Dataset().Set("state", "open")
	el.Dataset().Delete("state")

	require.Len(t, log.records, 2)
	assert.Equal(t, "data-state", log.records[0].AttributeName)
	assert.Equal(t, "data-state", log.records[1].AttributeName)
}
