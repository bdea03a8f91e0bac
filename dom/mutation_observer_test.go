package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveSubtreeScenario(t *testing.T) {
	w := newTestWindow()
	doc := w.Document
	a, b, c, d := doc.CreateElement("div"), doc.CreateElement("div"), doc.CreateElement("div"), doc.CreateElement("div")
	_, _ = a.AppendChild(b)
	_, _ = b.AppendChild(c)

	log := observe(t, w, a, MutationObserverInit{ChildList: true, Subtree: true})
	_, err := b.AppendChild(d)
	require.NoError(t, err)

	require.Len(t, log.records, 1)
	assert.Equal(t, MutationChildList, log.records[0].Type)
	assert.Same(t, b, log.records[0].Target)
	assert.Equal(t, NodeList{d}, log.records[0].AddedNodes)
}

func TestObserveSubtreeFlag(t *testing.T) {
	tests := []struct {
		name    string
		subtree bool
		want    int
	}{
		{"direct children only", false, 0},
		{"whole subtree", true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWindow()
			doc := w.Document
			a, b, c := doc.CreateElement("div"), doc.CreateElement("div"), doc.CreateElement("div")
			_, _ = a.AppendChild(b)
			_, _ = b.AppendChild(c)

			log := observe(t, w, a, MutationObserverInit{ChildList: true, Attributes: true, Subtree: tt.subtree})
			c.SetAttribute("title", "grandchild")
			assert.Len(t, log.records, tt.want)
		})
	}
}

func TestAttributeOldValue(t *testing.T) {
	w := newTestWindow()
	el := w.Document.CreateElement("div")

	log := observe(t, w, el, MutationObserverInit{Attributes: true, AttributeOldValue: true})
	el.SetAttribute("id", "x")
	el.SetAttribute("id", "y")

	require.Len(t, log.records, 2)
	for _, record := range log.records {
		assert.Equal(t, MutationAttributes, record.Type)
		assert.Equal(t, "id", record.AttributeName)
		assert.Same(t, el, record.Target)
	}
	assert.Nil(t, log.records[0].OldValue)
	assert.Equal(t, strPtr("x"), log.records[1].OldValue)
}

func TestAttributeOldValueNotRequested(t *testing.T) {
	w := newTestWindow()
	el := w.Document.CreateElement("div")
	el.SetAttribute("id", "x")

	log := observe(t, w, el, MutationObserverInit{Attributes: true})
	el.SetAttribute("id", "y")

	require.Len(t, log.records, 1)
	assert.Nil(t, log.records[0].OldValue)
}

func TestAttributeFilter(t *testing.T) {
	w := newTestWindow()
	el := w.Document.CreateElement("div")

	log := observe(t, w, el, MutationObserverInit{AttributeFilter: []string{"class"}})
	el.SetAttribute("id", "ignored")
	el.SetAttribute("class", "seen")

	require.Len(t, log.records, 1)
	assert.Equal(t, "class", log.records[0].AttributeName)
}

func TestRemoveAttributeRecord(t *testing.T) {
	w := newTestWindow()
	el := w.Document.CreateElement("div")
	el.SetAttribute("hidden", "")

	log := observe(t, w, el, MutationObserverInit{AttributeOldValue: true})
	el.RemoveAttribute("hidden")
	el.RemoveAttribute("hidden")

	require.Len(t, log.records, 1)
	assert.Equal(t, "hidden", log.records[0].AttributeName)
	assert.Equal(t, strPtr(""), log.records[0].OldValue)
	assert.False(t, el.HasAttribute("hidden"))
}

func TestObserveWithoutATypeNeverMatches(t *testing.T) {
	w := newTestWindow()
	var calls int
	observer := w.NewMutationObserver(func([]*MutationRecord, *MutationObserver) { calls++ })
	require.NoError(t, observer.Observe(w.Document, MutationObserverInit{Subtree: true}))

	el := w.Document.CreateElement("div")
	_, err := w.Document.Body().AppendChild(el)
	require.NoError(t, err)
	el.SetAttribute("id", "x")
	assert.Zero(t, calls)

	assert.Error(t, observer.Observe(nil, MutationObserverInit{ChildList: true}))
}

func TestObserveTwiceReplacesOptions(t *testing.T) {
	w := newTestWindow()
	el := w.Document.CreateElement("div")
	var count int
	observer := w.NewMutationObserver(func(records []*MutationRecord, _ *MutationObserver) {
		count += len(records)
	})
	require.NoError(t, observer.Observe(el, MutationObserverInit{ChildList: true}))
	require.NoError(t, observer.Observe(el, MutationObserverInit{Attributes: true}))

	_, _ = el.AppendChild(w.Document.CreateElement("p"))
	assert.Equal(t, 0, count)
	el.SetAttribute("id", "x")
	assert.Equal(t, 1, count)
}

func TestOneCallbackPerSubscription(t *testing.T) {
	w := newTestWindow()
	doc := w.Document
	outer, inner := doc.CreateElement("div"), doc.CreateElement("div")
	_, _ = outer.AppendChild(inner)

	var targets []*Node
	observer := w.NewMutationObserver(func(records []*MutationRecord, _ *MutationObserver) {
		require.Len(t, records, 1)
		targets = append(targets, records[0].Target)
	})
	require.NoError(t, observer.Observe(outer, MutationObserverInit{ChildList: true, Subtree: true}))
	require.NoError(t, observer.Observe(inner, MutationObserverInit{ChildList: true}))

	_, _ = inner.AppendChild(doc.CreateTextNode("x"))
	assert.Equal(t, []*Node{inner, inner}, targets)
}

func TestDisconnect(t *testing.T) {
	w := newTestWindow()
	doc := w.Document
	a, b := doc.CreateElement("div"), doc.CreateElement("div")
	var count int
	observer := w.NewMutationObserver(func(records []*MutationRecord, _ *MutationObserver) {
		count += len(records)
	})
	require.NoError(t, observer.Observe(a, MutationObserverInit{ChildList: true}))
	require.NoError(t, observer.Observe(b, MutationObserverInit{Attributes: true}))

	observer.Disconnect()
	_, _ = a.AppendChild(doc.CreateElement("p"))
	b.SetAttribute("id", "x")
	assert.Zero(t, count)
	assert.Empty(t, w.observers.subscriptions)
}

func TestCallbackMutationIsDeliveredSynchronously(t *testing.T) {
	w := newTestWindow()
	doc := w.Document
	root := doc.CreateElement("div")

	var types []MutationType
	observer := w.NewMutationObserver(func(records []*MutationRecord, _ *MutationObserver) {
		for _, record := range records {
			types = append(types, record.Type)
			if record.Type == MutationChildList && len(record.AddedNodes) == 1 && record.AddedNodes[0].NodeType == ElementNode {
				record.AddedNodes[0].SetAttribute("seen", "true")
			}
		}
	})
	require.NoError(t, observer.Observe(root, MutationObserverInit{ChildList: true, Attributes: true, Subtree: true}))

	child := doc.CreateElement("p")
	_, _ = root.AppendChild(child)

	assert.Equal(t, []MutationType{MutationChildList, MutationAttributes}, types)
	assert.True(t, child.HasAttribute("seen"))
}
