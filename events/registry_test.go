package events

import (
	"io"
	"testing"

	"github.com/heathj/minidom/dom"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type object struct {
	name string
}

func newTestRegistry() *Registry {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewRegistry(WithLogger(logrus.NewEntry(log)))
}

func recordingListener(calls *[]string, name string) *Listener {
	return NewListener(func(*Event) {
		*calls = append(*calls, name)
	})
}

func TestDispatchOnPlainObject(t *testing.T) {
	r := newTestRegistry()
	target := &object{name: "store"}

	var got *Event
	l := NewListener(func(e *Event) { got = e })
	entry := r.AddEventListener(target, "change", l)
	assert.Same(t, entry, r.AddEventListener(target, "change", l))

	assert.True(t, r.DispatchEvent(target, "change", 42))
	require.NotNil(t, got)
	assert.Equal(t, "change", got.Type)
	assert.Equal(t, target, got.Target)
	assert.Equal(t, 42, got.Detail)

	got = nil
	r.DispatchEvent(&object{name: "other"}, "change", 1)
	r.DispatchEvent(target, "other", 1)
	assert.Nil(t, got)
}

func TestDuplicateListenerFiresOnce(t *testing.T) {
	r := newTestRegistry()
	target := &object{}
	var calls []string
	l := recordingListener(&calls, "l")
	r.AddEventListener(target, "tick", l)
	r.AddEventListener(target, "tick", l, Options{Capture: true})

	r.DispatchEvent(target, "tick", nil)
	assert.Equal(t, []string{"l"}, calls)
}

func TestOnce(t *testing.T) {
	r := newTestRegistry()
	target := &object{}
	var calls []string
	r.AddEventListener(target, "tick", recordingListener(&calls, "once"), Options{Once: true})
	r.AddEventListener(target, "tick", recordingListener(&calls, "always"))

	r.DispatchEvent(target, "tick", nil)
	r.DispatchEvent(target, "tick", nil)
	assert.Equal(t, []string{"once", "always", "always"}, calls)
	assert.Len(t, r.Listeners(target)["tick"], 1)
}

func TestCaptureRunsFirst(t *testing.T) {
	r := newTestRegistry()
	target := &object{}
	var calls []string
	r.AddEventListener(target, "tick", recordingListener(&calls, "bubble-1"))
	r.AddEventListener(target, "tick", recordingListener(&calls, "capture-1"), Options{Capture: true})
	r.AddEventListener(target, "tick", recordingListener(&calls, "bubble-2"))
	r.AddEventListener(target, "tick", recordingListener(&calls, "capture-2"), Options{Capture: true})

	r.DispatchEvent(target, "tick", nil)
	assert.Equal(t, []string{"capture-1", "capture-2", "bubble-1", "bubble-2"}, calls)
}

func TestRemoveEventListener(t *testing.T) {
	r := newTestRegistry()
	target := &object{}
	var calls []string
	a, b := recordingListener(&calls, "a"), recordingListener(&calls, "b")
	r.AddEventListener(target, "one", a)
	r.AddEventListener(target, "one", b)
	r.AddEventListener(target, "two", a)

	removed := r.RemoveEventListener(target, "one", a)
	require.Len(t, removed, 1)
	assert.Same(t, a, removed[0].Listener)
	r.DispatchEvent(target, "one", nil)
	assert.Equal(t, []string{"b"}, calls)

	assert.Len(t, r.RemoveEventListener(target, "one", nil), 1)
	_, ok := r.Listeners(target)["one"]
	assert.False(t, ok)

	assert.Len(t, r.RemoveEventListener(target, "", nil), 1)
	assert.Nil(t, r.Listeners(target))
	assert.Empty(t, r.RemoveEventListener(target, "", nil))
}

func TestDispatchUsesSnapshot(t *testing.T) {
	r := newTestRegistry()
	target := &object{}
	var calls []string
	late := recordingListener(&calls, "late")
	var removedLater *Listener
	adder := NewListener(func(*Event) {
		calls = append(calls, "adder")
		r.AddEventListener(target, "tick", late)
		r.RemoveEventListener(target, "tick", removedLater)
	})
	removedLater = recordingListener(&calls, "removed")
	r.AddEventListener(target, "tick", adder)
	r.AddEventListener(target, "tick", removedLater)
	r.AddEventListener(target, "tick", recordingListener(&calls, "last"))

	r.DispatchEvent(target, "tick", nil)
	assert.Equal(t, []string{"adder", "removed", "last"}, calls)

	calls = nil
	r.DispatchEvent(target, "tick", nil)
	assert.Equal(t, []string{"adder", "last", "late"}, calls)
}

func TestPreventDefault(t *testing.T) {
	tests := []struct {
		name       string
		options    Options
		cancelable bool
		want       bool
	}{
		{"cancelable", Options{}, true, false},
		{"not cancelable", Options{}, false, true},
		{"passive listener", Options{Passive: true}, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRegistry()
			target := &object{}
			r.AddEventListener(target, "submit", NewListener(func(e *Event) { e.PreventDefault() }), tt.options)
			assert.Equal(t, tt.want, r.DispatchEvent(target, "submit", nil, EventInit{Cancelable: tt.cancelable}))
		})
	}
}

func TestStopImmediatePropagation(t *testing.T) {
	r := newTestRegistry()
	target := &object{}
	var calls []string
	r.AddEventListener(target, "tick", NewListener(func(e *Event) {
		calls = append(calls, "first")
		e.StopImmediatePropagation()
	}))
	r.AddEventListener(target, "tick", recordingListener(&calls, "second"))

	r.DispatchEvent(target, "tick", nil)
	assert.Equal(t, []string{"first"}, calls)
}

func TestRegister(t *testing.T) {
	r := newTestRegistry()
	w := dom.NewWindow()
	el := w.Document.CreateElement("div")
	var calls []string
	first := recordingListener(&calls, "first")

	assert.Same(t, first, r.Register(el, "click", first))
	assert.Same(t, first, r.Register(el, "click", recordingListener(&calls, "second")))
	assert.Same(t, first, r.GetListener(el, "click"))
	assert.Nil(t, r.GetListener(el, "keyup"))

	entry := r.AddEventListener(r.Global(), "click", first)
	assert.Same(t, el, entry.Source)

	r.RemoveEventListener(r.Global(), "click", first)
	assert.Nil(t, r.GetListener(el, "click"))

	r.Register(el, "click", first)
	r.Unregister(first)
	assert.Nil(t, r.GetListener(el, "click"))
}

func TestSharedTargetDocumentOrder(t *testing.T) {
	w := dom.NewWindow()
	body := w.Document.Body()
	body.SetInnerHTML("<div><p>inner</p></div><span>after</span>")
	div, span := body.FirstChild(), body.LastChild()
	p := div.FirstChild()

	for _, target := range []string{"global", "document"} {
		t.Run(target, func(t *testing.T) {
			r := newTestRegistry()
			var shared interface{} = r.Global()
			if target == "document" {
				shared = w.Document
			}
			var calls []string
			r.AddEventListener(shared, "ready", r.Register(span, "ready", recordingListener(&calls, "span")))
			r.AddEventListener(shared, "ready", r.Register(p, "ready", recordingListener(&calls, "p")))
			r.AddEventListener(shared, "ready", recordingListener(&calls, "unsourced"))
			r.AddEventListener(shared, "ready", r.Register(div, "ready", recordingListener(&calls, "div")))

			r.DispatchEvent(shared, "ready", nil)
			assert.Equal(t, []string{"unsourced", "div", "p", "span"}, calls)
		})
	}
}

func TestPlainTargetKeepsRegistrationOrder(t *testing.T) {
	w := dom.NewWindow()
	body := w.Document.Body()
	body.SetInnerHTML("<i>a</i><b>b</b>")
	i, b := body.FirstChild(), body.LastChild()

	r := newTestRegistry()
	target := &object{}
	var calls []string
	r.AddEventListener(target, "ready", r.Register(b, "ready", recordingListener(&calls, "b")))
	r.AddEventListener(target, "ready", r.Register(i, "ready", recordingListener(&calls, "i")))

	r.DispatchEvent(target, "ready", nil)
	assert.Equal(t, []string{"b", "i"}, calls)
}

type nativeTarget struct {
	added, removed []*Listener
	dispatched     []*Event
}

func (n *nativeTarget) AddNativeListener(_ string, l *Listener, _ Options) {
	n.added = append(n.added, l)
}

func (n *nativeTarget) RemoveNativeListener(_ string, l *Listener, _ Options) {
	n.removed = append(n.removed, l)
}

func (n *nativeTarget) DispatchNativeEvent(e *Event) bool {
	n.dispatched = append(n.dispatched, e)
	for _, l := range n.added {
		l.HandleEvent(e)
	}
	return !e.DefaultPrevented()
}

func TestNativeTargetDelegation(t *testing.T) {
	r := newTestRegistry()
	target := &nativeTarget{}
	var calls []string
	l := recordingListener(&calls, "native")

	r.AddEventListener(target, "tick", l)
	require.Len(t, target.added, 1)

	assert.True(t, r.DispatchEvent(target, "tick", "payload", EventInit{Bubbles: true}))
	require.Len(t, target.dispatched, 1)
	assert.Equal(t, "payload", target.dispatched[0].Detail)
	assert.True(t, target.dispatched[0].Bubbles)
	assert.Equal(t, []string{"native"}, calls)

	r.RemoveEventListener(target, "tick", l)
	require.Len(t, target.removed, 1)
	assert.Same(t, target.added[0], target.removed[0])
}

func TestNativeOnceRemovesItself(t *testing.T) {
	r := newTestRegistry()
	target := &nativeTarget{}
	var calls []string
	r.AddEventListener(target, "tick", recordingListener(&calls, "once"), Options{Once: true})

	r.DispatchEvent(target, "tick", nil)
	assert.Equal(t, []string{"once"}, calls)
	assert.Len(t, target.removed, 1)
	assert.Nil(t, r.Listeners(target))
}
