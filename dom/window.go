package dom

import (
	"github.com/sirupsen/logrus"
)

// Window owns the state shared by the nodes it creates: the custom element
// registry and the mutation observer table. Windows are independent of each
// other so tests can create isolated instances.
type Window struct {
	CustomElements *CustomElementRegistry
	Document       *Node

	observers *observerTable
	log       *logrus.Entry
}

type WindowOption func(*Window)

// WithLogger sets the logger used for tree, mutation and lifecycle tracing.
func WithLogger(log *logrus.Entry) WindowOption {
	return func(w *Window) {
		w.log = log
	}
}

// NewWindow creates a window with an empty registry and a fresh document.
func NewWindow(opts ...WindowOption) *Window {
	w := &Window{
		log:       logrus.NewEntry(logrus.StandardLogger()),
		observers: newObserverTable(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.CustomElements = newCustomElementRegistry(w)
	w.Document = w.NewDocument()
	return w
}

// NewDocument creates a document holding html, head and body elements.
func (w *Window) NewDocument() *Node {
	doc := newDocumentNode(w)
	html := doc.appendQuiet(doc.CreateElement("html"))
	doc.Document.documentElement = html
	doc.Document.head = html.appendQuiet(doc.CreateElement("head"))
	doc.Document.body = html.appendQuiet(doc.CreateElement("body"))
	connectSubtree(html)
	return doc
}

func (w *Window) Logger() *logrus.Entry {
	return w.logger()
}

func (w *Window) logger() *logrus.Entry {
	if w == nil || w.log == nil {
		return logrus.NewEntry(logrus.StandardLogger())
	}
	return w.log
}

func (w *Window) trigger(target *Node, typ MutationType, init mutationInit) {
	if w == nil {
		return
	}
	w.observers.trigger(target, typ, init)
}
