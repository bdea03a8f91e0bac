package datasource

import (
	"context"

	"github.com/heathj/minidom/client"
	"github.com/heathj/minidom/dom"
	"github.com/heathj/minidom/events"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// attachment is the set of sources of one element, grouped by the event that
// starts their loading.
type attachment struct {
	keys    []string
	sources map[string][]*Source
}

func (a *attachment) all() []*Source {
	var all []*Source
	for _, key := range a.keys {
		all = append(all, a.sources[key]...)
	}
	return all
}

// Controller wires sources to elements through the event registry: an
// element's load event starts loading its sources, and once every source
// sharing that event has data, the element receives a data event carrying
// the merged data.
type Controller struct {
	events   *events.Registry
	client   *client.Client
	ctx      context.Context
	log      *logrus.Entry
	elements map[*dom.Node]*attachment
	order    []*dom.Node

	onSourceLoaded *events.Listener
	observer       *dom.MutationObserver
}

type Option func(*Controller)

func WithLogger(log *logrus.Entry) Option {
	return func(c *Controller) {
		c.log = log
	}
}

// WithClient sets the client used by sources that have a URL and no loader.
func WithClient(cl *client.Client) Option {
	return func(c *Controller) {
		c.client = cl
	}
}

// WithContext sets the context loaders run with.
func WithContext(ctx context.Context) Option {
	return func(c *Controller) {
		c.ctx = ctx
	}
}

func NewController(reg *events.Registry, opts ...Option) *Controller {
	c := &Controller{
		events:   reg,
		ctx:      context.Background(),
		log:      logrus.NewEntry(logrus.StandardLogger()),
		elements: make(map[*dom.Node]*attachment),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.onSourceLoaded = events.NewListener(c.sourceLoaded)
	return c
}

// Sources returns the sources attached to element.
func (c *Controller) Sources(element *dom.Node) []*Source {
	if a, ok := c.elements[element]; ok {
		return a.all()
	}
	return nil
}

// Attach attaches src to element. The source loads when element fires the
// source's load event; a source that already has data announces it instead.
func (c *Controller) Attach(element *dom.Node, src *Source) {
	key := src.Key()
	a, ok := c.elements[element]
	if !ok {
		a = &attachment{sources: make(map[string][]*Source)}
		c.elements[element] = a
		c.order = append(c.order, element)
	}
	if _, ok := a.sources[key]; !ok {
		a.keys = append(a.keys, key)
	}
	for _, attached := range a.sources[key] {
		if attached == src {
			return
		}
	}
	a.sources[key] = append(a.sources[key], src)
	c.log.WithField("method", "attach").WithField("source", src.ID).Debugf("[EVENT]: source attached to %s, loading on %q", element.NodeName, key)

	c.events.AddEventListener(element, SourceLoadedEvent, c.onSourceLoaded)
	c.events.AddEventListener(element, key, events.NewListener(func(e *events.Event) {
		if e.DefaultPrevented() {
			return
		}
		if src.IsLoaded() {
			c.events.DispatchEvent(element, SourceLoadedEvent, src)
			return
		}
		if err := c.Load(element, src); err != nil {
			c.log.WithField("method", "attach").WithField("source", src.ID).WithError(err).Warn("[EVENT]: source failed to load")
		}
	}), events.Options{Once: true})
}

// Detach forgets every source of element and its sourceloaded listener.
func (c *Controller) Detach(element *dom.Node) {
	if _, ok := c.elements[element]; !ok {
		return
	}
	delete(c.elements, element)
	for i, el := range c.order {
		if el == element {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	c.events.RemoveEventListener(element, SourceLoadedEvent, c.onSourceLoaded)
}

// Load runs the loader of src for element and stores its data. A source
// already loading is left alone. Loader failures fire ErrorEvent on the
// source and are returned.
func (c *Controller) Load(element *dom.Node, src *Source) error {
	if src.loading {
		return nil
	}
	loader := src.Loader
	if loader == nil && src.URL != "" && c.client != nil {
		loader = &ClientLoader{Client: c.client}
	}
	if loader == nil {
		return errors.Errorf("source %s has no loader", src.ID)
	}

	src.loading = true
	data, err := loader.Load(c.ctx, src, element)
	if err != nil {
		src.loading = false
		err = errors.Wrapf(err, "loading source %s", src.ID)
		c.events.DispatchEvent(src, ErrorEvent, err)
		return err
	}
	c.SetData(src, data)
	return nil
}

// SetData merges value into the data of src, marks it loaded and announces
// it to every element it is attached to, then to listeners of the source.
func (c *Controller) SetData(src *Source, value map[string]interface{}) {
	src.loaded = true
	src.loading = false
	if src.data == nil {
		src.data = make(map[string]interface{}, len(value))
	}
	for k, v := range value {
		src.data[k] = v
	}

	for _, element := range c.elementsOf(src) {
		c.events.DispatchEvent(element, SourceLoadedEvent, src)
	}
	c.events.DispatchEvent(src, LoadedEvent, nil)
}

func (c *Controller) elementsOf(src *Source) []*dom.Node {
	var elements []*dom.Node
	for _, element := range c.order {
		for _, attached := range c.elements[element].all() {
			if attached == src {
				elements = append(elements, element)
				break
			}
		}
	}
	return elements
}

func (c *Controller) sourceLoaded(e *events.Event) {
	element, ok := e.Target.(*dom.Node)
	if !ok {
		return
	}
	src, ok := e.Detail.(*Source)
	if !ok {
		return
	}
	a, ok := c.elements[element]
	if !ok {
		return
	}
	for _, sibling := range a.sources[src.Key()] {
		if !sibling.IsLoaded() {
			return
		}
	}

	merged := make(map[string]interface{})
	for _, attached := range a.all() {
		for k, v := range attached.Data() {
			merged[k] = v
		}
	}
	c.log.WithField("method", "sourceLoaded").WithField("source", src.ID).Debugf("[EVENT]: data ready for %s", element.NodeName)
	c.events.DispatchEvent(element, DataEvent, merged, events.EventInit{Bubbles: true})
}

// Watch fires LoadDataEvent on attached elements as they are inserted into
// the document of w, so sources that are not deferred load on connection.
func (c *Controller) Watch(w *dom.Window) error {
	if c.observer != nil {
		c.observer.Disconnect()
	}
	c.observer = w.NewMutationObserver(func(records []*dom.MutationRecord, _ *dom.MutationObserver) {
		for _, record := range records {
			for _, added := range record.AddedNodes {
				c.connected(added)
			}
		}
	})
	return c.observer.Observe(w.Document, dom.MutationObserverInit{ChildList: true, Subtree: true})
}

// Unwatch stops Watch.
func (c *Controller) Unwatch() {
	if c.observer != nil {
		c.observer.Disconnect()
		c.observer = nil
	}
}

func (c *Controller) connected(root *dom.Node) {
	var ready []*dom.Node
	walker := dom.NewTreeWalker(root, dom.ElementsOnly)
	for node := root; node != nil; node = walker.NextNode() {
		if node.NodeType != dom.ElementNode || !node.IsConnected() {
			continue
		}
		if a, ok := c.elements[node]; ok {
			if _, ok := a.sources[LoadDataEvent]; ok {
				ready = append(ready, node)
			}
		}
	}
	for _, element := range ready {
		c.events.DispatchEvent(element, LoadDataEvent, nil, events.EventInit{Cancelable: true})
	}
}
