package events

import (
	"sort"

	"github.com/heathj/minidom/dom"
	"github.com/sirupsen/logrus"
)

// Entry is one registration of a listener on a target for an event type.
type Entry struct {
	Target   interface{}
	Type     string
	Listener *Listener
	Options  Options
	// Source is the element the listener was registered for with
	// Registry.Register, if any.
	Source *dom.Node

	fn *Listener
}

// Bus is the shared target returned by Registry.Global.
type Bus struct {
	registry *Registry
}

type registration struct {
	element  *dom.Node
	typ      string
	listener *Listener
}

// Registry maps targets to their listeners. Targets are compared by
// identity, so they must be comparable values, usually pointers.
type Registry struct {
	targets    map[interface{}]map[string][]*Entry
	registered []*registration
	global     *Bus
	log        *logrus.Entry
}

type Option func(*Registry)

func WithLogger(log *logrus.Entry) Option {
	return func(r *Registry) {
		r.log = log
	}
}

func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		targets: make(map[interface{}]map[string][]*Entry),
		log:     logrus.NewEntry(logrus.StandardLogger()),
	}
	r.global = &Bus{registry: r}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Global returns the shared bus target. Listeners registered on it through
// an element fire in document order of their elements.
func (r *Registry) Global() *Bus { return r.global }

// Register associates l with element for type typ. If element already has a
// listener for typ, that listener is returned instead.
func (r *Registry) Register(element *dom.Node, typ string, l *Listener) *Listener {
	if found := r.GetListener(element, typ); found != nil {
		return found
	}
	r.registered = append(r.registered, &registration{element: element, typ: typ, listener: l})
	return l
}

// GetListener returns the listener registered for element and typ, or nil.
func (r *Registry) GetListener(element *dom.Node, typ string) *Listener {
	for _, reg := range r.registered {
		if reg.element == element && reg.typ == typ {
			return reg.listener
		}
	}
	return nil
}

// Unregister forgets the element association of l.
func (r *Registry) Unregister(l *Listener) {
	for i, reg := range r.registered {
		if reg.listener == l {
			r.registered = append(r.registered[:i], r.registered[i+1:]...)
			return
		}
	}
}

func (r *Registry) sourceOf(l *Listener) *dom.Node {
	for _, reg := range r.registered {
		if reg.listener == l {
			return reg.element
		}
	}
	return nil
}

// shared reports whether target collects listeners of many elements.
func (r *Registry) shared(target interface{}) bool {
	if target == r.global {
		return true
	}
	node, ok := target.(*dom.Node)
	return ok && node.NodeType == dom.DocumentNode
}

// AddEventListener registers l on target for typ. Adding the same listener
// again returns the existing entry. A NativeTarget also receives the
// registration.
func (r *Registry) AddEventListener(target interface{}, typ string, l *Listener, opts ...Options) *Entry {
	types, ok := r.targets[target]
	if !ok {
		types = make(map[string][]*Entry)
		r.targets[target] = types
	}
	for _, entry := range types[typ] {
		if entry.Listener == l {
			return entry
		}
	}

	entry := &Entry{Target: target, Type: typ, Listener: l, Source: r.sourceOf(l)}
	if len(opts) > 0 {
		entry.Options = opts[0]
	}
	entry.fn = NewListener(func(e *Event) {
		if entry.Options.Once {
			r.RemoveEventListener(target, typ, l)
		}
		l.HandleEvent(e)
	})
	types[typ] = append(types[typ], entry)
	r.log.WithField("method", "addEventListener").Debugf("[EVENT]: listener added for %q", typ)

	if native, ok := target.(NativeTarget); ok {
		if r.shared(target) && entry.Source != nil {
			// re-add every sourced listener so the target runs them in order
			sorted := r.sorted(target, types[typ])
			for _, item := range sorted {
				if item.Source != nil && item != entry {
					native.RemoveNativeListener(typ, item.fn, item.Options)
				}
			}
			for _, item := range sorted {
				if item.Source != nil {
					native.AddNativeListener(typ, item.fn, item.Options)
				}
			}
		} else {
			native.AddNativeListener(typ, entry.fn, entry.Options)
		}
	}
	return entry
}

// RemoveEventListener removes the listeners of target. An empty typ removes
// every type, a nil l every listener of the type. It returns the removed
// entries.
func (r *Registry) RemoveEventListener(target interface{}, typ string, l *Listener) []*Entry {
	types, ok := r.targets[target]
	if !ok {
		return nil
	}
	native, isNative := target.(NativeTarget)

	var removed []*Entry
	for name, entries := range types {
		if typ != "" && name != typ {
			continue
		}
		kept := make([]*Entry, 0, len(entries))
		for _, entry := range entries {
			if l != nil && entry.Listener != l {
				kept = append(kept, entry)
				continue
			}
			removed = append(removed, entry)
			if isNative {
				native.RemoveNativeListener(name, entry.fn, entry.Options)
			}
			r.Unregister(entry.Listener)
		}
		if len(kept) == 0 {
			delete(types, name)
			continue
		}
		types[name] = kept
	}
	if len(types) == 0 {
		delete(r.targets, target)
	}
	if len(removed) > 0 {
		r.log.WithField("method", "removeEventListener").Debugf("[EVENT]: %d listener(s) removed", len(removed))
	}
	return removed
}

// Listeners returns the entries of target by type, in dispatch order.
func (r *Registry) Listeners(target interface{}) map[string][]*Entry {
	types, ok := r.targets[target]
	if !ok {
		return nil
	}
	listeners := make(map[string][]*Entry, len(types))
	for typ, entries := range types {
		listeners[typ] = r.sorted(target, entries)
	}
	return listeners
}

// sorted returns a copy of entries in dispatch order: capture listeners
// first, then, on shared targets, listeners with no source before those with
// one, the latter in document order of their source.
func (r *Registry) sorted(target interface{}, entries []*Entry) []*Entry {
	sorted := append([]*Entry(nil), entries...)
	shared := r.shared(target)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Options.Capture != b.Options.Capture {
			return a.Options.Capture
		}
		if !shared {
			return false
		}
		switch {
		case a.Source == nil:
			return b.Source != nil
		case b.Source == nil:
			return false
		}
		return a.Source.Precedes(b.Source)
	})
	return sorted
}

// DispatchEvent fires an event of type typ at target and reports whether it
// was not canceled. A NativeTarget propagates the event itself; any other
// target only runs its own listeners, as they were when dispatch began:
// listeners added or removed while dispatching take effect on the next one.
func (r *Registry) DispatchEvent(target interface{}, typ string, detail interface{}, init ...EventInit) bool {
	e := NewEvent(typ, detail, init...)
	e.Target = target
	if native, ok := target.(NativeTarget); ok {
		return native.DispatchNativeEvent(e)
	}

	log := r.log.WithField("method", "dispatchEvent")
	types, ok := r.targets[target]
	if !ok {
		log.Debugf("[EVENT]: no listeners for %q", typ)
		return true
	}
	snapshot := r.sorted(target, types[typ])
	log.Debugf("[EVENT]: dispatching %q to %d listener(s)", typ, len(snapshot))

	e.CurrentTarget = target
	for _, entry := range snapshot {
		if e.stopped {
			break
		}
		e.passive = entry.Options.Passive
		entry.fn.HandleEvent(e)
	}
	e.passive = false
	return !e.defaultPrevented
}
