package events

// Event is the record handed to listeners.
type Event struct {
	Type          string
	Target        interface{}
	CurrentTarget interface{}
	Detail        interface{}
	Bubbles       bool
	Cancelable    bool

	defaultPrevented bool
	stopped          bool
	passive          bool
}

// EventInit carries the optional dispatch flags.
type EventInit struct {
	Bubbles    bool
	Cancelable bool
}

// NewEvent builds an event of type typ carrying detail.
func NewEvent(typ string, detail interface{}, init ...EventInit) *Event {
	e := &Event{Type: typ, Detail: detail}
	if len(init) > 0 {
		e.Bubbles = init[0].Bubbles
		e.Cancelable = init[0].Cancelable
	}
	return e
}

// PreventDefault cancels the event. It does nothing inside a passive
// listener or for an event that is not cancelable.
func (e *Event) PreventDefault() {
	if e.passive || !e.Cancelable {
		return
	}
	e.defaultPrevented = true
}

func (e *Event) DefaultPrevented() bool { return e.defaultPrevented }

// StopImmediatePropagation skips the listeners left in the current dispatch.
func (e *Event) StopImmediatePropagation() { e.stopped = true }

// Options are the listener options.
type Options struct {
	Capture bool
	Once    bool
	Passive bool
}

// Listener wraps a callback so it has an identity: registering the same
// Listener twice on a target and type is a no-op.
type Listener struct {
	fn func(*Event)
}

func NewListener(fn func(*Event)) *Listener {
	return &Listener{fn: fn}
}

// HandleEvent runs the callback.
func (l *Listener) HandleEvent(e *Event) {
	if l != nil && l.fn != nil {
		l.fn(e)
	}
}

// NativeTarget is implemented by targets that run their own propagation.
// The registry keeps its entries for them but forwards registrations and
// dispatches to the target.
type NativeTarget interface {
	AddNativeListener(typ string, l *Listener, opts Options)
	RemoveNativeListener(typ string, l *Listener, opts Options)
	DispatchNativeEvent(e *Event) bool
}
