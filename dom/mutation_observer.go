package dom

import (
	"github.com/google/uuid"
)

type MutationType string

const (
	MutationChildList     MutationType = "childList"
	MutationAttributes    MutationType = "attributes"
	MutationCharacterData MutationType = "characterData"
)

// MutationRecord describes one change to the tree.
// https://dom.spec.whatwg.org/#mutationrecord
type MutationRecord struct {
	Type            MutationType
	Target          *Node
	AddedNodes      NodeList
	RemovedNodes    NodeList
	PreviousSibling *Node
	NextSibling     *Node
	AttributeName   string
	// OldValue is set only when the observer asked for old values. It is nil
	// when the attribute was absent before the change.
	OldValue *string
}

// MutationObserverInit selects which changes an observer receives.
// https://dom.spec.whatwg.org/#dictdef-mutationobserverinit
type MutationObserverInit struct {
	ChildList             bool
	Attributes            bool
	CharacterData         bool
	Subtree               bool
	AttributeOldValue     bool
	CharacterDataOldValue bool
	AttributeFilter       []string
}

// normalize implies attributes or characterData when only their dependent
// options were given. Character data only changes on leaves, so watching it
// implies subtree.
func (o MutationObserverInit) normalize() MutationObserverInit {
	if o.AttributeOldValue || len(o.AttributeFilter) > 0 {
		o.Attributes = true
	}
	if o.CharacterDataOldValue {
		o.CharacterData = true
	}
	if o.CharacterData {
		o.Subtree = true
	}
	return o
}

func (o MutationObserverInit) wants(typ MutationType) bool {
	switch typ {
	case MutationChildList:
		return o.ChildList
	case MutationAttributes:
		return o.Attributes
	case MutationCharacterData:
		return o.CharacterData
	}
	return false
}

func (o MutationObserverInit) filters(attributeName string) bool {
	if len(o.AttributeFilter) == 0 {
		return false
	}
	for _, name := range o.AttributeFilter {
		if name == attributeName {
			return false
		}
	}
	return true
}

// MutationCallback receives the records of one change. Records are delivered
// synchronously, before the mutating call returns.
type MutationCallback func(records []*MutationRecord, observer *MutationObserver)

type MutationObserver struct {
	ID uuid.UUID

	callback MutationCallback
	tables   map[*observerTable]struct{}
}

// NewMutationObserver returns an observer bound to no target.
func (w *Window) NewMutationObserver(callback MutationCallback) *MutationObserver {
	return &MutationObserver{
		ID:       uuid.New(),
		callback: callback,
		tables:   make(map[*observerTable]struct{}),
	}
}

// Observe subscribes to changes of target. Observing the same target again
// replaces the options of the existing subscription. Options selecting no
// mutation type are accepted and never match.
func (o *MutationObserver) Observe(target *Node, options MutationObserverInit) error {
	if target == nil {
		return hierarchyError("observe", "the target is nil")
	}
	options = options.normalize()
	if target.window == nil {
		return hierarchyError("observe", "the target does not belong to a window")
	}
	table := target.window.observers
	table.subscribe(target, o, options)
	o.tables[table] = struct{}{}
	target.window.logger().WithField("method", "observe").Debugf("[MUTATION]: observer %s watching %s", o.ID, target.NodeName)
	return nil
}

// Disconnect drops every subscription of the observer.
func (o *MutationObserver) Disconnect() {
	for table := range o.tables {
		table.unsubscribe(o)
	}
	o.tables = make(map[*observerTable]struct{})
}

type subscription struct {
	observer *MutationObserver
	options  MutationObserverInit
}

type mutationInit struct {
	addedNodes, removedNodes     NodeList
	previousSibling, nextSibling *Node
	attributeName                string
	oldValue                     *string
}

// observerTable holds the subscriptions of one window, keyed by target.
type observerTable struct {
	subscriptions map[*Node][]*subscription
}

func newObserverTable() *observerTable {
	return &observerTable{subscriptions: make(map[*Node][]*subscription)}
}

func (t *observerTable) subscribe(target *Node, observer *MutationObserver, options MutationObserverInit) {
	for _, s := range t.subscriptions[target] {
		if s.observer == observer {
			s.options = options
			return
		}
	}
	t.subscriptions[target] = append(t.subscriptions[target], &subscription{observer: observer, options: options})
}

func (t *observerTable) unsubscribe(observer *MutationObserver) {
	for target, subs := range t.subscriptions {
		kept := subs[:0]
		for _, s := range subs {
			if s.observer != observer {
				kept = append(kept, s)
			}
		}
		if len(kept) == 0 {
			delete(t.subscriptions, target)
			continue
		}
		t.subscriptions[target] = kept
	}
}

// trigger delivers a record to every matching subscription on target and its
// ancestors, one callback per subscription. The ancestor chain and the
// subscription lists are read before any callback runs, so callbacks that
// mutate the tree or observe new targets do not affect the current delivery.
func (t *observerTable) trigger(target *Node, typ MutationType, init mutationInit) {
	if t == nil || len(t.subscriptions) == 0 {
		return
	}

	type delivery struct {
		observer *MutationObserver
		record   *MutationRecord
	}
	var deliveries []delivery
	for node := target; node != nil; node = node.parentNode {
		for _, s := range t.subscriptions[node] {
			if !s.options.wants(typ) || (node != target && !s.options.Subtree) {
				continue
			}
			if typ == MutationAttributes && s.options.filters(init.attributeName) {
				continue
			}
			deliveries = append(deliveries, delivery{observer: s.observer, record: newMutationRecord(target, typ, init, s.options)})
		}
	}

	for _, d := range deliveries {
		target.window.logger().WithField("method", "trigger").Debugf("[MUTATION]: %s record on %s for observer %s", typ, target.NodeName, d.observer.ID)
		d.observer.callback([]*MutationRecord{d.record}, d.observer)
	}
}

func newMutationRecord(target *Node, typ MutationType, init mutationInit, options MutationObserverInit) *MutationRecord {
	record := &MutationRecord{
		Type:            typ,
		Target:          target,
		AddedNodes:      init.addedNodes,
		RemovedNodes:    init.removedNodes,
		PreviousSibling: init.previousSibling,
		NextSibling:     init.nextSibling,
		AttributeName:   init.attributeName,
	}
	if (typ == MutationAttributes && options.AttributeOldValue) ||
		(typ == MutationCharacterData && options.CharacterDataOldValue) {
		record.OldValue = init.oldValue
	}
	return record
}
