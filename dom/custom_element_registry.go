package dom

// ElementConstructor is the factory side of a custom element definition.
type ElementConstructor struct {
	// Interface is the builtin interface the constructed elements extend.
	// The zero value means HTMLElement.
	Interface Interface
	// New builds the component instance bound to a freshly created element.
	// The instance receives lifecycle callbacks through the ConnectedCallback,
	// DisconnectedCallback, AdoptedCallback and AttributeChangedCallback
	// interfaces it implements.
	New func(element *Node) interface{}
	// ObservedAttributes is read once, when the constructor is defined.
	ObservedAttributes []string
}

func (c *ElementConstructor) baseInterface() Interface {
	if c.Interface == "" {
		return HTMLElementInterface
	}
	return c.Interface
}

// ElementDefinitionOptions is https://html.spec.whatwg.org/#elementdefinitionoptions
type ElementDefinitionOptions struct {
	Extends string
}

// CustomElementDefinition is one entry of the registry.
type CustomElementDefinition struct {
	Name        string
	Constructor *ElementConstructor
	Extends     string

	observedAttributes map[string]struct{}
}

// Observes reports whether name was in the observed attributes at
// definition time.
func (d *CustomElementDefinition) Observes(name string) bool {
	_, ok := d.observedAttributes[name]
	return ok
}

// CustomElementRegistry maps names to element constructors.
// https://html.spec.whatwg.org/#customelementregistry
type CustomElementRegistry struct {
	window      *Window
	definitions map[string]*CustomElementDefinition
	pending     map[string]chan struct{}
}

func newCustomElementRegistry(w *Window) *CustomElementRegistry {
	return &CustomElementRegistry{
		window:      w,
		definitions: make(map[string]*CustomElementDefinition),
		pending:     make(map[string]chan struct{}),
	}
}

// Define registers constructor under name. With options.Extends, the
// constructor must extend the interface of the extended tag. Defining a name
// again replaces its definition and releases WhenDefined waiters.
func (r *CustomElementRegistry) Define(name string, constructor *ElementConstructor, options ...ElementDefinitionOptions) error {
	var opts ElementDefinitionOptions
	if len(options) > 0 {
		opts = options[0]
	}
	if name == "" {
		return configurationError(name, "a custom element needs a name")
	}
	if constructor == nil {
		return configurationError(name, "a custom element needs a constructor")
	}
	if opts.Extends != "" {
		base := BuiltinInterface(opts.Extends)
		if constructor.baseInterface() != base {
			return configurationError(name, "constructor extends "+string(constructor.baseInterface())+", not "+string(base)+" required by "+opts.Extends)
		}
	}

	definition := &CustomElementDefinition{
		Name:               name,
		Constructor:        constructor,
		Extends:            opts.Extends,
		observedAttributes: make(map[string]struct{}, len(constructor.ObservedAttributes)),
	}
	for _, attr := range constructor.ObservedAttributes {
		definition.observedAttributes[attr] = struct{}{}
	}

	log := r.window.logger().WithField("method", "define")
	if _, ok := r.definitions[name]; ok {
		log.Warnf("[REGISTRY]: %s is already defined, replacing its definition", name)
	}
	r.definitions[name] = definition
	log.Debugf("[REGISTRY]: defined %s", name)

	if ch, ok := r.pending[name]; ok {
		close(ch)
		delete(r.pending, name)
	}
	return nil
}

// Get returns the constructor defined for name, or nil.
func (r *CustomElementRegistry) Get(name string) *ElementConstructor {
	if definition, ok := r.definitions[name]; ok {
		return definition.Constructor
	}
	return nil
}

// Definition returns the definition registered for name, or nil.
func (r *CustomElementRegistry) Definition(name string) *CustomElementDefinition {
	return r.definitions[name]
}

var closedChan = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

// WhenDefined returns a channel closed once name is defined.
func (r *CustomElementRegistry) WhenDefined(name string) <-chan struct{} {
	if _, ok := r.definitions[name]; ok {
		return closedChan
	}
	ch, ok := r.pending[name]
	if !ok {
		ch = make(chan struct{})
		r.pending[name] = ch
	}
	return ch
}

// resolveElement picks the interface and definition for a new element.
// options.Is is looked up first, then the tag name. A customized built-in
// whose constructor does not extend the tag's interface degrades to the plain
// interface.
func (w *Window) resolveElement(localName, is string) (Interface, *CustomElementDefinition) {
	builtin := BuiltinInterface(localName)
	if w == nil || w.CustomElements == nil {
		return builtin, nil
	}
	if is != "" {
		definition := w.CustomElements.definitions[is]
		if definition != nil && definition.Constructor.baseInterface() == builtin {
			return builtin, definition
		}
		return builtin, nil
	}
	definition := w.CustomElements.definitions[localName]
	if definition != nil && definition.Extends == "" {
		return definition.Constructor.baseInterface(), definition
	}
	return builtin, nil
}
