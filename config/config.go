package config

import (
	"os"
	"strings"

	"github.com/heathj/minidom/dom"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config is the minidom.yaml file of the command line tool.
type Config struct {
	LogLevel       string          `yaml:"logLevel,omitempty"`
	LogFormat      string          `yaml:"logFormat,omitempty"`
	CustomElements []CustomElement `yaml:"customElements,omitempty"`
}

// CustomElement is a custom element defined before markup is parsed.
type CustomElement struct {
	Name               string   `yaml:"name"`
	Extends            string   `yaml:"extends,omitempty"`
	ObservedAttributes []string `yaml:"observedAttributes,omitempty"`
}

func Default() *Config {
	return &Config{LogLevel: "warn", LogFormat: "text"}
}

// Load reads the file at path. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	return cfg, nil
}

// Parse decodes data over the defaults and validates it.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.WithStack(err)
	}
	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		return nil, errors.Wrap(err, "logLevel")
	}
	switch strings.ToLower(cfg.LogFormat) {
	case "", "text", "json":
	default:
		return nil, errors.Errorf("logFormat: unknown format %q", cfg.LogFormat)
	}
	for i, ce := range cfg.CustomElements {
		if strings.TrimSpace(ce.Name) == "" {
			return nil, errors.Errorf("customElements[%d]: name is required", i)
		}
	}
	return cfg, nil
}

// Logger returns a logger configured with the level and format.
func (c *Config) Logger() *logrus.Entry {
	log := logrus.New()
	if level, err := logrus.ParseLevel(c.LogLevel); err == nil {
		log.SetLevel(level)
	}
	if strings.EqualFold(c.LogFormat, "json") {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}
	return logrus.NewEntry(log)
}

// Define defines every configured custom element on w. The elements get a
// component that logs its lifecycle callbacks.
func (c *Config) Define(w *dom.Window) error {
	for _, ce := range c.CustomElements {
		ctor := &dom.ElementConstructor{
			Interface:          dom.HTMLElementInterface,
			ObservedAttributes: ce.ObservedAttributes,
			New: func(element *dom.Node) interface{} {
				return &loggingComponent{element: element, log: w.Logger()}
			},
		}
		var opts []dom.ElementDefinitionOptions
		if ce.Extends != "" {
			ctor.Interface = dom.BuiltinInterface(ce.Extends)
			opts = append(opts, dom.ElementDefinitionOptions{Extends: ce.Extends})
		}
		if err := w.CustomElements.Define(ce.Name, ctor, opts...); err != nil {
			return err
		}
	}
	return nil
}

type loggingComponent struct {
	element *dom.Node
	log     *logrus.Entry
}

func (l *loggingComponent) ConnectedCallback() {
	l.log.WithField("method", "connectedCallback").Infof("[LIFECYCLE]: <%s> connected", l.element.LocalName)
}

func (l *loggingComponent) DisconnectedCallback() {
	l.log.WithField("method", "disconnectedCallback").Infof("[LIFECYCLE]: <%s> disconnected", l.element.LocalName)
}

func (l *loggingComponent) AdoptedCallback(_, _ *dom.Node) {
	l.log.WithField("method", "adoptedCallback").Infof("[LIFECYCLE]: <%s> adopted", l.element.LocalName)
}

func (l *loggingComponent) AttributeChangedCallback(name string, oldValue, newValue *string) {
	l.log.WithField("method", "attributeChangedCallback").Infof("[LIFECYCLE]: <%s> %s: %s -> %s", l.element.LocalName, name, show(oldValue), show(newValue))
}

func show(v *string) string {
	if v == nil {
		return "(absent)"
	}
	return "\"" + *v + "\""
}
