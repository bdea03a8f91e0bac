package dom

import (
	"github.com/pkg/errors"
)

var (
	// ErrHierarchy matches every *HierarchyError through errors.Is.
	ErrHierarchy = errors.New("hierarchy request error")
	// ErrConfiguration matches every *ConfigurationError through errors.Is.
	ErrConfiguration = errors.New("configuration error")
)

// HierarchyError is returned when a structural operation would break the
// tree: a reference node that is not a child of the context node, a node
// inserted into its own subtree, or a child added to a node kind that cannot
// hold children.
type HierarchyError struct {
	Method string
	Reason string
}

func (e *HierarchyError) Error() string {
	return "hierarchy request error: " + e.Method + ": " + e.Reason
}

// Is reports whether target is ErrHierarchy.
func (e *HierarchyError) Is(target error) bool { return target == ErrHierarchy }

// ConfigurationError is returned by CustomElementRegistry.Define when a
// definition cannot be honored.
type ConfigurationError struct {
	Name   string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Name + ": " + e.Reason
}

// Is reports whether target is ErrConfiguration.
func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

func hierarchyError(method, reason string) error {
	return errors.WithStack(&HierarchyError{Method: method, Reason: reason})
}

func configurationError(name, reason string) error {
	return errors.WithStack(&ConfigurationError{Name: name, Reason: reason})
}
