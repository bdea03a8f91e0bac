package datasource

import (
	"context"

	"github.com/google/uuid"
	"github.com/heathj/minidom/client"
	"github.com/heathj/minidom/dom"
	"github.com/pkg/errors"
)

const (
	// LoadDataEvent is the default event an element fires when its sources
	// should load.
	LoadDataEvent = "loaddata"
	// SourceLoadedEvent is fired on every element of a source once the source
	// has data. Its detail is the *Source.
	SourceLoadedEvent = "sourceloaded"
	// DataEvent is fired on an element when all the sources sharing a load
	// event are loaded. Its detail is the merged data of all its sources.
	DataEvent = "data"
	// LoadedEvent is fired on the source itself after SetData.
	LoadedEvent = "loaded"
	// ErrorEvent is fired on the source when its loader fails. Its detail
	// is the error.
	ErrorEvent = "sourceerror"
)

// Loader fetches the data of a source for an element.
type Loader interface {
	Load(ctx context.Context, src *Source, element *dom.Node) (map[string]interface{}, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context, src *Source, element *dom.Node) (map[string]interface{}, error)

func (f LoaderFunc) Load(ctx context.Context, src *Source, element *dom.Node) (map[string]interface{}, error) {
	return f(ctx, src, element)
}

// ClientLoader GETs the source URL and expects a JSON object back.
type ClientLoader struct {
	Client *client.Client
}

func (c *ClientLoader) Load(ctx context.Context, src *Source, _ *dom.Node) (map[string]interface{}, error) {
	if src.URL == "" {
		return nil, errors.Errorf("source %s has no url", src.ID)
	}
	res, err := c.Client.Get(ctx, src.URL, nil, nil)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return map[string]interface{}{}, nil
	}
	data, ok := res.(map[string]interface{})
	if !ok {
		return nil, errors.Errorf("source %s: expected a JSON object from %s, got %T", src.ID, src.URL, res)
	}
	return data, nil
}

// Source is a unit of data attached to one or more elements.
type Source struct {
	ID uuid.UUID
	// DeferOn is the element event that starts loading. Empty means
	// LoadDataEvent.
	DeferOn string
	URL     string
	Loader  Loader

	data    map[string]interface{}
	loaded  bool
	loading bool
}

func NewSource(loader Loader) *Source {
	return &Source{ID: uuid.New(), Loader: loader}
}

// Key returns the element event that starts loading the source.
func (s *Source) Key() string {
	if s.DeferOn == "" {
		return LoadDataEvent
	}
	return s.DeferOn
}

// Data returns the data accumulated by SetData.
func (s *Source) Data() map[string]interface{} { return s.data }

func (s *Source) IsLoaded() bool  { return s.loaded }
func (s *Source) IsLoading() bool { return s.loading }

// Reset forgets the data and the loading state.
func (s *Source) Reset() {
	s.data = nil
	s.loaded = false
	s.loading = false
}
