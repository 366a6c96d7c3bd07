package slugs

import (
	"context"
	"errors"
	"sync"

	"github.com/goliatone/go-sluggable/internal/logging"
	"github.com/goliatone/go-sluggable/pkg/interfaces"
)

// EventSaving is the lifecycle event name passed to slugging hooks.
const EventSaving = "saving"

// ErrReplicaInvalid is returned when Replicate yields no record.
var ErrReplicaInvalid = errors.New("slugs: replicate returned no record")

// Decision is the result of a slugging hook.
type Decision int

const (
	// Proceed lets slugging continue.
	Proceed Decision = iota
	// Abort skips slugging for this save.
	Abort
)

// SluggingHook runs before a record is slugged.
type SluggingHook func(ctx context.Context, record interfaces.SlugRecord, event string) Decision

// SluggedHook runs after a record was slugged.
type SluggedHook func(ctx context.Context, record interfaces.SlugRecord, changed bool)

// Outcome reports what happened during a save event.
type Outcome struct {
	Aborted bool
	Changed bool
}

// Observer hooks the slug service into record save events.
type Observer struct {
	service *Service
	logger  interfaces.Logger

	mu       sync.RWMutex
	slugging map[string][]SluggingHook
	slugged  map[string][]SluggedHook
}

// ObserverOption configures an Observer.
type ObserverOption func(*Observer)

// WithObserverLogger injects the observer logger.
func WithObserverLogger(logger interfaces.Logger) ObserverOption {
	return func(o *Observer) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewObserver constructs an observer around service.
func NewObserver(service *Service, opts ...ObserverOption) *Observer {
	if service == nil {
		panic("slugs: observer requires a service")
	}
	o := &Observer{
		service:  service,
		logger:   logging.NoOp(),
		slugging: make(map[string][]SluggingHook),
		slugged:  make(map[string][]SluggedHook),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// OnSlugging registers a pre-slug hook for typeName. An empty typeName
// applies to every record type.
func (o *Observer) OnSlugging(typeName string, hook SluggingHook) {
	if hook == nil {
		return
	}
	o.mu.Lock()
	o.slugging[typeName] = append(o.slugging[typeName], hook)
	o.mu.Unlock()
}

// OnSlugged registers a post-slug hook for typeName. An empty typeName
// applies to every record type.
func (o *Observer) OnSlugged(typeName string, hook SluggedHook) {
	if hook == nil {
		return
	}
	o.mu.Lock()
	o.slugged[typeName] = append(o.slugged[typeName], hook)
	o.mu.Unlock()
}

// Saving runs before a record is persisted. The first hook returning Abort
// stops slugging for this save.
func (o *Observer) Saving(ctx context.Context, record interfaces.SlugRecord) (Outcome, error) {
	if record == nil {
		return Outcome{}, ErrRecordRequired
	}
	typeName := record.SlugTypeName()

	for _, hook := range o.sluggingHooks(typeName) {
		if hook(ctx, record, EventSaving) == Abort {
			o.logger.Debug("observer.slugging.aborted", "type", typeName, "key", record.SlugKey())
			return Outcome{Aborted: true}, nil
		}
	}

	changed, err := o.service.Slug(ctx, record, false)
	if err != nil {
		return Outcome{}, err
	}

	for _, hook := range o.sluggedHooks(typeName) {
		hook(ctx, record, changed)
	}
	o.logger.Debug("observer.slugged", "type", typeName, "changed", changed)
	return Outcome{Changed: changed}, nil
}

// Replicate clones source into a new, unsaved record and regenerates all of
// its slugs so the clone never reuses the source's values.
func (o *Observer) Replicate(ctx context.Context, source interfaces.Replicable) (interfaces.SlugRecord, error) {
	if source == nil {
		return nil, ErrRecordRequired
	}
	replica := source.Replicate()
	if replica == nil {
		return nil, ErrReplicaInvalid
	}
	if _, err := o.service.Slug(ctx, replica, true); err != nil {
		return nil, err
	}
	return replica, nil
}

func (o *Observer) sluggingHooks(typeName string) []SluggingHook {
	o.mu.RLock()
	defer o.mu.RUnlock()
	hooks := append([]SluggingHook(nil), o.slugging[typeName]...)
	if typeName != "" {
		hooks = append(hooks, o.slugging[""]...)
	}
	return hooks
}

func (o *Observer) sluggedHooks(typeName string) []SluggedHook {
	o.mu.RLock()
	defer o.mu.RUnlock()
	hooks := append([]SluggedHook(nil), o.slugged[typeName]...)
	if typeName != "" {
		hooks = append(hooks, o.slugged[""]...)
	}
	return hooks
}
