package sluggable

import (
	"github.com/goliatone/go-sluggable/internal/articles"
	slugscmd "github.com/goliatone/go-sluggable/internal/commands/slugs"
	"github.com/goliatone/go-sluggable/internal/di"
	"github.com/goliatone/go-sluggable/internal/slugs"
	"github.com/goliatone/go-sluggable/pkg/interfaces"
)

// Record exports the contract a model implements to be slugged.
type Record = interfaces.SlugRecord

// Field exports a declared slug attribute with its option overrides.
type Field = interfaces.SlugField

// PeerFinder exports the storage lookup used for uniqueness checks.
type PeerFinder = interfaces.PeerFinder

// Peer exports a stored (key, slug) pair.
type Peer = interfaces.SlugPeer

// SimilarSlugsQuery exports the peer lookup request.
type SimilarSlugsQuery = interfaces.SimilarSlugsQuery

// Engine exports the slug engine contract.
type Engine = interfaces.SlugEngine

// Logger exports the logging contract.
type Logger = interfaces.Logger

// LoggerProvider exports the named logger factory.
type LoggerProvider = interfaces.LoggerProvider

// Service exports the slug service.
type Service = slugs.Service

// ServiceOption exports slug service options.
type ServiceOption = slugs.ServiceOption

// Observer exports the save lifecycle observer.
type Observer = slugs.Observer

// ObserverOption exports observer options.
type ObserverOption = slugs.ObserverOption

// Options exports the raw option mapping of a slug field.
type Options = slugs.Options

// FieldConfig exports a decoded slug field configuration.
type FieldConfig = slugs.FieldConfig

// PeerSet exports the ordered peer mapping handed to suffix functions.
type PeerSet = slugs.PeerSet

// MethodFunc exports the custom slugging method signature.
type MethodFunc = slugs.MethodFunc

// SuffixFunc exports the custom unique suffix signature.
type SuffixFunc = slugs.SuffixFunc

// ReservedFunc exports the dynamic reserved word signature.
type ReservedFunc = slugs.ReservedFunc

// ConfigError exports the misconfigured option error.
type ConfigError = slugs.ConfigError

// Decision exports the slugging hook result.
type Decision = slugs.Decision

// ArticleService exports the articles service contract.
type ArticleService = articles.Service

// CreateArticleInput exports the article creation payload.
type CreateArticleInput = articles.CreateArticleInput

// UpdateArticleInput exports the article update payload.
type UpdateArticleInput = articles.UpdateArticleInput

// PreviewSlugInput exports the slug preview request.
type PreviewSlugInput = articles.PreviewSlugInput

// ResyncResult exports the resync counters.
type ResyncResult = articles.ResyncResult

// Option mutates the module container before it is finalised.
type Option = di.Option

const (
	Proceed = slugs.Proceed
	Abort   = slugs.Abort
)

var (
	ErrPeerFinderRequired      = slugs.ErrPeerFinderRequired
	ErrRecordRequired          = slugs.ErrRecordRequired
	ErrMethodNotCallable       = slugs.ErrMethodNotCallable
	ErrReservedInvalid         = slugs.ErrReservedInvalid
	ErrUniqueSuffixNotCallable = slugs.ErrUniqueSuffixNotCallable
	ErrConfigNotMapping        = slugs.ErrConfigNotMapping
	ErrOptionInvalid           = slugs.ErrOptionInvalid
)

var (
	WithBunDB                = di.WithBunDB
	WithLoggerProvider       = di.WithLoggerProvider
	WithLogWriter            = di.WithLogWriter
	WithCache                = di.WithCache
	WithEngineFactory        = di.WithEngineFactory
	WithPeerFinder           = di.WithPeerFinder
	WithArticleRepository    = di.WithArticleRepository
	WithIDGenerator          = di.WithIDGenerator
	WithServiceResolver      = slugs.WithResolver
	WithServiceEngines       = slugs.WithEngineRegistry
	WithServiceLogger        = slugs.WithLogger
	WithObserverLogger       = slugs.WithObserverLogger
	NewResolver              = slugs.NewResolver
	NewEngineRegistry        = slugs.NewEngineRegistry
	NewTransliteratingEngine = slugs.NewTransliteratingEngine
	NewNormalizerEngine      = slugs.NewNormalizerEngine
	IsConfigError            = slugs.IsConfigError
	SlugKey                  = slugs.SlugKey
	SlugKeyName              = slugs.SlugKeyName
	DefaultSuffix            = slugs.DefaultSuffix
)

// NewService constructs a standalone slug service over finder.
func NewService(finder PeerFinder, opts ...ServiceOption) *Service {
	return slugs.NewService(finder, opts...)
}

// NewObserver constructs a standalone observer around service.
func NewObserver(service *Service, opts ...ObserverOption) *Observer {
	return slugs.NewObserver(service, opts...)
}

// Module represents the top level sluggable runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a module using the provided configuration and optional overrides.
func New(cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Slugs returns the configured slug service.
func (m *Module) Slugs() *Service {
	return m.container.SlugService()
}

// Observer returns the configured lifecycle observer.
func (m *Module) Observer() *Observer {
	return m.container.Observer()
}

// Articles returns the articles service.
func (m *Module) Articles() ArticleService {
	return m.container.ArticleService()
}

// PreviewHandler returns the slug preview command handler.
func (m *Module) PreviewHandler() *slugscmd.PreviewSlugHandler {
	return m.container.PreviewHandler()
}

// ResyncHandler returns the slug resync command handler.
func (m *Module) ResyncHandler() *slugscmd.ResyncSlugsHandler {
	return m.container.ResyncHandler()
}

// Logger returns a logger from the configured provider.
func (m *Module) Logger(name string) Logger {
	return m.container.LoggerProvider().GetLogger(name)
}
