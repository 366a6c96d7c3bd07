package di

import (
	"io"
	"strings"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-sluggable/internal/articles"
	"github.com/goliatone/go-sluggable/internal/commands"
	slugscmd "github.com/goliatone/go-sluggable/internal/commands/slugs"
	"github.com/goliatone/go-sluggable/internal/logging"
	"github.com/goliatone/go-sluggable/internal/logging/console"
	"github.com/goliatone/go-sluggable/internal/logging/gologger"
	zerologprovider "github.com/goliatone/go-sluggable/internal/logging/zerolog"
	"github.com/goliatone/go-sluggable/internal/runtimeconfig"
	"github.com/goliatone/go-sluggable/internal/slugs"
	"github.com/goliatone/go-sluggable/pkg/interfaces"
)

// Container wires the slug service, the lifecycle observer and the articles
// module from a runtime configuration.
type Container struct {
	Config runtimeconfig.Config

	bunDB          *bun.DB
	logWriter      io.Writer
	loggerProvider interfaces.LoggerProvider
	cacheService   repocache.CacheService
	keySerializer  repocache.KeySerializer
	engineFactory  slugs.EngineFactory
	peerFinder     interfaces.PeerFinder
	idGenerator    articles.IDGenerator

	articleRepo articles.ArticleRepository

	resolver   *slugs.Resolver
	engines    *slugs.EngineRegistry
	slugSvc    *slugs.Service
	observer   *slugs.Observer
	articleSvc articles.Service

	previewHandler *slugscmd.PreviewSlugHandler
	resyncHandler  *slugscmd.ResyncSlugsHandler
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB stores articles in db instead of memory.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithLoggerProvider overrides the provider selected by the logging config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithLogWriter redirects the configured logging provider.
func WithLogWriter(w io.Writer) Option {
	return func(c *Container) {
		c.logWriter = w
	}
}

// WithCache overrides the default cache service used when caching is enabled.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithEngineFactory overrides the engine selected by the engine config.
func WithEngineFactory(factory slugs.EngineFactory) Option {
	return func(c *Container) {
		c.engineFactory = factory
	}
}

// WithPeerFinder makes the slug service look up peers through finder instead
// of the article repository.
func WithPeerFinder(finder interfaces.PeerFinder) Option {
	return func(c *Container) {
		c.peerFinder = finder
	}
}

// WithIDGenerator overrides how new article IDs are allocated.
func WithIDGenerator(gen articles.IDGenerator) Option {
	return func(c *Container) {
		c.idGenerator = gen
	}
}

// WithArticleRepository overrides the article repository binding.
func WithArticleRepository(repo articles.ArticleRepository) Option {
	return func(c *Container) {
		c.articleRepo = repo
	}
}

// NewContainer validates cfg and builds every service.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Container{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	if err := c.configureCache(); err != nil {
		return nil, err
	}
	c.configureRepositories()
	c.configureSlugs()
	c.configureServices()
	c.configureCommands()
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil {
		return nil
	}
	logCfg := c.Config.Logging
	switch strings.ToLower(strings.TrimSpace(logCfg.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     logCfg.Level,
			Format:    logCfg.Format,
			AddSource: logCfg.AddSource,
			Focus:     logCfg.Focus,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	case "zerolog":
		c.loggerProvider = zerologprovider.NewProvider(zerologprovider.Config{
			Level:  logCfg.Level,
			Pretty: strings.EqualFold(strings.TrimSpace(logCfg.Format), "pretty"),
			Writer: c.logWriter,
		})
	default:
		level := console.LevelInfo
		if strings.TrimSpace(logCfg.Level) != "" {
			level = console.ParseLevel(logCfg.Level)
		}
		c.loggerProvider = console.NewProvider(console.Options{
			Writer:   c.logWriter,
			MinLevel: &level,
		})
	}
	return nil
}

func (c *Container) configureCache() error {
	if !c.Config.Cache.Enabled || c.bunDB == nil {
		return nil
	}
	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.Config.Cache.TTL > 0 {
			cfg.TTL = c.Config.Cache.TTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err != nil {
			return err
		}
		c.cacheService = service
	}
	if c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
	return nil
}

func (c *Container) configureRepositories() {
	if c.articleRepo != nil {
		return
	}
	if c.bunDB != nil {
		c.articleRepo = articles.NewBunArticleRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		return
	}
	c.articleRepo = articles.NewMemoryRepository()
}

func (c *Container) configureSlugs() {
	defaults := c.Config.Slugs
	c.resolver = slugs.NewResolver(func() slugs.Options {
		return defaults.Options()
	})

	factory := c.engineFactory
	if factory == nil {
		factory = engineFactory(c.Config.Engine)
	}
	c.engines = slugs.NewEngineRegistry(factory)

	finder := c.peerFinder
	if finder == nil {
		finder = c.articleRepo
	}
	c.slugSvc = slugs.NewService(finder,
		slugs.WithResolver(c.resolver),
		slugs.WithEngineRegistry(c.engines),
		slugs.WithLogger(logging.SlugsLogger(c.loggerProvider)),
	)
	c.observer = slugs.NewObserver(c.slugSvc,
		slugs.WithObserverLogger(logging.ObserverLogger(c.loggerProvider)),
	)
}

func (c *Container) configureServices() {
	opts := []articles.ServiceOption{
		articles.WithSlugService(c.slugSvc),
		articles.WithObserver(c.observer),
		articles.WithLogger(logging.ArticlesLogger(c.loggerProvider)),
	}
	if c.idGenerator != nil {
		opts = append(opts, articles.WithIDGenerator(c.idGenerator))
	}
	c.articleSvc = articles.NewService(c.articleRepo, opts...)
}

func (c *Container) configureCommands() {
	logger := commands.CommandLogger(c.loggerProvider, "slugs")
	c.previewHandler = slugscmd.NewPreviewSlugHandler(c.articleSvc, logger)
	c.resyncHandler = slugscmd.NewResyncSlugsHandler(c.articleSvc, logger)
}

// engineFactory builds a fresh engine per (type, attribute) pair so record
// customizers never share state.
func engineFactory(cfg runtimeconfig.EngineConfig) slugs.EngineFactory {
	if strings.EqualFold(strings.TrimSpace(cfg.Name), "normalizer") {
		return func(string, string) slugs.Engine {
			return slugs.NewNormalizerEngine()
		}
	}
	language := cfg.Language
	replacements := cfg.Replacements
	return func(string, string) slugs.Engine {
		return slugs.NewTransliteratingEngine(
			slugs.WithLanguage(language),
			slugs.WithReplacements(replacements),
		)
	}
}

// LoggerProvider exposes the configured logger provider.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// SlugService returns the configured slug service.
func (c *Container) SlugService() *slugs.Service {
	return c.slugSvc
}

// Observer returns the lifecycle observer.
func (c *Container) Observer() *slugs.Observer {
	return c.observer
}

// ArticleService returns the articles service.
func (c *Container) ArticleService() articles.Service {
	return c.articleSvc
}

// ArticleRepository returns the bound article repository.
func (c *Container) ArticleRepository() articles.ArticleRepository {
	return c.articleRepo
}

// PreviewHandler returns the slug preview command handler.
func (c *Container) PreviewHandler() *slugscmd.PreviewSlugHandler {
	return c.previewHandler
}

// ResyncHandler returns the slug resync command handler.
func (c *Container) ResyncHandler() *slugscmd.ResyncSlugsHandler {
	return c.resyncHandler
}
