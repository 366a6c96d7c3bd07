package slugs

import (
	"context"
	"strings"

	"github.com/goliatone/go-sluggable/internal/logging"
	"github.com/goliatone/go-sluggable/pkg/interfaces"
)

// ServiceOption configures the slug service.
type ServiceOption func(*Service)

// WithResolver overrides the configuration resolver.
func WithResolver(resolver *Resolver) ServiceOption {
	return func(s *Service) {
		if resolver != nil {
			s.resolver = resolver
		}
	}
}

// WithEngineRegistry overrides the engine registry.
func WithEngineRegistry(registry *EngineRegistry) ServiceOption {
	return func(s *Service) {
		if registry != nil {
			s.engines = registry
		}
	}
}

// WithLogger injects the logger used for debug traces.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Service builds slugs for records and keeps them unique among peers.
type Service struct {
	finder   interfaces.PeerFinder
	resolver *Resolver
	engines  *EngineRegistry
	logger   interfaces.Logger
}

// NewService constructs a slug service backed by the provided peer finder.
func NewService(finder interfaces.PeerFinder, opts ...ServiceOption) *Service {
	if finder == nil {
		panic(ErrPeerFinderRequired)
	}
	s := &Service{
		finder:   finder,
		resolver: NewResolver(nil),
		engines:  NewEngineRegistry(nil),
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Resolver exposes the configuration resolver.
func (s *Service) Resolver() *Resolver {
	return s.resolver
}

// Engines exposes the engine registry.
func (s *Service) Engines() *EngineRegistry {
	return s.engines
}

// Slug (re)computes every declared slug attribute of record and reports
// whether any of them changed.
func (s *Service) Slug(ctx context.Context, record interfaces.SlugRecord, force bool) (bool, error) {
	if record == nil {
		return false, ErrRecordRequired
	}

	changed := false
	for _, field := range record.Sluggable() {
		cfg := s.resolver.Resolve(field.Options)
		before := stringValue(record.GetAttribute(field.Attribute))

		slug, err := s.BuildSlug(ctx, record, field.Attribute, cfg, force)
		if err != nil {
			return false, err
		}
		record.SetAttribute(field.Attribute, slug)
		if slug != before {
			changed = true
		}
	}
	return changed, nil
}

// BuildSlug returns the slug for one attribute. When the attribute does not
// need slugging, or the source text is empty, the current value is returned.
func (s *Service) BuildSlug(ctx context.Context, record interfaces.SlugRecord, attribute string, cfg FieldConfig, force bool) (string, error) {
	if record == nil {
		return "", ErrRecordRequired
	}
	current := stringValue(record.GetAttribute(attribute))
	if !force && !needsSlugging(record, attribute, cfg) {
		s.logger.Debug("slugs.build.skipped", "type", record.SlugTypeName(), "attribute", attribute)
		return current, nil
	}
	if err := checkDecoded(record, attribute, cfg); err != nil {
		return "", err
	}

	source := sourceText(record, cfg)
	if strings.TrimSpace(source) == "" {
		s.logger.Debug("slugs.build.no_source", "type", record.SlugTypeName(), "attribute", attribute)
		return current, nil
	}

	slug, err := s.pipeline(ctx, record, attribute, source, cfg)
	if err != nil {
		return "", err
	}
	s.logger.Debug("slugs.build.generated",
		"type", record.SlugTypeName(),
		"attribute", attribute,
		"slug", slug,
		"forced", force,
	)
	return slug, nil
}

// CreateSlug previews the slug text would get for attribute of the record's
// type, including reserved-word and uniqueness checks, without touching the
// record. A nil config uses the record's declared options for attribute.
func (s *Service) CreateSlug(ctx context.Context, record interfaces.SlugRecord, attribute, text string, config any) (string, error) {
	if record == nil {
		return "", ErrRecordRequired
	}

	var cfg FieldConfig
	switch c := config.(type) {
	case nil:
		cfg = s.resolver.Resolve(declaredOptions(record, attribute))
	case map[string]any:
		cfg = s.resolver.Resolve(c)
	case FieldConfig:
		cfg = c
	case *FieldConfig:
		if c == nil {
			cfg = s.resolver.Resolve(declaredOptions(record, attribute))
		} else {
			cfg = *c
		}
	default:
		return "", newConfigError(record.SlugTypeName(), attribute, "config", ErrConfigNotMapping)
	}
	if err := checkDecoded(record, attribute, cfg); err != nil {
		return "", err
	}
	return s.pipeline(ctx, record, attribute, text, cfg)
}

func (s *Service) pipeline(ctx context.Context, record interfaces.SlugRecord, attribute, source string, cfg FieldConfig) (string, error) {
	slug, err := s.generate(record, attribute, source, cfg)
	if err != nil {
		return "", err
	}
	if slug, err = validateReserved(record, slug, cfg, attribute); err != nil {
		return "", err
	}
	return s.makeUnique(ctx, record, slug, cfg, attribute)
}

func (s *Service) generate(record interfaces.SlugRecord, attribute, source string, cfg FieldConfig) (string, error) {
	var slug string
	switch method := cfg.Method.(type) {
	case nil:
		slug = s.engines.Engine(record, attribute).Slugify(source, cfg.Separator)
	case MethodFunc:
		slug = method(source, cfg.Separator)
	case func(string, string) string:
		slug = method(source, cfg.Separator)
	case Engine:
		slug = method.Slugify(source, cfg.Separator)
	default:
		return "", newConfigError(record.SlugTypeName(), attribute, OptionMethod, ErrMethodNotCallable)
	}
	if cfg.MaxLength > 0 {
		slug = truncateRunes(slug, cfg.MaxLength)
	}
	return slug, nil
}

// needsSlugging checks emptiness and onUpdate before dirtiness: an explicit
// value supplied by the caller is only kept when it is non-empty.
func needsSlugging(record interfaces.SlugRecord, attribute string, cfg FieldConfig) bool {
	if stringValue(record.GetAttribute(attribute)) == "" || cfg.OnUpdate {
		return true
	}
	if record.IsDirty(attribute) {
		return false
	}
	return !record.Exists()
}

func checkDecoded(record interfaces.SlugRecord, attribute string, cfg FieldConfig) error {
	if invalid := cfg.InvalidOptions(); len(invalid) > 0 {
		return newConfigError(record.SlugTypeName(), attribute, invalid[0], ErrOptionInvalid)
	}
	return nil
}

func declaredOptions(record interfaces.SlugRecord, attribute string) Options {
	for _, field := range record.Sluggable() {
		if field.Attribute == attribute {
			return field.Options
		}
	}
	return nil
}

func truncateRunes(value string, limit int) string {
	count := 0
	for idx := range value {
		if count == limit {
			return value[:idx]
		}
		count++
	}
	return value
}
