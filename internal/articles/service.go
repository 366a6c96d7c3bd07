package articles

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-sluggable/articles"
	"github.com/goliatone/go-sluggable/internal/logging"
	"github.com/goliatone/go-sluggable/internal/slugs"
	"github.com/goliatone/go-sluggable/pkg/interfaces"
)

// Service manages articles and keeps their slugs in shape on every save. A
// slugging hook that aborts skips slug generation, not the save.
type Service interface {
	Create(ctx context.Context, input CreateArticleInput) (*Article, error)
	Update(ctx context.Context, input UpdateArticleInput) (*Article, error)
	Duplicate(ctx context.Context, id uuid.UUID) (*Article, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*Article, error)
	GetBySlug(ctx context.Context, environment, slug string) (*Article, error)
	PreviewSlug(ctx context.Context, input PreviewSlugInput) (string, error)
	Resync(ctx context.Context, environment string) (ResyncResult, error)
}

// CreateArticleInput captures a new article. An empty Slug is generated.
type CreateArticleInput struct {
	EnvironmentKey string
	Title          string
	Subtitle       string
	Slug           string
	Author         articles.Author
}

// UpdateArticleInput captures mutable article fields. Nil fields are kept.
type UpdateArticleInput struct {
	ID       uuid.UUID
	Title    *string
	Subtitle *string
	Slug     *string
	Author   *articles.Author
}

// PreviewSlugInput asks which slug text would receive without saving.
type PreviewSlugInput struct {
	EnvironmentKey string
	Attribute      string
	Text           string
}

// ResyncResult reports how many articles were inspected and rewritten.
type ResyncResult struct {
	Scanned int
	Updated int
}

var (
	ErrArticleRepositoryRequired = errors.New("articles: repository required")
	ErrTitleRequired             = errors.New("articles: title is required")
	ErrAttributeUnknown          = errors.New("articles: attribute is not sluggable")
)

// IDGenerator produces article IDs.
type IDGenerator func() uuid.UUID

// ServiceOption configures service behaviour.
type ServiceOption func(*service)

// WithSlugService overrides the slug service. By default one is built over
// the repository.
func WithSlugService(slugService *slugs.Service) ServiceOption {
	return func(s *service) {
		if slugService != nil {
			s.slugs = slugService
		}
	}
}

// WithObserver overrides the lifecycle observer.
func WithObserver(observer *slugs.Observer) ServiceOption {
	return func(s *service) {
		if observer != nil {
			s.observer = observer
		}
	}
}

// WithLogger injects the module logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithIDGenerator overrides ID generation (primarily for tests).
func WithIDGenerator(gen IDGenerator) ServiceOption {
	return func(s *service) {
		if gen != nil {
			s.id = gen
		}
	}
}

// WithNow overrides the time source (primarily for tests).
func WithNow(now func() time.Time) ServiceOption {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

type service struct {
	repo     ArticleRepository
	slugs    *slugs.Service
	observer *slugs.Observer
	logger   interfaces.Logger
	id       IDGenerator
	now      func() time.Time
}

// NewService constructs an article service.
func NewService(repo ArticleRepository, opts ...ServiceOption) Service {
	if repo == nil {
		panic(ErrArticleRepositoryRequired)
	}
	s := &service{
		repo:   repo,
		logger: logging.NoOp(),
		id:     uuid.New,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.slugs == nil {
		s.slugs = slugs.NewService(repo, slugs.WithLogger(s.logger))
	}
	if s.observer == nil {
		s.observer = slugs.NewObserver(s.slugs, slugs.WithObserverLogger(s.logger))
	}
	return s
}

func (s *service) Create(ctx context.Context, input CreateArticleInput) (*Article, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	article := &Article{
		ID:             s.id(),
		EnvironmentKey: normalizeEnvironment(input.EnvironmentKey),
		Title:          title,
		Subtitle:       strings.TrimSpace(input.Subtitle),
		Slug:           strings.TrimSpace(input.Slug),
		Author:         input.Author,
	}
	if err := s.saving(ctx, article); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	article.CreatedAt = now
	article.UpdatedAt = now
	created, err := s.repo.Create(ctx, article)
	if err != nil {
		return nil, err
	}
	s.logger.Info("articles.created", "id", created.ID, "slug", created.Slug, "environment", created.EnvironmentKey)
	return created, nil
}

func (s *service) Update(ctx context.Context, input UpdateArticleInput) (*Article, error) {
	article, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		article.Title = title
	}
	if input.Subtitle != nil {
		article.Subtitle = strings.TrimSpace(*input.Subtitle)
	}
	if input.Slug != nil {
		article.Slug = strings.TrimSpace(*input.Slug)
	}
	if input.Author != nil {
		article.Author = *input.Author
	}
	if err := s.saving(ctx, article); err != nil {
		return nil, err
	}

	article.UpdatedAt = s.now().UTC()
	updated, err := s.repo.Update(ctx, article)
	if err != nil {
		return nil, err
	}
	s.logger.Info("articles.updated", "id", updated.ID, "slug", updated.Slug)
	return updated, nil
}

func (s *service) Duplicate(ctx context.Context, id uuid.UUID) (*Article, error) {
	source, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	replica, err := s.observer.Replicate(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("articles: duplicate %s: %w", id, slugs.AsValidationError(err))
	}
	clone, ok := replica.(*Article)
	if !ok {
		return nil, fmt.Errorf("articles: duplicate %s: unexpected replica %T", id, replica)
	}

	now := s.now().UTC()
	clone.ID = s.id()
	clone.CreatedAt = now
	clone.UpdatedAt = now
	created, err := s.repo.Create(ctx, clone)
	if err != nil {
		return nil, err
	}
	s.logger.Info("articles.duplicated", "source", id, "id", created.ID, "slug", created.Slug)
	return created, nil
}

// Delete soft deletes the article. Its slug stays reserved only for peers
// that opt into includeTrashed.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	article, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	now := s.now().UTC()
	article.DeletedAt = &now
	article.UpdatedAt = now
	if _, err := s.repo.Update(ctx, article); err != nil {
		return err
	}
	s.logger.Info("articles.deleted", "id", id)
	return nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Article, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetBySlug(ctx context.Context, environment, slug string) (*Article, error) {
	return s.repo.GetBySlug(ctx, normalizeEnvironment(environment), strings.TrimSpace(slug))
}

func (s *service) PreviewSlug(ctx context.Context, input PreviewSlugInput) (string, error) {
	probe := &Article{EnvironmentKey: normalizeEnvironment(input.EnvironmentKey)}
	attribute := strings.TrimSpace(input.Attribute)
	if attribute == "" {
		attribute = probe.SlugKeyName()
	}
	if !isSlugAttribute(probe, attribute) {
		return "", fmt.Errorf("%w: %s", ErrAttributeUnknown, attribute)
	}
	slug, err := s.slugs.CreateSlug(ctx, probe, attribute, input.Text, nil)
	if err != nil {
		return "", slugs.AsValidationError(err)
	}
	return slug, nil
}

// Resync force-regenerates every live article's slugs in key order and
// persists the ones that changed.
func (s *service) Resync(ctx context.Context, environment string) (ResyncResult, error) {
	var result ResyncResult
	env := strings.TrimSpace(environment)
	if env != "" {
		env = normalizeEnvironment(env)
	}
	records, err := s.repo.List(ctx, env)
	if err != nil {
		return result, err
	}
	for _, article := range records {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		result.Scanned++
		changed, err := s.slugs.Slug(ctx, article, true)
		if err != nil {
			return result, fmt.Errorf("articles: resync %s: %w", article.ID, slugs.AsValidationError(err))
		}
		if !changed {
			continue
		}
		article.UpdatedAt = s.now().UTC()
		if _, err := s.repo.Update(ctx, article); err != nil {
			return result, err
		}
		result.Updated++
		logging.WithRecord(s.logger, article.SlugTypeName(), article.SlugKey()).
			Debug("articles.resync.updated", "slug", article.Slug, "handle", article.Handle)
	}
	s.logger.Info("articles.resync.completed", "scanned", result.Scanned, "updated", result.Updated)
	return result, nil
}

func (s *service) saving(ctx context.Context, article *Article) error {
	outcome, err := s.observer.Saving(ctx, article)
	if err != nil {
		return slugs.AsValidationError(err)
	}
	if outcome.Aborted {
		s.logger.Debug("articles.slugging.skipped", "id", article.ID)
	}
	return nil
}
