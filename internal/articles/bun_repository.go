package articles

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-sluggable/articles"
	"github.com/goliatone/go-sluggable/internal/peers"
	"github.com/goliatone/go-sluggable/pkg/interfaces"
)

// BunArticleRepository stores articles with go-repository-bun. Reads may go
// through a cache; peer lookups always hit the database.
type BunArticleRepository struct {
	repo  repository.Repository[*Article]
	peers *peers.BunFinder
}

var _ ArticleRepository = (*BunArticleRepository)(nil)

// NewBunArticleRepository creates an article repository without caching.
func NewBunArticleRepository(db *bun.DB) *BunArticleRepository {
	return NewBunArticleRepositoryWithCache(db, nil, nil)
}

// NewBunArticleRepositoryWithCache creates an article repository with caching support.
func NewBunArticleRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunArticleRepository {
	base := NewArticleRepository(db)
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
	}
	return &BunArticleRepository{
		repo:  base,
		peers: peers.NewBunFinder(db).RegisterModel(articles.TypeName, (*Article)(nil)),
	}
}

func (r *BunArticleRepository) Create(ctx context.Context, article *Article) (*Article, error) {
	record, err := r.repo.Create(ctx, article)
	if err != nil {
		return nil, fmt.Errorf("article repository error: %w", err)
	}
	record.Snapshot()
	return record, nil
}

func (r *BunArticleRepository) Update(ctx context.Context, article *Article) (*Article, error) {
	updated, err := r.repo.Update(ctx, article,
		repository.UpdateByID(article.ID.String()),
		repository.UpdateColumns(
			"environment_key",
			"title",
			"subtitle",
			"slug",
			"handle",
			"author",
			"updated_at",
			"deleted_at",
		),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "article", article.ID.String())
	}
	updated.Snapshot()
	return updated, nil
}

func (r *BunArticleRepository) GetByID(ctx context.Context, id uuid.UUID) (*Article, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "article", id.String())
	}
	record = record.Clone()
	record.Snapshot()
	return record, nil
}

func (r *BunArticleRepository) GetBySlug(ctx context.Context, environment, slug string) (*Article, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.
				Where("?TableAlias.environment_key = ?", environment).
				Where("?TableAlias.slug = ?", slug).
				Where("?TableAlias.deleted_at IS NULL")
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "article", slug)
	}
	if len(records) == 0 {
		return nil, &NotFoundError{Resource: "article", Key: slug}
	}
	record := records[0].Clone()
	record.Snapshot()
	return record, nil
}

func (r *BunArticleRepository) List(ctx context.Context, environment string) ([]*Article, error) {
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		q = q.Where("?TableAlias.deleted_at IS NULL").OrderExpr("?TableAlias.id ASC")
		if environment != "" {
			q = q.Where("?TableAlias.environment_key = ?", environment)
		}
		return q
	}))
	if err != nil {
		return nil, err
	}
	out := make([]*Article, len(records))
	for i, record := range records {
		out[i] = record.Clone()
		out[i].Snapshot()
	}
	return out, nil
}

// FindSimilarSlugs delegates to the uncached bun peer finder.
func (r *BunArticleRepository) FindSimilarSlugs(ctx context.Context, query interfaces.SimilarSlugsQuery) ([]interfaces.SlugPeer, error) {
	return r.peers.FindSimilarSlugs(ctx, query)
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Resource: resource, Key: key}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}
