package articles

import (
	"context"
	"fmt"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-sluggable/articles"
	"github.com/goliatone/go-sluggable/pkg/interfaces"
)

// Article aliases the public model.
type Article = articles.Article

// ArticleRepository exposes persistence operations for articles. Every
// implementation also answers peer lookups for the slug service.
type ArticleRepository interface {
	interfaces.PeerFinder

	Create(ctx context.Context, article *Article) (*Article, error)
	Update(ctx context.Context, article *Article) (*Article, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Article, error)
	// GetBySlug returns the live article holding slug in environment.
	GetBySlug(ctx context.Context, environment, slug string) (*Article, error)
	// List returns live articles, optionally restricted to one environment.
	List(ctx context.Context, environment string) ([]*Article, error)
}

// NotFoundError is returned when an article cannot be located.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// NewArticleRepository creates the go-repository-bun repository for articles.
// Slugs are the lookup identifier.
func NewArticleRepository(db *bun.DB) repository.Repository[*Article] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Article]{
		NewRecord: func() *Article { return &Article{} },
		GetID: func(a *Article) uuid.UUID {
			return a.ID
		},
		SetID: func(a *Article, id uuid.UUID) {
			a.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(a *Article) string {
			return a.Slug
		},
	})
}
