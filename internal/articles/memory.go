package articles

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/goliatone/go-sluggable/pkg/interfaces"
)

type memoryRepository struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]*Article
}

// NewMemoryRepository constructs an in-memory article repository.
func NewMemoryRepository() ArticleRepository {
	return &memoryRepository{byID: make(map[uuid.UUID]*Article)}
}

func (m *memoryRepository) Create(_ context.Context, article *Article) (*Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := article.Clone()
	stored.Snapshot()
	m.byID[stored.ID] = stored
	return stored.Clone(), nil
}

func (m *memoryRepository) Update(_ context.Context, article *Article) (*Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[article.ID]; !ok {
		return nil, &NotFoundError{Resource: "article", Key: article.ID.String()}
	}
	stored := article.Clone()
	stored.Snapshot()
	m.byID[stored.ID] = stored
	return stored.Clone(), nil
}

func (m *memoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Article, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: "article", Key: id.String()}
	}
	return record.Clone(), nil
}

func (m *memoryRepository) GetBySlug(_ context.Context, environment, slug string) (*Article, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, record := range m.sorted() {
		if record.DeletedAt == nil && record.EnvironmentKey == environment && record.Slug == slug {
			return record.Clone(), nil
		}
	}
	return nil, &NotFoundError{Resource: "article", Key: slug}
}

func (m *memoryRepository) List(_ context.Context, environment string) ([]*Article, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*Article
	for _, record := range m.sorted() {
		if record.DeletedAt != nil {
			continue
		}
		if environment != "" && record.EnvironmentKey != environment {
			continue
		}
		out = append(out, record.Clone())
	}
	return out, nil
}

// FindSimilarSlugs scans stored articles the way the SQL finders query them.
func (m *memoryRepository) FindSimilarSlugs(_ context.Context, query interfaces.SimilarSlugsQuery) ([]interfaces.SlugPeer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	prefix := query.Slug + query.Separator
	var out []interfaces.SlugPeer
	for _, record := range m.sorted() {
		if record.DeletedAt != nil && !query.IncludeTrashed {
			continue
		}
		if !matchesConstraints(record, query.Constraints) {
			continue
		}
		value, _ := record.GetAttribute(query.Attribute).(string)
		if value == query.Slug || strings.HasPrefix(value, prefix) {
			out = append(out, interfaces.SlugPeer{Key: record.SlugKey(), Slug: value})
		}
	}
	return out, nil
}

func (m *memoryRepository) sorted() []*Article {
	records := make([]*Article, 0, len(m.byID))
	for _, record := range m.byID {
		records = append(records, record)
	}
	slices.SortFunc(records, func(a, b *Article) int {
		return strings.Compare(a.ID.String(), b.ID.String())
	})
	return records
}

func matchesConstraints(record *Article, constraints map[string]any) bool {
	for column, want := range constraints {
		if record.GetAttribute(column) != want {
			return false
		}
	}
	return true
}
