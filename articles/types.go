package articles

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-sluggable/pkg/interfaces"
)

// TypeName identifies articles to the slug service.
const TypeName = "article"

// Author is stored inline and exposed to dotted slug sources ("author.name").
type Author struct {
	Name   string `json:"name"`
	Handle string `json:"handle,omitempty"`
}

// Article is the sluggable demo record. Slug is unique per environment;
// Handle is rebuilt on every save from the title and subtitle.
type Article struct {
	bun.BaseModel `bun:"table:articles,alias:a"`

	ID             uuid.UUID  `bun:",pk,type:uuid" json:"id"`
	EnvironmentKey string     `bun:"environment_key,notnull" json:"environment_key"`
	Title          string     `bun:"title,notnull" json:"title"`
	Subtitle       string     `bun:"subtitle" json:"subtitle,omitempty"`
	Slug           string     `bun:"slug,notnull" json:"slug"`
	Handle         string     `bun:"handle" json:"handle,omitempty"`
	Author         Author     `bun:"author,type:jsonb" json:"author"`
	CreatedAt      time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt      time.Time  `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
	DeletedAt      *time.Time `bun:"deleted_at,nullzero" json:"deleted_at,omitempty"`

	original map[string]any
}

var (
	_ interfaces.SlugRecord       = (*Article)(nil)
	_ interfaces.SoftDeletable    = (*Article)(nil)
	_ interfaces.UniqueSlugScoper = (*Article)(nil)
	_ interfaces.Replicable       = (*Article)(nil)
	_ interfaces.SlugKeyNamer     = (*Article)(nil)
)

var reservedSlugs = []string{"new", "edit", "feed"}

// Sluggable declares the slug and handle attributes.
func (a *Article) Sluggable() []interfaces.SlugField {
	return []interfaces.SlugField{
		{Attribute: "slug", Options: map[string]any{
			"source":   "title",
			"reserved": reservedSlugs,
		}},
		{Attribute: "handle", Options: map[string]any{
			"source":    []string{"title", "subtitle"},
			"separator": "_",
			"maxLength": 32,
			"onUpdate":  true,
		}},
	}
}

func (a *Article) SlugTypeName() string { return TypeName }

func (a *Article) SlugKey() string {
	if a.ID == uuid.Nil {
		return ""
	}
	return a.ID.String()
}

func (a *Article) SlugKeyName() string { return "slug" }

// Exists reports whether the article has been saved.
func (a *Article) Exists() bool { return !a.CreatedAt.IsZero() }

func (a *Article) SupportsSoftDelete() bool { return true }

// UniqueSlugConstraints keeps slugs unique within an environment.
func (a *Article) UniqueSlugConstraints(string, string) map[string]any {
	return map[string]any{"environment_key": a.EnvironmentKey}
}

func (a *Article) String() string { return a.Title }

func (a *Article) GetAttribute(name string) any {
	switch name {
	case "id":
		return a.SlugKey()
	case "environment_key":
		return a.EnvironmentKey
	case "title":
		return a.Title
	case "subtitle":
		return a.Subtitle
	case "slug":
		return a.Slug
	case "handle":
		return a.Handle
	case "author":
		return a.Author
	default:
		return nil
	}
}

func (a *Article) SetAttribute(name string, value any) {
	s, _ := value.(string)
	switch name {
	case "environment_key":
		a.EnvironmentKey = s
	case "title":
		a.Title = s
	case "subtitle":
		a.Subtitle = s
	case "slug":
		a.Slug = s
	case "handle":
		a.Handle = s
	}
}

var trackedAttributes = []string{"environment_key", "title", "subtitle", "slug", "handle"}

// Snapshot records the current attribute values as the clean state. Storage
// calls it after every load and save.
func (a *Article) Snapshot() {
	a.original = make(map[string]any, len(trackedAttributes))
	for _, name := range trackedAttributes {
		a.original[name] = a.GetAttribute(name)
	}
}

// IsDirty compares against the last snapshot. Without a snapshot every
// non-empty attribute counts as dirty.
func (a *Article) IsDirty(names ...string) bool {
	if len(names) == 0 {
		names = trackedAttributes
	}
	for _, name := range names {
		current := a.GetAttribute(name)
		if a.original == nil {
			if current != nil && current != "" {
				return true
			}
			continue
		}
		if a.original[name] != current {
			return true
		}
	}
	return false
}

// Replicate copies the content fields into a new unsaved article.
func (a *Article) Replicate() interfaces.SlugRecord {
	return &Article{
		EnvironmentKey: a.EnvironmentKey,
		Title:          a.Title,
		Subtitle:       a.Subtitle,
		Slug:           a.Slug,
		Handle:         a.Handle,
		Author:         a.Author,
	}
}

// Clone returns a deep copy including the dirty-tracking snapshot.
func (a *Article) Clone() *Article {
	if a == nil {
		return nil
	}
	cloned := *a
	if a.DeletedAt != nil {
		deleted := *a.DeletedAt
		cloned.DeletedAt = &deleted
	}
	if a.original != nil {
		cloned.original = make(map[string]any, len(a.original))
		for k, v := range a.original {
			cloned.original[k] = v
		}
	}
	return &cloned
}
