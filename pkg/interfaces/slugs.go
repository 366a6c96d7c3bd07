package interfaces

import "context"

// SlugField declares one sluggable attribute of a record. A nil Options map is
// the positional form and resolves to the default configuration; a non-nil map
// is shallow-merged over the defaults.
type SlugField struct {
	Attribute string
	Options   map[string]any
}

// SlugRecord is the minimal view of a persisted entity the slug service needs.
// Implementations own their attribute storage and dirty tracking; the slug
// service only ever writes the attributes declared by Sluggable.
type SlugRecord interface {
	// SlugTypeName identifies the record type (used for engine memoization,
	// hook routing, and error messages).
	SlugTypeName() string
	// SlugKey returns the record key rendered as a string. Unsaved records may
	// return an empty string.
	SlugKey() string
	// Sluggable lists the slug attributes in declaration order.
	Sluggable() []SlugField
	GetAttribute(name string) any
	SetAttribute(name string, value any)
	// IsDirty reports whether any of the named attributes changed since the
	// record was loaded. Calling it without names checks every attribute.
	IsDirty(names ...string) bool
	// Exists reports whether the record has been persisted.
	Exists() bool
}

// SlugEngine converts free text into slug text using the given separator.
type SlugEngine interface {
	Slugify(text, separator string) string
}

// SoftDeletable is implemented by record types that keep trashed rows around.
type SoftDeletable interface {
	SupportsSoftDelete() bool
}

// EngineCustomizer lets a record type adjust the engine used for one of its
// attributes. It is called once per (type, attribute); returning nil keeps the
// engine it was given.
type EngineCustomizer interface {
	CustomizeSlugEngine(engine SlugEngine, attribute string) SlugEngine
}

// UniqueSlugScoper narrows the peer lookup with equality constraints keyed by
// column name, e.g. to keep slugs unique per tenant or environment.
type UniqueSlugScoper interface {
	UniqueSlugConstraints(attribute, slug string) map[string]any
}

// Replicable records can clone themselves into a new, unsaved instance.
type Replicable interface {
	SlugRecord
	Replicate() SlugRecord
}

// SlugKeyNamer overrides the attribute treated as the record's primary slug.
type SlugKeyNamer interface {
	SlugKeyName() string
}

// SlugPeer is a stored record key together with its slug value.
type SlugPeer struct {
	Key  string
	Slug string
}

// SimilarSlugsQuery describes a peer lookup: every stored record of TypeName
// whose Attribute equals Slug or starts with Slug+Separator.
type SimilarSlugsQuery struct {
	Record         SlugRecord
	TypeName       string
	Attribute      string
	Slug           string
	Separator      string
	IncludeTrashed bool
	Constraints    map[string]any
}

// PeerFinder is the record store capability used for uniqueness checks.
// Results must be ordered by record key.
type PeerFinder interface {
	FindSimilarSlugs(ctx context.Context, query SimilarSlugsQuery) ([]SlugPeer, error)
}
