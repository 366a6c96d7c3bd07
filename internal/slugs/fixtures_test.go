package slugs_test

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/goliatone/go-sluggable/pkg/interfaces"
)

type post struct {
	typeName string
	key      string
	attrs    map[string]any
	original map[string]any
	exists   bool
	fields   []interfaces.SlugField
	tenant   string
	trashed  bool
	softDel  bool
	sets     []string
}

func newPost(fields ...interfaces.SlugField) *post {
	if len(fields) == 0 {
		fields = []interfaces.SlugField{{Attribute: "slug", Options: map[string]any{"source": "title"}}}
	}
	return &post{
		typeName: "post",
		attrs:    map[string]any{},
		original: map[string]any{},
		fields:   fields,
	}
}

// saved marks the post as persisted under key with its current attributes.
func (p *post) saved(key string) *post {
	p.key = key
	p.exists = true
	p.original = maps.Clone(p.attrs)
	return p
}

func (p *post) with(name string, value any) *post {
	p.attrs[name] = value
	return p
}

func (p *post) SlugTypeName() string              { return p.typeName }
func (p *post) SlugKey() string                   { return p.key }
func (p *post) Sluggable() []interfaces.SlugField { return p.fields }
func (p *post) GetAttribute(name string) any      { return p.attrs[name] }
func (p *post) Exists() bool                      { return p.exists }
func (p *post) SupportsSoftDelete() bool          { return p.softDel }

func (p *post) SetAttribute(name string, value any) {
	p.sets = append(p.sets, name)
	p.attrs[name] = value
}

func (p *post) IsDirty(names ...string) bool {
	if len(names) == 0 {
		names = slices.Collect(maps.Keys(p.attrs))
	}
	for _, name := range names {
		if fmt.Sprint(p.attrs[name]) != fmt.Sprint(p.original[name]) {
			return true
		}
	}
	return false
}

func (p *post) UniqueSlugConstraints(string, string) map[string]any {
	if p.tenant == "" {
		return nil
	}
	return map[string]any{"tenant": p.tenant}
}

func (p *post) Replicate() interfaces.SlugRecord {
	clone := newPost(p.fields...)
	clone.typeName = p.typeName
	clone.tenant = p.tenant
	clone.softDel = p.softDel
	clone.attrs = maps.Clone(p.attrs)
	return clone
}

type titled struct {
	*post
}

func (t titled) String() string {
	return fmt.Sprint(t.attrs["title"])
}

// store is an in-memory peer finder over saved posts.
type store struct {
	posts []*post
	err   error
	calls int
	last  interfaces.SimilarSlugsQuery
}

func (s *store) add(p *post) *post {
	s.posts = append(s.posts, p)
	return p
}

func (s *store) FindSimilarSlugs(_ context.Context, q interfaces.SimilarSlugsQuery) ([]interfaces.SlugPeer, error) {
	s.calls++
	s.last = q
	if s.err != nil {
		return nil, s.err
	}
	var out []interfaces.SlugPeer
	for _, p := range s.posts {
		if p.typeName != q.TypeName {
			continue
		}
		if p.trashed && !q.IncludeTrashed {
			continue
		}
		if tenant, ok := q.Constraints["tenant"]; ok && p.tenant != tenant {
			continue
		}
		value, _ := p.attrs[q.Attribute].(string)
		if value == q.Slug || strings.HasPrefix(value, q.Slug+q.Separator) {
			out = append(out, interfaces.SlugPeer{Key: p.key, Slug: value})
		}
	}
	slices.SortFunc(out, func(a, b interfaces.SlugPeer) int { return strings.Compare(a.Key, b.Key) })
	return out, nil
}
