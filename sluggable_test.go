package sluggable_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-sluggable"
	"github.com/goliatone/go-sluggable/internal/logging/console"
)

type tag struct {
	key    string
	attrs  map[string]any
	saved  bool
	fields []sluggable.Field
}

func newTag(key, name string) *tag {
	return &tag{
		key:    key,
		attrs:  map[string]any{"name": name},
		fields: []sluggable.Field{{Attribute: "slug", Options: sluggable.Options{"source": "name"}}},
	}
}

func (t *tag) SlugTypeName() string                { return "tag" }
func (t *tag) SlugKey() string                     { return t.key }
func (t *tag) Sluggable() []sluggable.Field        { return t.fields }
func (t *tag) GetAttribute(name string) any        { return t.attrs[name] }
func (t *tag) SetAttribute(name string, value any) { t.attrs[name] = value }
func (t *tag) IsDirty(...string) bool              { return false }
func (t *tag) Exists() bool                        { return t.saved }

type tagStore struct {
	tags []*tag
}

func (s *tagStore) FindSimilarSlugs(_ context.Context, query sluggable.SimilarSlugsQuery) ([]sluggable.Peer, error) {
	var peers []sluggable.Peer
	for _, existing := range s.tags {
		slug, _ := existing.attrs[query.Attribute].(string)
		if slug == query.Slug || strings.HasPrefix(slug, query.Slug+query.Separator) {
			peers = append(peers, sluggable.Peer{Key: existing.key, Slug: slug})
		}
	}
	return peers, nil
}

func TestStandaloneServiceSlugsCustomRecords(t *testing.T) {
	store := &tagStore{}
	svc := sluggable.NewService(store)
	observer := sluggable.NewObserver(svc)

	for i, key := range []string{"1", "2", "3"} {
		record := newTag(key, "Go Tips")
		if _, err := observer.Saving(context.Background(), record); err != nil {
			t.Fatalf("saving %d: %v", i, err)
		}
		record.saved = true
		store.tags = append(store.tags, record)
	}

	got := []string{}
	for _, record := range store.tags {
		got = append(got, sluggable.SlugKey(record))
	}
	want := []string{"go-tips", "go-tips-1", "go-tips-2"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestStandaloneServiceReportsConfigErrors(t *testing.T) {
	svc := sluggable.NewService(&tagStore{})
	record := newTag("1", "Broken")
	record.fields[0].Options["method"] = 42

	_, err := svc.Slug(context.Background(), record, false)
	if !sluggable.IsConfigError(err) || !errors.Is(err, sluggable.ErrMethodNotCallable) {
		t.Fatalf("expected method config error, got %v", err)
	}
}

func TestModuleWiresArticles(t *testing.T) {
	module, err := sluggable.New(sluggable.DefaultConfig())
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	if module.Slugs() == nil || module.Observer() == nil {
		t.Fatal("expected slug service and observer")
	}

	preview, err := module.Articles().PreviewSlug(context.Background(), sluggable.PreviewSlugInput{Text: "Release Notes"})
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if preview != "release-notes" {
		t.Fatalf("expected release-notes, got %q", preview)
	}
}

func TestParseConfigRejectsUnknownEngine(t *testing.T) {
	_, err := sluggable.ParseConfig([]byte("engine:\n  name: unknown\n"))
	if !errors.Is(err, sluggable.ErrEngineUnknown) {
		t.Fatalf("expected ErrEngineUnknown, got %v", err)
	}
}

func TestStandaloneObserverAcceptsLogger(t *testing.T) {
	var buf bytes.Buffer
	level := console.LevelDebug
	logger := console.NewProvider(console.Options{Writer: &buf, MinLevel: &level}).GetLogger("tags")

	observer := sluggable.NewObserver(sluggable.NewService(&tagStore{}), sluggable.WithObserverLogger(logger))
	if _, err := observer.Saving(context.Background(), newTag("1", "Logged Tag")); err != nil {
		t.Fatalf("saving: %v", err)
	}
	if !strings.Contains(buf.String(), "observer.slugged") {
		t.Fatalf("expected observer log entry, got %q", buf.String())
	}
}
