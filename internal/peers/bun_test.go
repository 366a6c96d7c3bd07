package peers_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/uptrace/bun"

	"github.com/goliatone/go-sluggable/internal/peers"
	"github.com/goliatone/go-sluggable/pkg/interfaces"
	"github.com/goliatone/go-sluggable/pkg/testsupport"
)

type page struct {
	bun.BaseModel `bun:"table:pages"`

	ID        string     `bun:",pk"`
	Tenant    string     `bun:"tenant"`
	Slug      string     `bun:"slug"`
	DeletedAt *time.Time `bun:"deleted_at,nullzero"`
}

func seedPages(t *testing.T, db *bun.DB, pages ...*page) {
	t.Helper()
	for _, p := range pages {
		if _, err := db.NewInsert().Model(p).Exec(context.Background()); err != nil {
			t.Fatalf("insert %s: %v", p.ID, err)
		}
	}
}

func slugsOf(peers []interfaces.SlugPeer) []string {
	out := make([]string, len(peers))
	for i, p := range peers {
		out[i] = p.Key + "=" + p.Slug
	}
	return out
}

func TestBunFinderMatchesExactAndSeparatedPrefix(t *testing.T) {
	db := testsupport.NewBunSQLiteDB(t, (*page)(nil))
	trashedAt := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	seedPages(t, db,
		&page{ID: "3", Tenant: "a", Slug: "foo-2"},
		&page{ID: "1", Tenant: "a", Slug: "foo"},
		&page{ID: "2", Tenant: "a", Slug: "foobar"},
		&page{ID: "4", Tenant: "b", Slug: "foo-1"},
		&page{ID: "5", Tenant: "a", Slug: "foo-9", DeletedAt: &trashedAt},
		&page{ID: "6", Tenant: "a", Slug: "fooX1"},
	)

	finder := peers.NewBunFinder(db).RegisterModel("page", (*page)(nil))
	query := interfaces.SimilarSlugsQuery{
		TypeName:    "page",
		Attribute:   "slug",
		Slug:        "foo",
		Separator:   "-",
		Constraints: map[string]any{"tenant": "a"},
	}

	got, err := finder.FindSimilarSlugs(context.Background(), query)
	if err != nil {
		t.Fatalf("FindSimilarSlugs: %v", err)
	}
	want := []string{"1=foo", "3=foo-2"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, slugsOf(got))
	}
	for i, s := range slugsOf(got) {
		if s != want[i] {
			t.Fatalf("expected %v, got %v", want, slugsOf(got))
		}
	}

	query.IncludeTrashed = true
	got, err = finder.FindSimilarSlugs(context.Background(), query)
	if err != nil {
		t.Fatalf("FindSimilarSlugs with trashed: %v", err)
	}
	if len(got) != 3 || got[2].Slug != "foo-9" {
		t.Fatalf("expected trashed peer, got %v", slugsOf(got))
	}
}

func TestBunFinderTreatsSeparatorLiterally(t *testing.T) {
	db := testsupport.NewBunSQLiteDB(t, (*page)(nil))
	seedPages(t, db,
		&page{ID: "1", Slug: "foo_1"},
		&page{ID: "2", Slug: "fooa1"},
	)

	finder := peers.NewBunFinder(db).Register("page", peers.Table{Name: "pages"})
	got, err := finder.FindSimilarSlugs(context.Background(), interfaces.SimilarSlugsQuery{
		TypeName:  "page",
		Attribute: "slug",
		Slug:      "foo",
		Separator: "_",
	})
	if err != nil {
		t.Fatalf("FindSimilarSlugs: %v", err)
	}
	if len(got) != 1 || got[0].Slug != "foo_1" {
		t.Fatalf("expected only foo_1, got %v", slugsOf(got))
	}
}

func TestBunFinderMatchesPrefixCaseSensitively(t *testing.T) {
	db := testsupport.NewBunSQLiteDB(t, (*page)(nil))
	seedPages(t, db,
		&page{ID: "1", Slug: "Foo"},
		&page{ID: "2", Slug: "foo-9"},
		&page{ID: "3", Slug: "FOO-BAR"},
		&page{ID: "4", Slug: "foo"},
		&page{ID: "5", Slug: "Foo-2"},
	)

	finder := peers.NewBunFinder(db).Register("page", peers.Table{Name: "pages"})
	got, err := finder.FindSimilarSlugs(context.Background(), interfaces.SimilarSlugsQuery{
		TypeName:  "page",
		Attribute: "slug",
		Slug:      "Foo",
		Separator: "-",
	})
	if err != nil {
		t.Fatalf("FindSimilarSlugs: %v", err)
	}
	want := []string{"1=Foo", "5=Foo-2"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, slugsOf(got))
	}
	for i, s := range slugsOf(got) {
		if s != want[i] {
			t.Fatalf("expected %v, got %v", want, slugsOf(got))
		}
	}
}

func TestBunFinderRejectsUnknownTypesAndColumns(t *testing.T) {
	db := testsupport.NewBunSQLiteDB(t, (*page)(nil))
	finder := peers.NewBunFinder(db)

	_, err := finder.FindSimilarSlugs(context.Background(), interfaces.SimilarSlugsQuery{TypeName: "ghost", Attribute: "slug"})
	if !errors.Is(err, peers.ErrTableUnknown) {
		t.Fatalf("expected ErrTableUnknown, got %v", err)
	}

	finder.Register("page", peers.Table{Name: "pages"})
	_, err = finder.FindSimilarSlugs(context.Background(), interfaces.SimilarSlugsQuery{TypeName: "page", Attribute: "slug; drop"})
	if !errors.Is(err, peers.ErrIdentifierInvalid) {
		t.Fatalf("expected ErrIdentifierInvalid, got %v", err)
	}
}
