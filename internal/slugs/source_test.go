package slugs_test

import (
	"testing"

	"github.com/goliatone/go-sluggable/internal/slugs"
)

type author struct {
	Name    string `json:"display_name"`
	Twitter *string
}

type article struct {
	Title  string
	Author *author
	Tags   []string
}

func TestLookupWalksNestedValues(t *testing.T) {
	handle := "@gopher"
	target := map[string]any{
		"article": article{
			Title:  "Nested",
			Author: &author{Name: "Ada", Twitter: &handle},
			Tags:   []string{"go", "slugs"},
		},
		"labels": map[string]string{"en": "English"},
	}

	cases := map[string]any{
		"article.Title":               "Nested",
		"article.title":               "Nested",
		"article.author.display_name": "Ada",
		"article.Tags.1":              "slugs",
		"labels.en":                   "English",
		"article.Tags.9":              nil,
		"article.missing":             nil,
		"":                            nil,
	}
	for path, want := range cases {
		if got := slugs.Lookup(target, path); got != want {
			t.Fatalf("Lookup(%q): expected %v, got %v", path, want, got)
		}
	}

	if got := slugs.Lookup(target, "article.Author.Twitter"); got != &handle {
		t.Fatalf("expected pointer to handle, got %v", got)
	}
}

func TestLookupReadsRecordAttributes(t *testing.T) {
	p := newPost().with("meta", map[string]any{"seo": map[string]any{"title": "SEO"}})
	if got := slugs.Lookup(p, "meta.seo.title"); got != "SEO" {
		t.Fatalf("expected SEO, got %v", got)
	}
}

func TestLookupStopsAtNilPointer(t *testing.T) {
	target := article{Title: "x"}
	if got := slugs.Lookup(target, "Author.display_name"); got != nil {
		t.Fatalf("expected nil through nil pointer, got %v", got)
	}
}
