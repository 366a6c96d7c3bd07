package slugscmd

import (
	"context"
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-sluggable/internal/articles"
)

func newArticleService(t *testing.T) articles.Service {
	t.Helper()
	svc := articles.NewService(articles.NewMemoryRepository())
	if _, err := svc.Create(context.Background(), articles.CreateArticleInput{Title: "Hello World"}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return svc
}

func TestPreviewSlugHandler(t *testing.T) {
	handler := NewPreviewSlugHandler(newArticleService(t), nil)

	var got string
	if err := handler.Execute(context.Background(), PreviewSlugCommand{Text: "Hello World", Result: &got}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got != "hello-world-1" {
		t.Fatalf("expected hello-world-1, got %q", got)
	}
}

func TestPreviewSlugValidation(t *testing.T) {
	handler := NewPreviewSlugHandler(newArticleService(t), nil)

	cases := map[string]PreviewSlugCommand{
		"blank text":    {Text: "   "},
		"bad attribute": {Text: "x", Attribute: "Slug; DROP"},
		"long env":      {Text: "x", Environment: string(make([]byte, 65))},
	}
	for name, msg := range cases {
		t.Run(name, func(t *testing.T) {
			err := handler.Execute(context.Background(), msg)
			if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestPreviewSlugUnknownAttribute(t *testing.T) {
	handler := NewPreviewSlugHandler(newArticleService(t), nil)
	err := handler.Execute(context.Background(), PreviewSlugCommand{Text: "x", Attribute: "title"})
	if !errors.Is(err, articles.ErrAttributeUnknown) {
		t.Fatalf("expected ErrAttributeUnknown, got %v", err)
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}

func TestResyncSlugsHandler(t *testing.T) {
	handler := NewResyncSlugsHandler(newArticleService(t), nil)

	var result articles.ResyncResult
	if err := handler.Execute(context.Background(), ResyncSlugsCommand{Result: &result}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Scanned != 1 || result.Updated != 0 {
		t.Fatalf("unexpected result %+v", result)
	}
}
