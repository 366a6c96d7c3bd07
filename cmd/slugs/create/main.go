package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-sluggable"
	"github.com/goliatone/go-sluggable/articles"
	"github.com/goliatone/go-sluggable/cmd/slugs/internal/bootstrap"
	"github.com/goliatone/go-sluggable/internal/identity"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runCreate(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("slugs create: %v", err)
	}
}

func runCreate(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("slugs-create", flag.ContinueOnError)
	opts := bootstrap.BindFlags(fs)
	environment := fs.String("env", "", "Environment the article belongs to")
	title := fs.String("title", "", "Article title")
	subtitle := fs.String("subtitle", "", "Article subtitle")
	slug := fs.String("slug", "", "Explicit slug (generated when empty)")
	author := fs.String("author", "", "Author name")
	key := fs.String("key", "", "Stable import key; derives a deterministic article ID")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*title) == "" {
		return fmt.Errorf("title is required")
	}

	if strings.TrimSpace(*key) != "" {
		id := identity.ArticleUUID(*environment, *key)
		opts.IDGenerator = func() uuid.UUID { return id }
	}

	module, err := moduleBuilder(*opts)
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Close()

	article, err := module.Module.Articles().Create(context.Background(), sluggable.CreateArticleInput{
		EnvironmentKey: *environment,
		Title:          *title,
		Subtitle:       *subtitle,
		Slug:           *slug,
		Author:         articles.Author{Name: *author},
	})
	if err != nil {
		return fmt.Errorf("create article: %w", err)
	}
	module.Logger.Info("cli.article.created", "id", article.ID.String(), "slug", article.Slug)
	fmt.Fprintf(out, "%s %s %s\n", article.ID, article.Slug, article.Handle)
	return nil
}
