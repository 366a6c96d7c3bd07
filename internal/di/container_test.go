package di

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	publicarticles "github.com/goliatone/go-sluggable/articles"
	"github.com/goliatone/go-sluggable/internal/articles"
	slugscmd "github.com/goliatone/go-sluggable/internal/commands/slugs"
	"github.com/goliatone/go-sluggable/internal/identity"
	"github.com/goliatone/go-sluggable/internal/logging/console"
	"github.com/goliatone/go-sluggable/internal/logging/gologger"
	zerologprovider "github.com/goliatone/go-sluggable/internal/logging/zerolog"
	"github.com/goliatone/go-sluggable/internal/runtimeconfig"
	"github.com/goliatone/go-sluggable/internal/slugs"
	"github.com/goliatone/go-sluggable/pkg/interfaces"
	"github.com/goliatone/go-sluggable/pkg/testsupport"
)

func TestNewContainerDefaultsToMemoryAndConsole(t *testing.T) {
	var buf bytes.Buffer
	container, err := NewContainer(runtimeconfig.DefaultConfig(), WithLogWriter(&buf))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	if container.LoggerProvider() == nil {
		t.Fatal("expected logger provider")
	}
	if _, ok := container.LoggerProvider().(*gologger.Provider); ok {
		t.Fatal("expected console provider by default")
	}

	svc := container.ArticleService()
	first, err := svc.Create(context.Background(), articles.CreateArticleInput{Title: "Hello World"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := svc.Create(context.Background(), articles.CreateArticleInput{Title: "Hello World"})
	if err != nil {
		t.Fatalf("create second: %v", err)
	}
	if first.Slug != "hello-world" || second.Slug != "hello-world-1" {
		t.Fatalf("unexpected slugs %q %q", first.Slug, second.Slug)
	}
}

func TestNewContainerRejectsInvalidConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Slugs.Separator = ""

	if _, err := NewContainer(cfg); !errors.Is(err, runtimeconfig.ErrSeparatorRequired) {
		t.Fatalf("expected ErrSeparatorRequired, got %v", err)
	}
}

func TestConfigureLoggerProviderUsesGoLoggerAdapter(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Level = "debug"
	cfg.Logging.Format = "json"

	container, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	provider, ok := container.loggerProvider.(*gologger.Provider)
	if !ok {
		t.Fatalf("expected go-logger provider, got %T", container.loggerProvider)
	}
	if provider.GetLogger("sluggable.test") == nil {
		t.Fatal("expected logger from go-logger provider, got nil")
	}
}

func TestConfigureLoggerProviderUsesZerolog(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Provider = "zerolog"
	cfg.Logging.Level = "debug"

	var buf bytes.Buffer
	container, err := NewContainer(cfg, WithLogWriter(&buf))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if _, ok := container.loggerProvider.(*zerologprovider.Provider); !ok {
		t.Fatalf("expected zerolog provider, got %T", container.loggerProvider)
	}

	if _, err := container.ArticleService().Create(context.Background(), articles.CreateArticleInput{Title: "Logged"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	found := false
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("expected JSON log line, got %q: %v", line, err)
		}
		if entry["module"] == "sluggable.slugs" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected slug service debug entries, got %q", buf.String())
	}
}

func TestWithLoggerProviderOverridesConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Provider = "gologger"

	var buf bytes.Buffer
	provider := console.NewProvider(console.Options{Writer: &buf})
	container, err := NewContainer(cfg, WithLoggerProvider(provider))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if container.LoggerProvider() != provider {
		t.Fatalf("expected injected provider, got %T", container.LoggerProvider())
	}
}

func TestEngineConfigSelectsEngine(t *testing.T) {
	record := &publicarticles.Article{}

	cfg := runtimeconfig.DefaultConfig()
	cfg.Engine.Language = "de"
	container, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	engine, ok := container.SlugService().Engines().Engine(record, "slug").(*slugs.TransliteratingEngine)
	if !ok {
		t.Fatalf("expected transliterating engine")
	}
	if engine.Language != "de" {
		t.Fatalf("expected language de, got %q", engine.Language)
	}

	cfg.Engine.Name = "normalizer"
	container, err = NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if _, ok := container.SlugService().Engines().Engine(record, "slug").(*slugs.NormalizerEngine); !ok {
		t.Fatalf("expected normalizer engine")
	}
}

func TestSlugDefaultsFlowIntoResolver(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Slugs.Separator = "."
	cfg.Slugs.Reserved = []string{"about"}

	container, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	resolved := container.SlugService().Resolver().Resolve(nil)
	if resolved.Separator != "." {
		t.Fatalf("expected separator '.', got %q", resolved.Separator)
	}

	var preview string
	err = container.PreviewHandler().Execute(context.Background(), slugscmd.PreviewSlugCommand{
		Attribute: "handle",
		Text:      "About Us",
		Result:    &preview,
	})
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if preview != "about_us" {
		t.Fatalf("expected field separator to win, got %q", preview)
	}
}

type recordingFinder struct {
	queries []interfaces.SimilarSlugsQuery
}

func (f *recordingFinder) FindSimilarSlugs(_ context.Context, query interfaces.SimilarSlugsQuery) ([]interfaces.SlugPeer, error) {
	f.queries = append(f.queries, query)
	return []interfaces.SlugPeer{{Key: "external", Slug: query.Slug}}, nil
}

func TestWithPeerFinderOverridesRepositoryLookups(t *testing.T) {
	finder := &recordingFinder{}
	container, err := NewContainer(runtimeconfig.DefaultConfig(), WithPeerFinder(finder))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	article, err := container.ArticleService().Create(context.Background(), articles.CreateArticleInput{Title: "Shared"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if article.Slug != "shared-1" {
		t.Fatalf("expected external peer to force a suffix, got %q", article.Slug)
	}
	if len(finder.queries) == 0 {
		t.Fatal("expected the injected finder to be queried")
	}
}

func TestWithBunDBUsesCachedRepository(t *testing.T) {
	db := testsupport.NewBunSQLiteDB(t, (*publicarticles.Article)(nil))

	cfg := runtimeconfig.DefaultConfig()
	cfg.Cache.Enabled = true
	cfg.Cache.TTL = time.Minute

	container, err := NewContainer(cfg, WithBunDB(db))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if _, ok := container.ArticleRepository().(*articles.BunArticleRepository); !ok {
		t.Fatalf("expected bun repository, got %T", container.ArticleRepository())
	}
	if container.cacheService == nil || container.keySerializer == nil {
		t.Fatal("expected cache service and serializer to be configured")
	}

	var result articles.ResyncResult
	if _, err := container.ArticleService().Create(context.Background(), articles.CreateArticleInput{Title: "Stored"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := container.ResyncHandler().Execute(context.Background(), slugscmd.ResyncSlugsCommand{Result: &result}); err != nil {
		t.Fatalf("resync: %v", err)
	}
	if result.Scanned != 1 {
		t.Fatalf("expected one scanned article, got %+v", result)
	}
}

func TestWithIDGeneratorMakesIDsDeterministic(t *testing.T) {
	create := func() *articles.Article {
		container, err := NewContainer(runtimeconfig.DefaultConfig(), WithIDGenerator(identity.Sequence("di")))
		if err != nil {
			t.Fatalf("NewContainer returned error: %v", err)
		}
		article, err := container.ArticleService().Create(context.Background(), articles.CreateArticleInput{Title: "Same"})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		return article
	}

	first, second := create(), create()
	if first.ID != second.ID {
		t.Fatalf("expected identical IDs, got %s and %s", first.ID, second.ID)
	}
	if first.ID != identity.Sequence("di")() {
		t.Fatalf("expected the first sequence value, got %s", first.ID)
	}
}
