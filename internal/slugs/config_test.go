package slugs_test

import (
	"slices"
	"testing"

	"github.com/goliatone/go-sluggable/internal/slugs"
)

func TestResolverMemoizesDefaults(t *testing.T) {
	loads := 0
	resolver := slugs.NewResolver(func() slugs.Options {
		loads++
		opts := slugs.DefaultOptions()
		opts[slugs.OptionSeparator] = "_"
		return opts
	})

	for range 3 {
		if cfg := resolver.Resolve(nil); cfg.Separator != "_" {
			t.Fatalf("expected loaded separator, got %q", cfg.Separator)
		}
	}
	if loads != 1 {
		t.Fatalf("expected defaults to load once, got %d", loads)
	}

	resolver.Reset()
	resolver.Resolve(nil)
	if loads != 2 {
		t.Fatalf("expected reload after Reset, got %d", loads)
	}
}

func TestResolverDefaultsAreCopies(t *testing.T) {
	resolver := slugs.NewResolver(nil)
	defaults := resolver.Defaults()
	defaults[slugs.OptionUnique] = false

	if cfg := resolver.Resolve(nil); !cfg.Unique {
		t.Fatal("expected mutation of the returned defaults not to leak")
	}
}

func TestResolverMergesOverrides(t *testing.T) {
	resolver := slugs.NewResolver(nil)
	cfg := resolver.Resolve(slugs.Options{
		slugs.OptionSource:    []any{"title", "author.name"},
		slugs.OptionMaxLength: 12.0,
		slugs.OptionOnUpdate:  true,
	})

	if !slices.Equal(cfg.Source, []string{"title", "author.name"}) {
		t.Fatalf("unexpected source %v", cfg.Source)
	}
	if cfg.MaxLength != 12 || !cfg.OnUpdate || !cfg.Unique || cfg.Separator != "-" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if invalid := cfg.InvalidOptions(); len(invalid) != 0 {
		t.Fatalf("expected no invalid options, got %v", invalid)
	}
}

func TestResolverFlagsUndecodableOptions(t *testing.T) {
	cfg := slugs.NewResolver(nil).Resolve(slugs.Options{
		slugs.OptionSource:    42,
		slugs.OptionMaxLength: 2.5,
		slugs.OptionUnique:    "yes",
	})
	want := []string{slugs.OptionSource, slugs.OptionMaxLength, slugs.OptionUnique}
	if got := cfg.InvalidOptions(); !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestResolverTreatsNegativeMaxLengthAsUnset(t *testing.T) {
	cfg := slugs.NewResolver(nil).Resolve(slugs.Options{slugs.OptionMaxLength: -3})
	if cfg.MaxLength != 0 {
		t.Fatalf("expected 0, got %d", cfg.MaxLength)
	}
}
