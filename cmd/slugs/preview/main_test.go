package main

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/goliatone/go-sluggable/cmd/slugs/internal/bootstrap"
	"github.com/goliatone/go-sluggable/internal/logging/console"
)

func quietBuilder(t *testing.T, captured *bootstrap.Options) {
	t.Helper()
	original := moduleBuilder
	t.Cleanup(func() { moduleBuilder = original })
	moduleBuilder = func(opts bootstrap.Options) (*bootstrap.Module, error) {
		if captured != nil {
			*captured = opts
		}
		opts.LoggerProvider = console.NewProvider(console.Options{Writer: io.Discard})
		return original(opts)
	}
}

func TestRunPreviewUsesCommandHandler(t *testing.T) {
	var captured bootstrap.Options
	quietBuilder(t, &captured)

	dsn := "file:slugs_preview_cli?mode=memory&cache=shared"
	var out bytes.Buffer
	err := runPreview([]string{
		"-dsn", dsn,
		"-attribute", "handle",
		"-text", "Release Notes 2024",
	}, &out)
	if err != nil {
		t.Fatalf("runPreview returned error: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "release_notes_2024" {
		t.Fatalf("expected release_notes_2024, got %q", got)
	}
	if captured.DSN != dsn {
		t.Fatalf("expected dsn flag to reach the builder, got %q", captured.DSN)
	}
}

func TestRunPreviewBumpsReservedWords(t *testing.T) {
	quietBuilder(t, nil)

	var out bytes.Buffer
	if err := runPreview([]string{"-dsn", "file:slugs_preview_reserved?mode=memory&cache=shared", "-text", "New"}, &out); err != nil {
		t.Fatalf("runPreview returned error: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "new-1" {
		t.Fatalf("expected new-1, got %q", got)
	}
}

func TestRunPreviewRejectsBlankText(t *testing.T) {
	quietBuilder(t, nil)

	err := runPreview([]string{"-dsn", "file:slugs_preview_blank?mode=memory&cache=shared", "-text", "  "}, io.Discard)
	if err == nil || !strings.Contains(err.Error(), "execute preview command") {
		t.Fatalf("expected validation failure, got %v", err)
	}
}
