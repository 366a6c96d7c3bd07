package identity

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDIsStable(t *testing.T) {
	if UUID("sluggable:test") != UUID("  sluggable:test ") {
		t.Fatal("expected trimmed keys to map to the same UUID")
	}
	if UUID("") != uuid.Nil {
		t.Fatal("expected empty key to map to uuid.Nil")
	}
	if UUID("a") == UUID("b") {
		t.Fatal("expected different keys to differ")
	}
}

func TestArticleUUIDScopesByEnvironment(t *testing.T) {
	if ArticleUUID("default", "intro") == ArticleUUID("staging", "intro") {
		t.Fatal("expected environment to be part of the key")
	}
	if ArticleUUID("Default", "intro") != ArticleUUID("default", "intro") {
		t.Fatal("expected environment to be case insensitive")
	}
}

func TestSequenceRepeatsAcrossInstances(t *testing.T) {
	first := Sequence("fixtures")
	second := Sequence("fixtures")

	a1, a2 := first(), first()
	if a1 == a2 {
		t.Fatal("expected sequence values to differ")
	}
	if b1 := second(); b1 != a1 {
		t.Fatalf("expected %s, got %s", a1, b1)
	}
	if other := Sequence("other")(); other == a1 {
		t.Fatal("expected namespaces to differ")
	}
}
