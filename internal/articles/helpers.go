package articles

import (
	"strings"
)

// DefaultEnvironment is used when an input names no environment.
const DefaultEnvironment = "default"

func normalizeEnvironment(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return DefaultEnvironment
	}
	return key
}

func isSlugAttribute(article *Article, attribute string) bool {
	for _, field := range article.Sluggable() {
		if field.Attribute == attribute {
			return true
		}
	}
	return false
}
