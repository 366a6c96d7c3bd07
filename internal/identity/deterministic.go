package identity

import (
	"strconv"
	"strings"
	"sync/atomic"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// ArticleUUID derives the ID of an article imported under key in environment.
func ArticleUUID(environment, key string) uuid.UUID {
	return UUID("sluggable:article:" + strings.ToLower(strings.TrimSpace(environment)) + ":" + strings.TrimSpace(key))
}

// Sequence returns a generator yielding UUID(namespace:1), UUID(namespace:2)...
// Two sequences over the same namespace produce the same IDs in the same order.
func Sequence(namespace string) func() uuid.UUID {
	prefix := "sluggable:seq:" + strings.TrimSpace(namespace) + ":"
	var counter atomic.Uint64
	return func() uuid.UUID {
		return UUID(prefix + strconv.FormatUint(counter.Add(1), 10))
	}
}
