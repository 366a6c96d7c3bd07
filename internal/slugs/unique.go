package slugs

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-sluggable/pkg/interfaces"
)

func (s *Service) makeUnique(ctx context.Context, record interfaces.SlugRecord, slug string, cfg FieldConfig, attribute string) (string, error) {
	if !cfg.Unique {
		return slug, nil
	}
	if s.finder == nil {
		return "", ErrPeerFinderRequired
	}

	peers, err := s.similarSlugs(ctx, record, slug, cfg, attribute)
	if err != nil {
		return "", err
	}

	if peers.Len() == 0 || !peers.Contains(slug) {
		return slug, nil
	}

	key := record.SlugKey()
	if current, ok := peers.Get(key); ok && key != "" {
		if current == slug || strings.HasPrefix(current, slug) {
			return current, nil
		}
	}

	var suffix string
	switch fn := cfg.UniqueSuffix.(type) {
	case nil:
		suffix = DefaultSuffix(slug, cfg.Separator, peers, key)
	case SuffixFunc:
		suffix = fn(slug, cfg.Separator, peers)
	case func(string, string, PeerSet) string:
		suffix = fn(slug, cfg.Separator, peers)
	default:
		return "", newConfigError(record.SlugTypeName(), attribute, OptionUniqueSuffix, ErrUniqueSuffixNotCallable)
	}

	s.logger.Debug("slugs.unique.collision",
		"type", record.SlugTypeName(),
		"attribute", attribute,
		"candidate", slug,
		"peers", peers.Len(),
		"suffix", suffix,
	)
	return slug + cfg.Separator + suffix, nil
}

func (s *Service) similarSlugs(ctx context.Context, record interfaces.SlugRecord, slug string, cfg FieldConfig, attribute string) (PeerSet, error) {
	query := interfaces.SimilarSlugsQuery{
		Record:         record,
		TypeName:       record.SlugTypeName(),
		Attribute:      attribute,
		Slug:           slug,
		Separator:      cfg.Separator,
		IncludeTrashed: cfg.IncludeTrashed && supportsSoftDelete(record),
	}
	if scoper, ok := record.(interfaces.UniqueSlugScoper); ok {
		query.Constraints = scoper.UniqueSlugConstraints(attribute, slug)
	}

	peers, err := s.finder.FindSimilarSlugs(ctx, query)
	if err != nil {
		return PeerSet{}, fmt.Errorf("slugs: find similar %s.%s: %w", query.TypeName, attribute, err)
	}
	return NewPeerSet(peers), nil
}

func supportsSoftDelete(record interfaces.SlugRecord) bool {
	if sd, ok := record.(interfaces.SoftDeletable); ok {
		return sd.SupportsSoftDelete()
	}
	return false
}

// DefaultSuffix returns the next numeric suffix for slug. When the first peer
// holding slug is the current record, the last separator segment of slug is
// returned instead. Remainders that do not start with an integer count as 0,
// so unrelated longer slugs sharing the prefix never raise the counter.
func DefaultSuffix(slug, separator string, peers PeerSet, currentKey string) string {
	if key, ok := peers.Search(slug); ok && currentKey != "" && key == currentKey {
		segments := strings.Split(slug, separator)
		return segments[len(segments)-1]
	}

	offset := len(slug + separator)
	highest := 0
	for i, value := range peers.Values() {
		remainder := ""
		if offset < len(value) {
			remainder = value[offset:]
		}
		n := leadingInt(remainder)
		if i == 0 || n > highest {
			highest = n
		}
	}
	return strconv.Itoa(highest + 1)
}

// leadingInt parses an optional sign and the leading run of digits, after
// leading whitespace. Anything unparsable is 0.
func leadingInt(value string) int {
	value = strings.TrimLeft(value, " \t\n\r\v\f")
	end := 0
	if end < len(value) && (value[end] == '+' || value[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(value) && value[end] >= '0' && value[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0
	}
	n, err := strconv.Atoi(value[:end])
	if err != nil {
		return 0
	}
	return n
}
