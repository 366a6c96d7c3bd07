package slugs

import (
	"slices"

	"github.com/goliatone/go-sluggable/pkg/interfaces"
)

// validateReserved bumps a slug that matches a reserved word by appending
// separator+"1". The bumped value is not checked again.
func validateReserved(record interfaces.SlugRecord, slug string, cfg FieldConfig, attribute string) (string, error) {
	if cfg.Reserved == nil {
		return slug, nil
	}

	reserved := cfg.Reserved
	switch fn := reserved.(type) {
	case ReservedFunc:
		reserved = fn(record)
	case func(interfaces.SlugRecord) []string:
		reserved = fn(record)
	case func(interfaces.SlugRecord) any:
		reserved = fn(record)
	}

	list, ok := reservedList(reserved)
	if !ok {
		return "", newConfigError(record.SlugTypeName(), attribute, OptionReserved, ErrReservedInvalid)
	}
	if slices.Contains(list, slug) {
		return slug + cfg.Separator + "1", nil
	}
	return slug, nil
}

func reservedList(value any) ([]string, bool) {
	switch v := value.(type) {
	case nil:
		return nil, true
	case []string:
		return v, true
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}
