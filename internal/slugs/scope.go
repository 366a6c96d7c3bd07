package slugs

import "github.com/goliatone/go-sluggable/pkg/interfaces"

// SlugKeyName returns the attribute holding the record's primary slug: the
// SlugKeyNamer override when present, otherwise the first declared field.
func SlugKeyName(record interfaces.SlugRecord) string {
	if record == nil {
		return ""
	}
	if namer, ok := record.(interfaces.SlugKeyNamer); ok {
		if name := namer.SlugKeyName(); name != "" {
			return name
		}
	}
	fields := record.Sluggable()
	if len(fields) == 0 {
		return ""
	}
	return fields[0].Attribute
}

// SlugKey returns the record's primary slug value.
func SlugKey(record interfaces.SlugRecord) string {
	name := SlugKeyName(record)
	if name == "" {
		return ""
	}
	return stringValue(record.GetAttribute(name))
}
