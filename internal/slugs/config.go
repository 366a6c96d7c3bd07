package slugs

import (
	"maps"
	"math"
	"strings"
	"sync"

	"github.com/goliatone/go-sluggable/pkg/interfaces"
)

// Option keys recognised in a slug field configuration.
const (
	OptionSource         = "source"
	OptionSeparator      = "separator"
	OptionMaxLength      = "maxLength"
	OptionMethod         = "method"
	OptionUnique         = "unique"
	OptionUniqueSuffix   = "uniqueSuffix"
	OptionOnUpdate       = "onUpdate"
	OptionReserved       = "reserved"
	OptionIncludeTrashed = "includeTrashed"
)

// DefaultSeparator joins slug words and numeric suffixes.
const DefaultSeparator = "-"

// Options is the raw override mapping for a slug field.
type Options = map[string]any

// MethodFunc replaces the slug engine for a field.
type MethodFunc func(text, separator string) string

// SuffixFunc computes the suffix appended to a colliding slug.
type SuffixFunc func(slug, separator string, peers PeerSet) string

// ReservedFunc returns the reserved slugs for a record.
type ReservedFunc func(record interfaces.SlugRecord) []string

// FieldConfig is a fully resolved slug field configuration. Method,
// UniqueSuffix and Reserved keep their raw values; they are checked when used.
type FieldConfig struct {
	Source         []string
	Separator      string
	MaxLength      int
	Method         any
	Unique         bool
	UniqueSuffix   any
	OnUpdate       bool
	Reserved       any
	IncludeTrashed bool

	invalid []string
}

// InvalidOptions lists the options whose values could not be decoded.
func (c FieldConfig) InvalidOptions() []string {
	if len(c.invalid) == 0 {
		return nil
	}
	return append([]string(nil), c.invalid...)
}

// DefaultOptions returns the built-in defaults.
func DefaultOptions() Options {
	return Options{
		OptionSource:         nil,
		OptionSeparator:      DefaultSeparator,
		OptionMaxLength:      nil,
		OptionMethod:         nil,
		OptionUnique:         true,
		OptionUniqueSuffix:   nil,
		OptionOnUpdate:       false,
		OptionReserved:       nil,
		OptionIncludeTrashed: false,
	}
}

// DefaultsLoader supplies the process-wide default options.
type DefaultsLoader func() Options

// Resolver merges per-field overrides over a memoized defaults snapshot.
type Resolver struct {
	mu       sync.Mutex
	loader   DefaultsLoader
	defaults Options
	loaded   bool
}

// NewResolver constructs a resolver. A nil loader uses DefaultOptions.
func NewResolver(loader DefaultsLoader) *Resolver {
	if loader == nil {
		loader = DefaultOptions
	}
	return &Resolver{loader: loader}
}

// Defaults returns a copy of the memoized defaults, loading them on first use.
func (r *Resolver) Defaults() Options {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.loaded {
		r.defaults = maps.Clone(r.loader())
		if r.defaults == nil {
			r.defaults = Options{}
		}
		r.loaded = true
	}
	return maps.Clone(r.defaults)
}

// Reset drops the memoized defaults so the next call reloads them.
func (r *Resolver) Reset() {
	r.mu.Lock()
	r.defaults = nil
	r.loaded = false
	r.mu.Unlock()
}

// Resolve shallow-merges overrides onto the defaults and decodes the result.
func (r *Resolver) Resolve(overrides Options) FieldConfig {
	merged := r.Defaults()
	maps.Copy(merged, overrides)
	return decodeOptions(merged)
}

func decodeOptions(opts Options) FieldConfig {
	cfg := FieldConfig{
		Method:       opts[OptionMethod],
		UniqueSuffix: opts[OptionUniqueSuffix],
		Reserved:     opts[OptionReserved],
	}

	var ok bool
	if cfg.Source, ok = decodeSource(opts[OptionSource]); !ok {
		cfg.invalid = append(cfg.invalid, OptionSource)
	}
	if cfg.Separator, ok = decodeString(opts[OptionSeparator]); !ok {
		cfg.invalid = append(cfg.invalid, OptionSeparator)
	}
	if cfg.MaxLength, ok = decodeInt(opts[OptionMaxLength]); !ok {
		cfg.invalid = append(cfg.invalid, OptionMaxLength)
	}
	if cfg.Unique, ok = decodeBool(opts[OptionUnique]); !ok {
		cfg.invalid = append(cfg.invalid, OptionUnique)
	}
	if cfg.OnUpdate, ok = decodeBool(opts[OptionOnUpdate]); !ok {
		cfg.invalid = append(cfg.invalid, OptionOnUpdate)
	}
	if cfg.IncludeTrashed, ok = decodeBool(opts[OptionIncludeTrashed]); !ok {
		cfg.invalid = append(cfg.invalid, OptionIncludeTrashed)
	}
	return cfg
}

func decodeSource(value any) ([]string, bool) {
	switch v := value.(type) {
	case nil:
		return nil, true
	case string:
		if strings.TrimSpace(v) == "" {
			return nil, true
		}
		return []string{v}, true
	case []string:
		if len(v) == 0 {
			return nil, true
		}
		return append([]string(nil), v...), true
	case []any:
		if len(v) == 0 {
			return nil, true
		}
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

func decodeString(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", true
	case string:
		return v, true
	default:
		return "", false
	}
}

// decodeInt treats nil and non-positive values as "no limit".
func decodeInt(value any) (int, bool) {
	var n int
	switch v := value.(type) {
	case nil:
		return 0, true
	case int:
		n = v
	case int8:
		n = int(v)
	case int16:
		n = int(v)
	case int32:
		n = int(v)
	case int64:
		n = int(v)
	case uint:
		n = int(v)
	case uint8:
		n = int(v)
	case uint16:
		n = int(v)
	case uint32:
		n = int(v)
	case uint64:
		n = int(v)
	case float32:
		if float64(v) != math.Trunc(float64(v)) {
			return 0, false
		}
		n = int(v)
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		n = int(v)
	default:
		return 0, false
	}
	if n < 0 {
		n = 0
	}
	return n, true
}

func decodeBool(value any) (bool, bool) {
	switch v := value.(type) {
	case nil:
		return false, true
	case bool:
		return v, true
	default:
		return false, false
	}
}
