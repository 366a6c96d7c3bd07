package slugs

import (
	"slices"
	"strings"
	"sync"

	goslug "github.com/goliatone/go-slug"
	gosimple "github.com/gosimple/slug"

	"github.com/goliatone/go-sluggable/pkg/interfaces"
)

// Engine aliases the slug engine contract.
type Engine = interfaces.SlugEngine

// EngineFunc adapts a function into an Engine.
type EngineFunc func(text, separator string) string

// Slugify implements Engine.
func (f EngineFunc) Slugify(text, separator string) string {
	return f(text, separator)
}

// TransliteratingEngine slugifies text with gosimple/slug, which transliterates
// unicode input to ASCII. Replacements run before transliteration. Record types
// implementing EngineCustomizer receive a fresh instance per attribute and may
// mutate its fields.
type TransliteratingEngine struct {
	Language     string
	Replacements map[string]string
}

// EngineOption configures a TransliteratingEngine.
type EngineOption func(*TransliteratingEngine)

// WithLanguage selects the gosimple/slug substitution language (e.g. "de").
func WithLanguage(lang string) EngineOption {
	return func(e *TransliteratingEngine) {
		e.Language = strings.TrimSpace(lang)
	}
}

// WithReplacements registers literal substitutions applied before slugifying.
func WithReplacements(replacements map[string]string) EngineOption {
	return func(e *TransliteratingEngine) {
		if len(replacements) == 0 {
			return
		}
		if e.Replacements == nil {
			e.Replacements = make(map[string]string, len(replacements))
		}
		for from, to := range replacements {
			e.Replacements[from] = to
		}
	}
}

// NewTransliteratingEngine constructs the default engine.
func NewTransliteratingEngine(opts ...EngineOption) *TransliteratingEngine {
	e := &TransliteratingEngine{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Slugify implements Engine.
func (e *TransliteratingEngine) Slugify(text, separator string) string {
	if len(e.Replacements) > 0 {
		text = applyReplacements(text, e.Replacements)
	}
	var out string
	if e.Language != "" {
		out = gosimple.MakeLang(text, e.Language)
	} else {
		out = gosimple.Make(text)
	}
	return swapSeparator(out, separator)
}

// NormalizerEngine slugifies text with a go-slug normalizer.
type NormalizerEngine struct {
	normalizer goslug.Normalizer
}

// NewNormalizerEngine wraps the default go-slug normalizer.
func NewNormalizerEngine() *NormalizerEngine {
	return &NormalizerEngine{normalizer: goslug.Default()}
}

// NewNormalizerEngineWith wraps the provided go-slug normalizer.
func NewNormalizerEngineWith(normalizer goslug.Normalizer) *NormalizerEngine {
	return &NormalizerEngine{normalizer: normalizer}
}

// Slugify implements Engine. Normalization failures produce an empty slug.
func (e *NormalizerEngine) Slugify(text, separator string) string {
	out, err := e.normalizer.Normalize(text)
	if err != nil {
		return ""
	}
	return swapSeparator(out, separator)
}

func swapSeparator(value, separator string) string {
	if separator == "-" {
		return value
	}
	return strings.ReplaceAll(value, "-", separator)
}

// applyReplacements substitutes longer keys first so overlapping keys resolve
// deterministically.
func applyReplacements(text string, replacements map[string]string) string {
	keys := make([]string, 0, len(replacements))
	for from := range replacements {
		if from != "" {
			keys = append(keys, from)
		}
	}
	slices.SortFunc(keys, func(a, b string) int {
		if len(a) != len(b) {
			return len(b) - len(a)
		}
		return strings.Compare(a, b)
	})
	pairs := make([]string, 0, len(keys)*2)
	for _, from := range keys {
		pairs = append(pairs, from, " "+replacements[from]+" ")
	}
	return strings.NewReplacer(pairs...).Replace(text)
}

// EngineFactory creates the base engine for a (type, attribute) pair.
type EngineFactory func(typeName, attribute string) Engine

// DefaultEngineFactory returns a fresh TransliteratingEngine per pair.
func DefaultEngineFactory(string, string) Engine {
	return NewTransliteratingEngine()
}

type engineKey struct {
	typeName  string
	attribute string
}

// EngineRegistry memoizes one engine per (record type, attribute).
type EngineRegistry struct {
	mu      sync.Mutex
	factory EngineFactory
	engines map[engineKey]Engine
}

// NewEngineRegistry constructs a registry. A nil factory uses
// DefaultEngineFactory.
func NewEngineRegistry(factory EngineFactory) *EngineRegistry {
	if factory == nil {
		factory = DefaultEngineFactory
	}
	return &EngineRegistry{
		factory: factory,
		engines: make(map[engineKey]Engine),
	}
}

// Engine returns the memoized engine for the record's type and attribute,
// creating and customizing it on first use.
func (r *EngineRegistry) Engine(record interfaces.SlugRecord, attribute string) Engine {
	key := engineKey{typeName: record.SlugTypeName(), attribute: attribute}

	r.mu.Lock()
	defer r.mu.Unlock()

	if engine, ok := r.engines[key]; ok {
		return engine
	}
	engine := r.factory(key.typeName, attribute)
	if engine == nil {
		engine = NewTransliteratingEngine()
	}
	if customizer, ok := record.(interfaces.EngineCustomizer); ok {
		if customized := customizer.CustomizeSlugEngine(engine, attribute); customized != nil {
			engine = customized
		}
	}
	r.engines[key] = engine
	return engine
}

// Len reports how many engines are memoized.
func (r *EngineRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.engines)
}

// Reset drops every memoized engine.
func (r *EngineRegistry) Reset() {
	r.mu.Lock()
	r.engines = make(map[engineKey]Engine)
	r.mu.Unlock()
}
