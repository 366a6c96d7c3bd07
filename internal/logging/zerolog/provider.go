package zerolog

import (
	"context"
	"io"
	"maps"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-sluggable/internal/logging"
	"github.com/goliatone/go-sluggable/pkg/interfaces"
)

// Config selects the zerolog level and output.
type Config struct {
	Level   string
	Pretty  bool
	Writer  io.Writer
	NoClock bool
}

// Provider hands out zerolog loggers tagged with the module name.
type Provider struct {
	root zerolog.Logger
}

var _ interfaces.LoggerProvider = (*Provider)(nil)

// NewProvider builds the root zerolog logger. Unknown levels fall back to info.
func NewProvider(cfg Config) *Provider {
	out := cfg.Writer
	if out == nil {
		out = os.Stderr
	}
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: out}
	}

	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level)))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	ctx := zerolog.New(out).Level(level).With()
	if !cfg.NoClock {
		ctx = ctx.Timestamp()
	}
	return &Provider{root: ctx.Logger()}
}

func (p *Provider) GetLogger(name string) interfaces.Logger {
	if p == nil {
		return logging.NoOp()
	}
	logger := p.root
	if name = strings.TrimSpace(name); name != "" {
		logger = logger.With().Str("logger", name).Logger()
	}
	return &adapter{inner: logger}
}

type adapter struct {
	inner zerolog.Logger
	ctx   context.Context
}

var _ interfaces.FieldsLogger = (*adapter)(nil)

func (a *adapter) Trace(msg string, args ...any) { a.emit(zerolog.TraceLevel, msg, args) }
func (a *adapter) Debug(msg string, args ...any) { a.emit(zerolog.DebugLevel, msg, args) }
func (a *adapter) Info(msg string, args ...any)  { a.emit(zerolog.InfoLevel, msg, args) }
func (a *adapter) Warn(msg string, args ...any)  { a.emit(zerolog.WarnLevel, msg, args) }
func (a *adapter) Error(msg string, args ...any) { a.emit(zerolog.ErrorLevel, msg, args) }

// Fatal logs at fatal level without exiting the process.
func (a *adapter) Fatal(msg string, args ...any) { a.emit(zerolog.FatalLevel, msg, args) }

func (a *adapter) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return a
	}
	return &adapter{inner: a.inner.With().Fields(maps.Clone(fields)).Logger(), ctx: a.ctx}
}

func (a *adapter) WithContext(ctx context.Context) interfaces.Logger {
	return &adapter{inner: a.inner, ctx: ctx}
}

func (a *adapter) emit(level zerolog.Level, msg string, args []any) {
	event := a.inner.WithLevel(level)
	if event == nil {
		return
	}
	if fields := logging.ContextFields(a.ctx); len(fields) > 0 {
		event = event.Fields(fields)
	}
	if len(args) > 0 {
		event = event.Fields(args)
	}
	event.Msg(msg)
}
