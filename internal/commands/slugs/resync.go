package slugscmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-sluggable/internal/articles"
	"github.com/goliatone/go-sluggable/internal/commands"
	"github.com/goliatone/go-sluggable/internal/logging"
	"github.com/goliatone/go-sluggable/pkg/interfaces"
)

const resyncSlugsMessageType = "sluggable.slugs.resync"

// ResyncSlugsCommand regenerates every live article's slugs, optionally in a
// single environment.
type ResyncSlugsCommand struct {
	Environment string                 `json:"environment,omitempty"`
	Result      *articles.ResyncResult `json:"-"`
}

// Type implements command.Message.
func (ResyncSlugsCommand) Type() string { return resyncSlugsMessageType }

// Validate implements command.Message.
func (m ResyncSlugsCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Environment, validation.Length(0, 64)),
	)
}

// ResyncSlugsHandler runs resyncs through the article service.
type ResyncSlugsHandler struct {
	inner *commands.Handler[ResyncSlugsCommand]
}

// NewResyncSlugsHandler constructs a handler wired to service. Resyncs scan
// the whole table, so the default timeout is disabled.
func NewResyncSlugsHandler(service articles.Service, logger interfaces.Logger, opts ...commands.HandlerOption[ResyncSlugsCommand]) *ResyncSlugsHandler {
	if logger == nil {
		logger = logging.NoOp()
	}
	exec := func(ctx context.Context, msg ResyncSlugsCommand) error {
		result, err := service.Resync(ctx, msg.Environment)
		if msg.Result != nil {
			*msg.Result = result
		}
		return err
	}

	handlerOpts := []commands.HandlerOption[ResyncSlugsCommand]{
		commands.WithLogger[ResyncSlugsCommand](logger),
		commands.WithOperation[ResyncSlugsCommand]("slugs.resync"),
		commands.WithTimeout[ResyncSlugsCommand](0),
	}
	return &ResyncSlugsHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

// Execute satisfies command.Commander[ResyncSlugsCommand].
func (h *ResyncSlugsHandler) Execute(ctx context.Context, msg ResyncSlugsCommand) error {
	return h.inner.Execute(ctx, msg)
}
