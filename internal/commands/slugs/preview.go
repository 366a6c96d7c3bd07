package slugscmd

import (
	"context"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-sluggable/internal/articles"
	"github.com/goliatone/go-sluggable/internal/commands"
	"github.com/goliatone/go-sluggable/internal/logging"
	"github.com/goliatone/go-sluggable/pkg/interfaces"
)

const previewSlugMessageType = "sluggable.slugs.preview"

var attributePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// PreviewSlugCommand asks which slug Text would receive in Environment.
// The handler stores the answer in Result when it is non-nil.
type PreviewSlugCommand struct {
	Environment string  `json:"environment,omitempty"`
	Attribute   string  `json:"attribute,omitempty"`
	Text        string  `json:"text"`
	Result      *string `json:"-"`
}

// Type implements command.Message.
func (PreviewSlugCommand) Type() string { return previewSlugMessageType }

// Validate implements command.Message.
func (m PreviewSlugCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Text, validation.By(func(any) error {
			if strings.TrimSpace(m.Text) == "" {
				return validation.NewError("sluggable.slugs.preview.text_required", "text is required")
			}
			return nil
		})),
		validation.Field(&m.Attribute, validation.Match(attributePattern)),
		validation.Field(&m.Environment, validation.Length(0, 64)),
	)
}

// PreviewSlugHandler resolves previews through the article service.
type PreviewSlugHandler struct {
	inner *commands.Handler[PreviewSlugCommand]
}

// NewPreviewSlugHandler constructs a handler wired to service.
func NewPreviewSlugHandler(service articles.Service, logger interfaces.Logger, opts ...commands.HandlerOption[PreviewSlugCommand]) *PreviewSlugHandler {
	if logger == nil {
		logger = logging.NoOp()
	}
	exec := func(ctx context.Context, msg PreviewSlugCommand) error {
		slug, err := service.PreviewSlug(ctx, articles.PreviewSlugInput{
			EnvironmentKey: msg.Environment,
			Attribute:      msg.Attribute,
			Text:           msg.Text,
		})
		if err != nil {
			return err
		}
		if msg.Result != nil {
			*msg.Result = slug
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[PreviewSlugCommand]{
		commands.WithLogger[PreviewSlugCommand](logger),
		commands.WithOperation[PreviewSlugCommand]("slugs.preview"),
		commands.WithMessageFields(func(msg PreviewSlugCommand) map[string]any {
			fields := map[string]any{}
			if msg.Environment != "" {
				fields["environment"] = msg.Environment
			}
			if msg.Attribute != "" {
				fields["attribute"] = msg.Attribute
			}
			return fields
		}),
	}
	return &PreviewSlugHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

// Execute satisfies command.Commander[PreviewSlugCommand].
func (h *PreviewSlugHandler) Execute(ctx context.Context, msg PreviewSlugCommand) error {
	return h.inner.Execute(ctx, msg)
}
