package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// ContextExtractor extracts a log attribute from a context.Context. It
// returns false when the context carries no value for it, so the caller can
// skip emitting the attribute entirely.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

// config collects the options applied by New.
type config struct {
	level           slog.Level
	json            bool
	output          io.Writer
	attrs           []slog.Attr
	handlerOpts     *slog.HandlerOptions
	service         string
	contextKeys     map[string]string
	contextExtract  []ContextExtractor
}

// Option configures a logger built with New.
type Option func(*config)

// WithLevel sets the minimum level logged.
func WithLevel(level slog.Level) Option {
	return func(c *config) { c.level = level }
}

// WithJSONFormatter switches the handler to JSON output.
func WithJSONFormatter() Option {
	return func(c *config) { c.json = true }
}

// WithTextFormatter switches the handler to human-readable text output.
func WithTextFormatter() Option {
	return func(c *config) { c.json = false }
}

// WithOutput sets the destination writer. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(c *config) { c.output = w }
}

// WithAttr attaches static attributes to every record emitted by the logger.
func WithAttr(attrs ...slog.Attr) Option {
	return func(c *config) { c.attrs = append(c.attrs, attrs...) }
}

// WithHandlerOptions overrides the slog.HandlerOptions passed to the handler.
// The Level field is ignored; use WithLevel instead.
func WithHandlerOptions(opts *slog.HandlerOptions) Option {
	return func(c *config) { c.handlerOpts = opts }
}

// WithContextValue registers a plain context key whose value, if present, is
// logged under the given attribute key.
func WithContextValue(attrKey, ctxKey string) Option {
	return func(c *config) {
		if c.contextKeys == nil {
			c.contextKeys = make(map[string]string)
		}
		c.contextKeys[attrKey] = ctxKey
	}
}

// WithContextExtractors registers custom functions for pulling attributes out
// of a context.Context on every *Context log call.
func WithContextExtractors(extractors ...ContextExtractor) Option {
	return func(c *config) { c.contextExtract = append(c.contextExtract, extractors...) }
}

// WithDevelopment configures a text handler at debug level, tagged with the
// given service name.
func WithDevelopment(service string) Option {
	return func(c *config) {
		c.json = false
		c.level = slog.LevelDebug
		c.service = service
	}
}

// WithProduction configures a JSON handler at info level, tagged with the
// given service name.
func WithProduction(service string) Option {
	return func(c *config) {
		c.json = true
		c.level = slog.LevelInfo
		c.service = service
	}
}

// WithStaging configures a JSON handler at info level, tagged with the given
// service name. Identical to WithProduction; kept distinct so callers can
// diverge the two later without an API break.
func WithStaging(service string) Option {
	return func(c *config) {
		c.json = true
		c.level = slog.LevelInfo
		c.service = service
	}
}

// New builds a *slog.Logger from the given options. With no options it
// produces a text logger at info level writing to stdout.
func New(opts ...Option) *slog.Logger {
	c := &config{
		level:  slog.LevelInfo,
		output: os.Stdout,
	}
	for _, opt := range opts {
		opt(c)
	}

	handlerOpts := c.handlerOpts
	if handlerOpts == nil {
		handlerOpts = &slog.HandlerOptions{}
	}
	handlerOpts.Level = c.level

	var handler slog.Handler
	if c.json {
		handler = slog.NewJSONHandler(c.output, handlerOpts)
	} else {
		handler = slog.NewTextHandler(c.output, handlerOpts)
	}

	if len(c.contextKeys) > 0 || len(c.contextExtract) > 0 {
		handler = &contextHandler{
			Handler:     handler,
			contextKeys: c.contextKeys,
			extractors:  c.contextExtract,
		}
	}

	log := slog.New(handler)
	if c.service != "" {
		log = log.With(slog.String("service", c.service))
	}
	if len(c.attrs) > 0 {
		args := make([]any, 0, len(c.attrs))
		for _, a := range c.attrs {
			args = append(args, a)
		}
		log = log.With(args...)
	}
	return log
}

// SetAsDefault installs log as the process-wide default logger, making it
// reachable through the top-level slog.Info/slog.Error/... helpers.
func SetAsDefault(log *slog.Logger) {
	slog.SetDefault(log)
}

// contextHandler decorates a slog.Handler, injecting attributes extracted
// from the record's context on every Handle call.
type contextHandler struct {
	slog.Handler
	contextKeys map[string]string
	extractors  []ContextExtractor
}

func (h *contextHandler) Handle(ctx context.Context, r slog.Record) error {
	for attrKey, ctxKey := range h.contextKeys {
		if v := ctx.Value(ctxKey); v != nil {
			r.AddAttrs(slog.Any(attrKey, v))
		}
	}
	for _, extract := range h.extractors {
		if attr, ok := extract(ctx); ok {
			r.AddAttrs(attr)
		}
	}
	return h.Handler.Handle(ctx, r)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{
		Handler:     h.Handler.WithAttrs(attrs),
		contextKeys: h.contextKeys,
		extractors:  h.extractors,
	}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{
		Handler:     h.Handler.WithGroup(name),
		contextKeys: h.contextKeys,
		extractors:  h.extractors,
	}
}
