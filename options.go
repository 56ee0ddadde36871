package mdhtml

import "log/slog"

// DefaultMaxDepth is the container nesting limit used when WithMaxDepth is
// not given.
const DefaultMaxDepth = 64

// Option configures parsing.
type Option func(*config)

type config struct {
	maxDepth    int
	logger      *slog.Logger
	inline      InlineProcessor
	frontMatter bool
}

func newConfig(opts []Option) *config {
	cfg := &config{
		maxDepth: DefaultMaxDepth,
		logger:   slog.New(slog.DiscardHandler),
		inline:   LiteralInlines,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}

// WithMaxDepth sets how deeply block quotes and list items may nest before
// parsing fails with ErrNestingTooDeep. Values below 1 are ignored.
func WithMaxDepth(depth int) Option {
	return func(cfg *config) {
		if depth > 0 {
			cfg.maxDepth = depth
		}
	}
}

// WithLogger routes parser diagnostics to logger. Nil keeps the discarding
// default.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithInlineProcessor replaces LiteralInlines.
func WithInlineProcessor(p InlineProcessor) Option {
	return func(cfg *config) {
		if p != nil {
			cfg.inline = p
		}
	}
}

// WithFrontMatter enables stripping and decoding of a leading front matter
// block into Context.FrontMatter.
func WithFrontMatter(enabled bool) Option {
	return func(cfg *config) {
		cfg.frontMatter = enabled
	}
}
