package ceremony

import "log/slog"

type Options struct {
	Logger *slog.Logger
}

type Option func(*Options)

func WithLogger(logger *slog.Logger) Option {
	return func(opts *Options) {
		opts.Logger = logger
	}
}

func newOptions(opts ...Option) *Options {
	oo := &Options{
		Logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(oo)
	}

	return oo
}
