package dataprep

import (
	"log/slog"

	"github.com/askiada/go-dataprep/pkg/dataprep/model"
)

type Option func(r *Runner)

// WithLogger sets the logger receiving the stage status messages.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithRunOptions attaches options observing every stage, such as a measure or a drawer.
func WithRunOptions(opts ...model.RunOption) Option {
	return func(r *Runner) {
		r.opts = append(r.opts, opts...)
	}
}
