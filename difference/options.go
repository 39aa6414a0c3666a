package difference

import "log/slog"

type options struct {
	logger     *slog.Logger
	properties map[string]string
}

// Option configures an Analyzer.
type Option func(*options)

// WithLogger configures structured logging. Nil disables logging.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithProperties sets initial property values. Invalid entries make New fail.
func WithProperties(props map[string]string) Option {
	return func(o *options) {
		o.properties = props
	}
}
