package keywords

import "log/slog"

// Option configures an Extractor.
type Option func(*Extractor)

// WithWindowSize sets the co-occurrence window. Tokens at most size-1
// positions apart co-occur; a size below 2 counts no pairs.
func WithWindowSize(size int) Option {
	return func(e *Extractor) { e.window = size }
}

// WithDamping sets the probability of following an edge.
func WithDamping(d float64) Option {
	return func(e *Extractor) { e.rank.Damping = d }
}

// WithMinDiff sets the convergence threshold on the step-to-step weight sum.
func WithMinDiff(diff float64) Option {
	return func(e *Extractor) { e.rank.MinDiff = diff }
}

// WithMaxSteps caps the number of ranking iterations.
func WithMaxSteps(steps int) Option {
	return func(e *Extractor) { e.rank.MaxSteps = steps }
}

// WithCandidateTags replaces the accepted part-of-speech tags.
func WithCandidateTags(tags ...string) Option {
	return func(e *Extractor) { e.tags = toTagSet(tags) }
}

// WithStopTokens replaces the stop tokens.
func WithStopTokens(tokens ...Token) Option {
	return func(e *Extractor) { e.stops = toStopSet(tokens) }
}

// WithLogger routes extraction and per-step ranking diagnostics to l at
// debug level.
func WithLogger(l *slog.Logger) Option {
	return func(e *Extractor) {
		e.logger = l
		e.rank.Logger = l
	}
}
