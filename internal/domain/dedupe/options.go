package dedupe

// Option applies a configuration option to the seen set.
type Option func(*seenSet)

// WithMaxSize bounds the number of remembered ids; the oldest is evicted
// first. Zero or negative means unbounded.
func WithMaxSize(maxSize int) Option {
	return func(d *seenSet) {
		d.maxSize = maxSize
	}
}
