package ravel

// Option configures a Store at construction
type Option[S any] func(*Store[S])

// WithQueueSize sets the change queue buffer size
func WithQueueSize[S any](n int) Option[S] {
	return func(s *Store[S]) {
		if n > 0 {
			s.queue = make(chan Change, n)
		}
	}
}

// WithRunner registers an effect runner. Runners are invoked for every
// committed change.
func WithRunner[S any](r EffectRunner[S]) Option[S] {
	return func(s *Store[S]) {
		if r != nil {
			s.runners = append(s.runners, r)
		}
	}
}

// WithRecorder sets the diagnostics sink. Without it commits are not
// recorded at all.
func WithRecorder[S any](r Recorder) Option[S] {
	return func(s *Store[S]) {
		s.rec = r
	}
}

// WithName sets the diagnostic name used in recorded entries
func WithName[S any](name string) Option[S] {
	return func(s *Store[S]) {
		s.name = name
	}
}
