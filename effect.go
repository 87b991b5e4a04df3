package ravel

import "context"

// EffectRunner reacts to committed changes with side effects. Run receives
// the state exactly as committed by the triggering change and returns a
// channel of follow-up changes, closed when the effect is finished. A nil
// channel means the runner has no interest in this change.
//
// Run is called off the dispatch goroutine and must tolerate changes it does
// not care about. ctx is cancelled when the owning store shuts down;
// follow-up changes produced after shutdown are dropped.
type EffectRunner[S any] interface {
	Run(ctx context.Context, state S, change Change) <-chan Change
}

// RunnerFunc adapts a function to the EffectRunner interface.
type RunnerFunc[S any] func(ctx context.Context, state S, change Change) <-chan Change

// Run implements EffectRunner
func (f RunnerFunc[S]) Run(ctx context.Context, state S, change Change) <-chan Change {
	return f(ctx, state, change)
}

// Emit builds a closed channel pre-filled with the given changes. It is the
// convenient return value for runners that compute their follow-ups
// synchronously.
func Emit(changes ...Change) <-chan Change {
	out := make(chan Change, len(changes))
	for _, c := range changes {
		out <- c
	}
	close(out)
	return out
}
