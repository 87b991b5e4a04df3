package ravel

// Reducer computes the next state from the current state and one change.
// Implementations must be pure: no IO, no mutation of shared values, no
// dependence on anything but the two arguments. Unrecognized changes return
// the state unchanged.
type Reducer[S any] func(S, Change) S

// Combine folds several reducers into one, applying them in order. Each
// reducer sees the output of the previous one.
func Combine[S any](reducers ...Reducer[S]) Reducer[S] {
	return func(state S, change Change) S {
		for _, r := range reducers {
			state = r(state, change)
		}
		return state
	}
}

// Scope lifts a reducer over a child value into a reducer over its parent.
// get and set are the accessor pair for the embedded child; unwrap extracts
// the child change from a parent change, reporting false when the change is
// not scoped to this child, in which case the parent passes through
// untouched.
func Scope[P, C any](get func(P) C, set func(P, C) P, unwrap func(Change) (Change, bool), child Reducer[C]) Reducer[P] {
	return func(parent P, change Change) P {
		inner, ok := unwrap(change)
		if !ok {
			return parent
		}
		return set(parent, child(get(parent), inner))
	}
}
