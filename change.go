package ravel

// Change represents a declared intent to mutate state. Implementations are
// immutable values; the marker method keeps arbitrary types out of the
// dispatch queue while letting any package declare its own changes.
type Change interface {
	Change()
}
