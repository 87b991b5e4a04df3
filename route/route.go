// Package route serializes navigation through a dedicated change store, so
// view transitions obey the same single-flight discipline as every other
// state change.
package route

// Route names a navigation destination. Applications declare one route type
// per destination; the marker method keeps arbitrary values out of the
// navigation queue.
type Route interface {
	Route()
}

// Locator is an externally supplied destination, typically carried by a
// deep link. The router treats it as opaque and leaves parsing to the
// routing table.
type Locator any

// Step is the state transition for one resolved route. Apply performs the
// transition. Require and Coerce together express a compound route's
// precondition: when Require reports the precondition already holds, Coerce
// is skipped entirely, so the fields it would touch keep their current
// values. Routes without a precondition leave both nil.
type Step[R any] struct {
	Require func(R) bool
	Coerce  func(R) R
	Apply   func(R) R
}

// run applies the step, coercing only when the precondition does not hold.
func (st Step[R]) run(state R) R {
	if st.Coerce != nil && (st.Require == nil || !st.Require(state)) {
		state = st.Coerce(state)
	}
	if st.Apply != nil {
		state = st.Apply(state)
	}
	return state
}

// Table resolves routes and locators to steps. Implementations are supplied
// by the application; the router itself knows nothing about destinations.
type Table[R any] interface {
	Resolve(Route) (Step[R], bool)
	Locate(Locator) (Step[R], bool)
}
