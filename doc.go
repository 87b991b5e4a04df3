// Package ravel is a serialized state-management core for reactive views.
//
// A Store owns one state value and one dispatch goroutine. Changes submitted
// from any goroutine are queued, applied one at a time through a pure
// Reducer, and committed wholesale; effect runners observe each committed
// change and feed their follow-up changes back into the same queue. State is
// only ever read as a complete snapshot, so consumers never see a partial
// reduction.
//
// The three contracts are Change (a value declaring intent to mutate),
// Reducer (pure transition from state and change to the next state), and
// EffectRunner (side effects reacting to committed changes). Everything else
// in the module builds on these.
package ravel
