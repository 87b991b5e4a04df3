package ravel

import "fmt"

// Describer is the opt-in rendering capability for states and changes.
// Diagnostics render values through it; types that opt out are rendered by
// type name only.
type Describer interface {
	Describe() string
}

// DescribeValue renders v for diagnostics. It prefers Describe, then
// fmt.Stringer, and falls back to the type name. Value structure is never
// inspected, so what a type reveals is entirely its own choice.
func DescribeValue(v any) string {
	switch d := v.(type) {
	case nil:
		return "<nil>"
	case Describer:
		return d.Describe()
	case fmt.Stringer:
		return d.String()
	default:
		return fmt.Sprintf("%T", v)
	}
}
