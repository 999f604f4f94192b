// Package ptr holds generic helpers for optional fields modelled as pointers.
package ptr

// To returns a pointer to a copy of v.
func To[T any](v T) *T {
	return &v
}

// Deref returns *p, or def when p is nil.
func Deref[T any](p *T, def T) T {
	if p != nil {
		return *p
	}
	return def
}

// Clone returns a pointer to a copy of *p, or nil when p is nil.
func Clone[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// ToString converts a pointer to a string-based enum to its string value.
// Returns the empty string if the pointer is nil.
func ToString[T ~string](p *T) string {
	if p == nil {
		return ""
	}
	return string(*p)
}
