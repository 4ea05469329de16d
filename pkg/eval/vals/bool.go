package vals

// Bool converts a value to bool, mirroring the truthiness rule of the
// language: nil and false are false, every other value is true. In
// particular 0, "" and the empty list are all true.
func Bool(v any) bool {
	switch v {
	case nil, false:
		return false
	}
	return true
}
