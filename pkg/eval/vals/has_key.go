package vals

// HasKey reports whether a container has a key. For a map this is key
// membership; for a list the keys are the integral indices 0 through
// len-1. Any other value has no keys.
func HasKey(container, k any) bool {
	switch container := container.(type) {
	case Map:
		_, ok := container.Index(k)
		return ok
	case List:
		if f, ok := k.(float64); ok {
			i := int(f)
			return float64(i) == f && 0 <= i && i < len(container)
		}
		return false
	default:
		return false
	}
}
