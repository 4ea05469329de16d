package testutil

// Set sets the value of a variable for the duration of a test, and restores
// the old value during cleanup.
func Set[T any](c Cleanuper, p *T, v T) {
	old := *p
	*p = v
	c.Cleanup(func() { *p = old })
}
