// Package vars contains the variable cells that environments map names to.
package vars

// Var represents a variable binding.
type Var interface {
	Set(v any) error
	Get() any
}
