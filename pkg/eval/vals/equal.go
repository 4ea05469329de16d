package vals

// Equaler wraps the Equal method.
type Equaler interface {
	// Equal compares the receiver to another value. Other may be any value,
	// including another instance of the same type.
	Equal(other any) bool
}

// Equal returns whether two values are structurally equal. Numbers, strings,
// booleans, nil and symbols compare by value; lists compare elementwise;
// maps compare by their entry sets. Values of different kinds are never
// equal, so the symbol foo and the string "foo" are distinct.
func Equal(x, y any) bool {
	switch x := x.(type) {
	case nil:
		return y == nil
	case bool, float64, string, Symbol:
		return x == y
	case List:
		y, ok := y.(List)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	case Map:
		y, ok := y.(Map)
		if !ok || x.Len() != y.Len() {
			return false
		}
		for it := x.Iterator(); it.HasElem(); it.Next() {
			k, vx := it.Elem()
			vy, ok := y.Index(k)
			if !ok || !Equal(vx, vy) {
				return false
			}
		}
		return true
	case Equaler:
		return x.Equal(y)
	default:
		return x == y
	}
}
