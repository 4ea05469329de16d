package eval

import "math"

// Numerical operations.

func init() {
	addBuiltinFns(map[string]any{
		// Arithmetic
		"+": add,
		"-": sub,
		"*": mul,
		"/": div,
		"%": math.Mod,

		// Comparison
		"<":  lt,
		"<=": le,
		"=":  eqNum,
		">":  gt,
		">=": ge,

		"abs":   math.Abs,
		"min":   minFn,
		"max":   maxFn,
		"floor": math.Floor,
		"ceil":  math.Ceil,
	})
}

func add(nums ...float64) float64 {
	var sum float64
	for _, n := range nums {
		sum += n
	}
	return sum
}

// sub negates its sole argument, or subtracts the rest from the first.
func sub(first float64, rest ...float64) float64 {
	if len(rest) == 0 {
		return -first
	}
	acc := first
	for _, n := range rest {
		acc -= n
	}
	return acc
}

func mul(nums ...float64) float64 {
	product := 1.0
	for _, n := range nums {
		product *= n
	}
	return product
}

// div inverts its sole argument, or divides the first by the rest. Division
// follows float64 semantics, so dividing by zero gives an infinity.
func div(first float64, rest ...float64) float64 {
	if len(rest) == 0 {
		return 1 / first
	}
	acc := first
	for _, n := range rest {
		acc /= n
	}
	return acc
}

// chainCompare applies cmp to each adjacent pair, so (< a b c) means a < b
// and b < c.
func chainCompare(first float64, rest []float64, cmp func(a, b float64) bool) bool {
	prev := first
	for _, n := range rest {
		if !cmp(prev, n) {
			return false
		}
		prev = n
	}
	return true
}

func lt(first float64, rest ...float64) bool {
	return chainCompare(first, rest, func(a, b float64) bool { return a < b })
}

func le(first float64, rest ...float64) bool {
	return chainCompare(first, rest, func(a, b float64) bool { return a <= b })
}

func eqNum(first float64, rest ...float64) bool {
	return chainCompare(first, rest, func(a, b float64) bool { return a == b })
}

func gt(first float64, rest ...float64) bool {
	return chainCompare(first, rest, func(a, b float64) bool { return a > b })
}

func ge(first float64, rest ...float64) bool {
	return chainCompare(first, rest, func(a, b float64) bool { return a >= b })
}

func minFn(first float64, rest ...float64) float64 {
	for _, n := range rest {
		first = math.Min(first, n)
	}
	return first
}

func maxFn(first float64, rest ...float64) float64 {
	for _, n := range rest {
		first = math.Max(first, n)
	}
	return first
}
