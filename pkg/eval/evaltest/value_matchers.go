package evaltest

import (
	"math"
	"regexp"

	"github.com/zem-editor/zem/pkg/eval/vals"
)

// ValueMatcher is a value that can be passed to Case.Evals and has its own
// matching semantics.
type ValueMatcher interface{ matchValue(any) bool }

// Anything matches any value.
var Anything ValueMatcher = anything{}

type anything struct{}

func (anything) matchValue(any) bool { return true }

// ApproximatelyThreshold defines the threshold for matching float64 values
// when using Approximately.
const ApproximatelyThreshold = 1e-15

// Approximately matches a float64 within the threshold defined by
// ApproximatelyThreshold. It also matches NaN and infinities by identity,
// which plain equality does not.
func Approximately(f float64) ValueMatcher { return approximately{f} }

type approximately struct{ value float64 }

func (a approximately) matchValue(value any) bool {
	if value, ok := value.(float64); ok {
		return matchFloat64(a.value, value, ApproximatelyThreshold)
	}
	return false
}

func matchFloat64(a, b, threshold float64) bool {
	if math.IsNaN(a) && math.IsNaN(b) {
		return true
	}
	if math.IsInf(a, 0) && math.IsInf(b, 0) &&
		math.Signbit(a) == math.Signbit(b) {
		return true
	}
	return math.Abs(a-b) <= threshold
}

// StringMatching matches any string matching a regexp pattern. If the
// pattern is not a valid regexp, the function panics.
func StringMatching(p string) ValueMatcher { return stringMatching{regexp.MustCompile(p)} }

type stringMatching struct{ pattern *regexp.Regexp }

func (s stringMatching) matchValue(value any) bool {
	if value, ok := value.(string); ok {
		return s.pattern.MatchString(value)
	}
	return false
}

// ListContaining matches any list containing all the given values in order,
// possibly with other values in between.
func ListContaining(vs ...any) ValueMatcher { return listContaining{vs} }

type listContaining struct{ values []any }

func (l listContaining) matchValue(value any) bool {
	list, ok := value.(vals.List)
	if !ok {
		return false
	}
	i := 0
	for _, elem := range list {
		if i < len(l.values) && matchValue(l.values[i], elem) {
			i++
		}
	}
	return i == len(l.values)
}
