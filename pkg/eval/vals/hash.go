package vals

import (
	"math"

	"github.com/zem-editor/zem/pkg/persistent/hash"
)

// Hasher wraps the Hash method.
type Hasher interface {
	// Hash computes the hash code of the receiver.
	Hash() uint32
}

// Hash returns the 32-bit hash of a value. It is guaranteed that equal
// values have the same hash code. Values that are not hashable have a hash
// code of 0.
func Hash(v any) uint32 {
	switch v := v.(type) {
	case nil:
		return 0
	case bool:
		if v {
			return 1
		}
		return 0
	case float64:
		return hash.UInt64(math.Float64bits(v))
	case string:
		return hash.String(v)
	case Symbol:
		return hash.DJB(2, hash.String(string(v)))
	case List:
		h := hash.DJBInit
		for _, e := range v {
			h = hash.DJBCombine(h, Hash(e))
		}
		return h
	case Map:
		// Commutative combination so that the hash does not depend on
		// iteration order.
		var h uint32
		for it := v.Iterator(); it.HasElem(); it.Next() {
			k, ev := it.Elem()
			h += hash.DJB(Hash(k), Hash(ev))
		}
		return h
	case Hasher:
		return v.Hash()
	default:
		return 0
	}
}
