// Package vals contains basic facilities for manipulating values used in the
// Zem Lisp runtime.
//
// The representation of values is homoiconic with the reader's output:
// numbers are float64, strings are string, booleans are bool, nil is the
// untyped nil, symbols are parse.Symbol and lists are plain []any slices.
// Maps use the persistent hashmap package. This is in line with the
// principle that the canonical definition of a value type is its Go type,
// and the package only supplies helper procedures over them.
//
// Custom value types (functions, macros and host handles) hook into those
// helpers by implementing the Kinder, Equaler, Hasher and Reprer interfaces.
package vals

import (
	"github.com/zem-editor/zem/pkg/parse"
	"github.com/zem-editor/zem/pkg/persistent/hashmap"
)

// Symbol is an identifier value. It is an alias of the reader's symbol type.
type Symbol = parse.Symbol

// List is an ordered sequence of values. Code never mutates a List in place;
// operations that grow or shrink lists build new slices, so lists may share
// structure freely.
type List = []any

// Map is a persistent map keyed by value equality.
type Map = hashmap.Map

// EmptyMap is an empty Map.
var EmptyMap = hashmap.New(Equal, Hash)

// MakeList builds a List from the arguments.
func MakeList(elems ...any) List {
	if elems == nil {
		return List{}
	}
	return elems
}

// MakeMap builds a Map from the arguments, which are interpreted as
// alternating keys and values. It panics if given an odd number of
// arguments.
func MakeMap(kvs ...any) Map {
	if len(kvs)%2 != 0 {
		panic("odd number of arguments to MakeMap")
	}
	m := EmptyMap
	for i := 0; i+1 < len(kvs); i += 2 {
		m = m.Assoc(kvs[i], kvs[i+1])
	}
	return m
}
