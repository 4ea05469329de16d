package hashmap

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const (
	chunkBits = 5
	nodeCap   = 1 << chunkBits
	chunkMask = nodeCap - 1
)

// New takes an equality function and a hash function, and returns an empty
// Map.
func New(e EqualFunc, h HashFunc) Map {
	return &hashMap{0, nil, e, h}
}

// hashMap is a hash trie on 5-bit chunks of the key hash. Branch nodes are
// copied along the path on updates; entries whose keys share a full hash
// live together in one leaf.
type hashMap struct {
	count int
	root  node
	equal EqualFunc
	hash  HashFunc
}

// node is either *branch or *leaf.
type node any

type branch struct {
	children [nodeCap]node
}

type leaf struct {
	hash    uint32
	entries []entry
}

type entry struct {
	key, value any
}

func (m *hashMap) Len() int {
	return m.count
}

func (m *hashMap) Index(k any) (any, bool) {
	if m.root == nil {
		return nil, false
	}
	h := m.hash(k)
	n := m.root
	for shift := uint(0); ; shift += chunkBits {
		switch n2 := n.(type) {
		case *branch:
			child := n2.children[(h>>shift)&chunkMask]
			if child == nil {
				return nil, false
			}
			n = child
		case *leaf:
			if n2.hash != h {
				return nil, false
			}
			for _, e := range n2.entries {
				if m.equal(e.key, k) {
					return e.value, true
				}
			}
			return nil, false
		}
	}
}

func (m *hashMap) Assoc(k, v any) Map {
	h := m.hash(k)
	var newRoot node
	added := false
	if m.root == nil {
		newRoot, added = &leaf{h, []entry{{k, v}}}, true
	} else {
		newRoot, added = assoc(m.root, 0, h, k, v, m.equal)
	}
	count := m.count
	if added {
		count++
	}
	return &hashMap{count, newRoot, m.equal, m.hash}
}

func assoc(n node, shift uint, h uint32, k, v any, eq EqualFunc) (node, bool) {
	switch n := n.(type) {
	case *branch:
		idx := (h >> shift) & chunkMask
		child := n.children[idx]
		var newChild node
		added := false
		if child == nil {
			newChild, added = &leaf{h, []entry{{k, v}}}, true
		} else {
			newChild, added = assoc(child, shift+chunkBits, h, k, v, eq)
		}
		b := *n
		b.children[idx] = newChild
		return &b, added
	default:
		l := n.(*leaf)
		if l.hash == h {
			for i, e := range l.entries {
				if eq(e.key, k) {
					entries := make([]entry, len(l.entries))
					copy(entries, l.entries)
					entries[i] = entry{k, v}
					return &leaf{h, entries}, false
				}
			}
			entries := make([]entry, len(l.entries)+1)
			copy(entries, l.entries)
			entries[len(l.entries)] = entry{k, v}
			return &leaf{h, entries}, true
		}
		// Hashes differ; push the existing leaf one level down and retry.
		// Distinct 32-bit hashes always diverge within 7 levels of 5-bit
		// chunks, so the recursion terminates.
		b := &branch{}
		b.children[(l.hash>>shift)&chunkMask] = l
		return assoc(b, shift, h, k, v, eq)
	}
}

func (m *hashMap) Dissoc(k any) Map {
	if m.root == nil {
		return m
	}
	newRoot, removed := dissoc(m.root, 0, m.hash(k), k, m.equal)
	if !removed {
		return m
	}
	return &hashMap{m.count - 1, newRoot, m.equal, m.hash}
}

func dissoc(n node, shift uint, h uint32, k any, eq EqualFunc) (node, bool) {
	switch n := n.(type) {
	case *branch:
		idx := (h >> shift) & chunkMask
		child := n.children[idx]
		if child == nil {
			return n, false
		}
		newChild, removed := dissoc(child, shift+chunkBits, h, k, eq)
		if !removed {
			return n, false
		}
		b := *n
		b.children[idx] = newChild
		if newChild == nil && b.empty() {
			return nil, true
		}
		return &b, true
	default:
		l := n.(*leaf)
		if l.hash != h {
			return n, false
		}
		for i, e := range l.entries {
			if eq(e.key, k) {
				if len(l.entries) == 1 {
					return nil, true
				}
				entries := make([]entry, 0, len(l.entries)-1)
				entries = append(entries, l.entries[:i]...)
				entries = append(entries, l.entries[i+1:]...)
				return &leaf{h, entries}, true
			}
		}
		return n, false
	}
}

func (b *branch) empty() bool {
	for i := range b.children {
		if b.children[i] != nil {
			return false
		}
	}
	return true
}

func (m *hashMap) Iterator() Iterator {
	it := &iterator{}
	if m.root != nil {
		it.stack = []node{m.root}
	}
	it.advance()
	return it
}

type iterator struct {
	stack []node
	cur   *leaf
	idx   int
}

func (it *iterator) advance() {
	for it.cur == nil && len(it.stack) > 0 {
		n := it.stack[len(it.stack)-1]
		it.stack = it.stack[:len(it.stack)-1]
		switch n := n.(type) {
		case *branch:
			for i := nodeCap - 1; i >= 0; i-- {
				if n.children[i] != nil {
					it.stack = append(it.stack, n.children[i])
				}
			}
		case *leaf:
			it.cur, it.idx = n, 0
		}
	}
}

func (it *iterator) HasElem() bool {
	return it.cur != nil
}

func (it *iterator) Elem() (any, any) {
	e := it.cur.entries[it.idx]
	return e.key, e.value
}

func (it *iterator) Next() {
	it.idx++
	if it.idx >= len(it.cur.entries) {
		it.cur = nil
		it.advance()
	}
}

func (m *hashMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for it := m.Iterator(); it.HasElem(); it.Next() {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		k, v := it.Elem()
		kBytes, err := json.Marshal(convertKey(k))
		if err != nil {
			return nil, err
		}
		vBytes, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		buf.Write(kBytes)
		buf.WriteByte(':')
		buf.Write(vBytes)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// convertKey renders a key as a string for JSON output.
func convertKey(k any) string {
	if s, ok := k.(string); ok {
		return s
	}
	return fmt.Sprint(k)
}
