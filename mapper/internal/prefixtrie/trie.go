/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package prefixtrie

import "errors"

// Trie is a byte-wise prefix index for diagnostic codes. Each edge is one
// code character; a node that ends an inserted prefix carries a value. The
// trie supports longest-prefix-match (LPM), so a rule for "0AIS" wins over a
// rule for "0A" when matching "0AISE".
//
// A Trie is built once and then only read; reads are safe for concurrent use.
type Trie[T any] struct {
	// children holds the next code characters.
	children map[byte]*Trie[T]
	// hasVal marks that this node carries a value for the prefix ending here.
	hasVal bool
	val    T
	// pattern is the prefix that ends at this node, set only when hasVal=true.
	// It is used by MatchWithPattern for Explain, so lookups build no strings.
	pattern string
}

// ErrInvalidPrefix is returned when inserting a prefix that is empty or
// contains characters outside [0-9A-Za-z_].
var ErrInvalidPrefix = errors.New("prefixtrie: invalid prefix")

// New creates an empty trie ready for inserts.
func New[T any]() *Trie[T] {
	return &Trie[T]{children: make(map[byte]*Trie[T])}
}

// Insert associates val with prefix. Inserting the same prefix twice keeps
// the last value.
//
// The empty prefix is rejected: it would match every code and hide the
// per-code defaults below it.
func (t *Trie[T]) Insert(prefix string, val T) error {
	if t == nil || !validPrefix(prefix) {
		return ErrInvalidPrefix
	}
	cur := t
	for i := 0; i < len(prefix); i++ {
		c := prefix[i]
		child, ok := cur.children[c]
		if !ok {
			child = New[T]()
			cur.children[c] = child
		}
		cur = child
	}
	cur.hasVal = true
	cur.val = val
	cur.pattern = prefix
	return nil
}

// Match returns the value of the longest inserted prefix of key.
func (t *Trie[T]) Match(key string) (T, bool) {
	v, ok, _ := t.MatchWithPattern(key)
	return v, ok
}

// MatchWithPattern is Match that also returns the matched prefix.
func (t *Trie[T]) MatchWithPattern(key string) (T, bool, string) {
	var zero T
	if t == nil {
		return zero, false, ""
	}
	var best *Trie[T]
	cur := t
	for i := 0; i < len(key); i++ {
		next, ok := cur.children[key[i]]
		if !ok {
			break
		}
		cur = next
		if cur.hasVal {
			best = cur
		}
	}
	if best == nil {
		return zero, false, ""
	}
	return best.val, true, best.pattern
}

// Len returns the number of prefixes stored in the trie.
func (t *Trie[T]) Len() int {
	if t == nil {
		return 0
	}
	n := 0
	if t.hasVal {
		n++
	}
	for _, c := range t.children {
		n += c.Len()
	}
	return n
}

// validPrefix reports whether p is a non-empty run of [0-9A-Za-z_].
func validPrefix(p string) bool {
	if p == "" {
		return false
	}
	for i := 0; i < len(p); i++ {
		c := p[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_' {
			continue
		}
		return false
	}
	return true
}
