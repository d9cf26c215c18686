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

import "testing"

func TestInsertAndMatch_Simple(t *testing.T) {
	tr := New[int]()
	must(t, tr.Insert("0A", 500))
	must(t, tr.Insert("0AIS", 503))
	must(t, tr.Insert("01", 400))

	if v, ok, p := tr.MatchWithPattern("0AISE"); !ok || v != 503 || p != "0AIS" {
		t.Fatalf("match 0AISE => ok=%v v=%v p=%q; want ok=true v=503 p=0AIS", ok, v, p)
	}
	if v, ok, p := tr.MatchWithPattern("0ANF"); !ok || v != 500 || p != "0A" {
		t.Fatalf("match 0ANF => ok=%v v=%v p=%q; want ok=true v=500 p=0A", ok, v, p)
	}
	if v, ok, p := tr.MatchWithPattern("0A"); !ok || v != 500 || p != "0A" {
		t.Fatalf("exact match 0A => ok=%v v=%v p=%q", ok, v, p)
	}
	if v, ok := tr.Match("01IC"); !ok || v != 400 {
		t.Fatalf("match 01IC => ok=%v v=%v; want 400", ok, v)
	}
}

func TestNoMatch(t *testing.T) {
	tr := New[int]()
	must(t, tr.Insert("0AIS", 503))

	for _, key := range []string{"", "0", "0A", "0AI", "0B", "1AISE"} {
		if v, ok := tr.Match(key); ok {
			t.Fatalf("Match(%q) = %v; want no match", key, v)
		}
	}
}

func TestCaseSensitive(t *testing.T) {
	tr := New[int]()
	must(t, tr.Insert("0a", 1))
	if _, ok := tr.Match("0AIP"); ok {
		t.Fatal("prefixes are case-sensitive")
	}
}

func TestInsert_Invalid(t *testing.T) {
	tr := New[int]()
	for _, p := range []string{"", "0A.", "0-A", " 0A", "0A*"} {
		if err := tr.Insert(p, 1); err != ErrInvalidPrefix {
			t.Fatalf("Insert(%q) = %v; want ErrInvalidPrefix", p, err)
		}
	}
	var nilTrie *Trie[int]
	if err := nilTrie.Insert("0A", 1); err != ErrInvalidPrefix {
		t.Fatalf("Insert on nil trie = %v; want ErrInvalidPrefix", err)
	}
	if _, ok := nilTrie.Match("0A"); ok {
		t.Fatal("Match on nil trie must not match")
	}
}

func TestInsert_LastWins(t *testing.T) {
	tr := New[int]()
	must(t, tr.Insert("0A", 1))
	must(t, tr.Insert("0A", 2))
	if v, _ := tr.Match("0AIP"); v != 2 {
		t.Fatalf("Match = %d; want 2", v)
	}
	if tr.Len() != 1 {
		t.Fatalf("Len() = %d; want 1", tr.Len())
	}
}

func TestLen(t *testing.T) {
	tr := New[string]()
	must(t, tr.Insert("0A", "a"))
	must(t, tr.Insert("0AIS", "b"))
	must(t, tr.Insert("1", "c"))
	if tr.Len() != 3 {
		t.Fatalf("Len() = %d; want 3", tr.Len())
	}
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
