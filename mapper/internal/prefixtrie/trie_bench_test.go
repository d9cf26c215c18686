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

import (
	"math/rand"
	"strings"
	"testing"
)

const codeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ_"

// genCode builds a random code of length n from codeAlphabet.
func genCode(rng *rand.Rand, n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteByte(codeAlphabet[rng.Intn(len(codeAlphabet))])
	}
	return b.String()
}

// buildTrie inserts N prefixes of the given length and returns keys that
// extend each prefix, so every lookup goes through LPM.
func buildTrie(b *testing.B, N, length int) (*Trie[int], []string) {
	rng := rand.New(rand.NewSource(1)) // deterministic
	tr := New[int]()
	keys := make([]string, 0, N)
	for i := 0; i < N; i++ {
		p := genCode(rng, length)
		if err := tr.Insert(p, 100+i); err != nil {
			b.Fatalf("insert failed for %q: %v", p, err)
		}
		keys = append(keys, p+genCode(rng, 3))
	}
	return tr, keys
}

func benchmarkMatch(b *testing.B, N, length int) {
	tr, keys := buildTrie(b, N, length)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = tr.Match(keys[i%len(keys)])
	}
}

func BenchmarkMatch_Small(b *testing.B)  { benchmarkMatch(b, 16, 2) }
func BenchmarkMatch_Medium(b *testing.B) { benchmarkMatch(b, 256, 4) }
func BenchmarkMatch_Large(b *testing.B)  { benchmarkMatch(b, 4096, 6) }

func BenchmarkMatch_Miss(b *testing.B) {
	tr, _ := buildTrie(b, 256, 4)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = tr.Match("~~~~")
	}
}
