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

package mapper

import "google.golang.org/grpc/codes"

// freeze makes an immutable copy of a builder map so later mutations to the
// builder cannot affect a built mapper. Empty maps freeze to nil.
func freeze[K comparable, V any](src map[K]V) map[K]V {
	if len(src) == 0 {
		return nil
	}
	dst := make(map[K]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// validHTTP reports whether v is in the range of real HTTP statuses.
func validHTTP(v int) bool { return v >= 100 && v <= 599 }

// validGRPC reports whether c is one of the canonical gRPC codes.
func validGRPC(c codes.Code) bool { return c <= codes.Unauthenticated }
