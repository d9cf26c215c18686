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

// Package mapper provides deterministic, immutable mappings from diagnostic
// codes and their app codes to transport-level statuses for HTTP and gRPC.
//
// # Overview
//
// A derived error carries a full diagnostic code (taxonomy prefix + variant
// code, e.g. "0ANF") and a typed app code chosen by the taxonomy author. For
// most taxonomies the app code already is an HTTP status. Transport layers
// still need to adjust that choice in places: map a whole taxonomy to 503
// during an outage drill, pick a gRPC code, or re-route one variant. Package
// mapper does that in a way that is:
//
//   - immutable: a Mapper is a snapshot, safe for concurrent reuse;
//   - overridable: callers can pin a status per full code;
//   - prefix-aware: one rule can cover a taxonomy or a family of variants;
//   - dual: HTTP and gRPC are resolved from the same inputs.
//
// # Resolution model
//
// HTTP is resolved in the following order:
//
//  1. exact override for the code;
//  2. longest-prefix-match (LPM) over the code;
//  3. the app code, when it lies in 100..599;
//  4. 500.
//
// gRPC uses override, then LPM, then a default table keyed by the resolved
// HTTP status, then codes.Internal.
//
// Prefixes are byte-wise and case-sensitive, matching how codes are compared
// everywhere else:
//
//	WithHTTPPrefix("0A", http.StatusServiceUnavailable)  // whole taxonomy
//	WithHTTPPrefix("0AIS", http.StatusBadGateway)       // one family
//
// # Building a mapper
//
// A Mapper is created once and reused:
//
//	m, err := mapper.New(
//	    mapper.WithHTTPOverride("0AUE", 502),
//	    mapper.WithGRPCPrefix("0B", codes.Unavailable),
//	)
//	if err != nil {
//	    // invalid prefix or status
//	}
//
//	st := m.Status("0ANF", 404)
//	// st.HTTP == 404, st.GRPC == codes.NotFound
//
// # Diagnostics
//
// Mapper.Explain returns a human-readable trace of which tier matched and,
// for prefixes, which pattern was used. It is intended for inspection and
// logging, not for stable machine parsing.
package mapper
