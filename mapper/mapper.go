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

import (
	"errors"
	"fmt"
	"strings"

	"dirpx.dev/errcode/mapper/internal/prefixtrie"
	"google.golang.org/grpc/codes"
)

var (
	// ErrEmptyCode is returned when an override is registered for "".
	ErrEmptyCode = errors.New("mapper: empty code")

	// ErrInvalidStatus is returned when an HTTP status outside 100..599 is
	// configured.
	ErrInvalidStatus = errors.New("mapper: invalid HTTP status")

	// ErrInvalidGRPCCode is returned when a gRPC code above
	// codes.Unauthenticated is configured.
	ErrInvalidGRPCCode = errors.New("mapper: invalid gRPC code")

	// ErrInvalidPrefix is returned for an empty prefix or one with characters
	// outside [0-9A-Za-z_].
	ErrInvalidPrefix = prefixtrie.ErrInvalidPrefix
)

// Status is the pair of transport statuses resolved for one error.
type Status struct {
	HTTP int
	GRPC codes.Code
}

// Mapper resolves transport statuses for a diagnostic code. The app code is
// the integer form of the variant's app_code (for app_type u16, int or
// http_status it is the HTTP status the author declared).
type Mapper interface {
	HTTPStatus(code string, app int) int
	GRPCStatus(code string, app int) codes.Code
	Status(code string, app int) Status
	Explain(code string, app int) string
}

// New constructs an immutable Mapper snapshot.
//
// Build process overview:
//
//  1. Seed the builder with the HTTP-to-gRPC default table.
//  2. Apply user-provided options (overrides, prefix rules, defaults).
//  3. Validate codes, HTTP statuses and gRPC codes.
//  4. Compile prefix rules into byte tries supporting longest-prefix-match.
//  5. Freeze all maps into fresh copies.
//
// All configuration problems are reported together.
func New(opts ...Option) (Mapper, error) {
	b := newBuilder()
	for k, v := range defaultGRPC {
		b.grpcDefaults[k] = v
	}
	for _, opt := range opts {
		opt(b)
	}

	var errs []error
	for c, v := range b.httpOverride {
		if c == "" {
			errs = append(errs, fmt.Errorf("mapper: HTTP override: %w", ErrEmptyCode))
		}
		if !validHTTP(v) {
			errs = append(errs, fmt.Errorf("mapper: HTTP override for %q: %w: %d", c, ErrInvalidStatus, v))
		}
	}
	for c, v := range b.grpcOverride {
		if c == "" {
			errs = append(errs, fmt.Errorf("mapper: gRPC override: %w", ErrEmptyCode))
		}
		if !validGRPC(v) {
			errs = append(errs, fmt.Errorf("mapper: gRPC override for %q: %w: %d", c, ErrInvalidGRPCCode, v))
		}
	}
	for h, v := range b.grpcDefaults {
		if !validHTTP(h) {
			errs = append(errs, fmt.Errorf("mapper: gRPC default: %w: %d", ErrInvalidStatus, h))
		}
		if !validGRPC(v) {
			errs = append(errs, fmt.Errorf("mapper: gRPC default for %d: %w: %d", h, ErrInvalidGRPCCode, v))
		}
	}

	httpTrie := prefixtrie.New[int]()
	for _, r := range b.httpPrefixes {
		if !validHTTP(r.val) {
			errs = append(errs, fmt.Errorf("mapper: HTTP prefix %q: %w: %d", r.prefix, ErrInvalidStatus, r.val))
			continue
		}
		if err := httpTrie.Insert(r.prefix, r.val); err != nil {
			errs = append(errs, fmt.Errorf("mapper: HTTP prefix %q: %w", r.prefix, err))
		}
	}
	grpcTrie := prefixtrie.New[codes.Code]()
	for _, r := range b.grpcPrefixes {
		if r.val < 0 || !validGRPC(codes.Code(r.val)) {
			errs = append(errs, fmt.Errorf("mapper: gRPC prefix %q: %w: %d", r.prefix, ErrInvalidGRPCCode, r.val))
			continue
		}
		if err := grpcTrie.Insert(r.prefix, codes.Code(r.val)); err != nil {
			errs = append(errs, fmt.Errorf("mapper: gRPC prefix %q: %w", r.prefix, err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	m := &mapper{
		httpOverride: freeze(b.httpOverride),
		grpcOverride: freeze(b.grpcOverride),
		grpcDefault:  freeze(b.grpcDefaults),
		fallbackHTTP: b.fallbackHTTP,
		fallbackGRPC: b.fallbackGRPC,
	}
	if httpTrie.Len() > 0 {
		m.httpTrie = httpTrie
	}
	if grpcTrie.Len() > 0 {
		m.grpcTrie = grpcTrie
	}
	return m, nil
}

// mapper is the immutable Mapper implementation. Lookups are O(len(code))
// and safe for concurrent use once constructed.
type mapper struct {
	httpOverride map[string]int
	grpcOverride map[string]codes.Code

	// nil when no prefix rules were configured.
	httpTrie *prefixtrie.Trie[int]
	grpcTrie *prefixtrie.Trie[codes.Code]

	// grpcDefault maps the resolved HTTP status to a gRPC code.
	grpcDefault map[int]codes.Code

	fallbackHTTP int
	fallbackGRPC codes.Code
}

// HTTPStatus resolves an HTTP status for the given code and app code.
//
// Resolution order (highest to lowest):
//  1. exact per-code override;
//  2. longest prefix rule over the code;
//  3. the app code itself, when it is a valid HTTP status;
//  4. 500.
func (m *mapper) HTTPStatus(code string, app int) int {
	v, _, _ := m.resolveHTTP(code, app)
	return v
}

// GRPCStatus resolves a gRPC code for the given code and app code.
//
// Resolution order:
//  1. exact per-code override;
//  2. longest prefix rule over the code;
//  3. the default table applied to the resolved HTTP status;
//  4. codes.Internal.
func (m *mapper) GRPCStatus(code string, app int) codes.Code {
	v, _, _ := m.resolveGRPC(code, app)
	return v
}

// Status resolves both statuses from the same inputs.
func (m *mapper) Status(code string, app int) Status {
	return Status{
		HTTP: m.HTTPStatus(code, app),
		GRPC: m.GRPCStatus(code, app),
	}
}

// Explain produces a textual trace of how the mapper resolved both statuses.
//
// Example output:
//
//	code="0AISE" app_code=500
//	http: source=prefix pattern="0AIS" -> 503
//	grpc: source=default http=503 -> UNAVAILABLE(14)
//
// source is one of override, prefix, app_code, default or fallback. The
// format is meant for people, not for machine parsing.
func (m *mapper) Explain(code string, app int) string {
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "code=%q app_code=%d\n", code, app)

	h, src, pat := m.resolveHTTP(code, app)
	switch src {
	case "prefix":
		_, _ = fmt.Fprintf(&b, "http: source=prefix pattern=%q -> %d\n", pat, h)
	default:
		_, _ = fmt.Fprintf(&b, "http: source=%s -> %d\n", src, h)
	}

	g, src, pat := m.resolveGRPC(code, app)
	switch src {
	case "prefix":
		_, _ = fmt.Fprintf(&b, "grpc: source=prefix pattern=%q -> %s", pat, grpcName(g))
	case "default":
		_, _ = fmt.Fprintf(&b, "grpc: source=default http=%d -> %s", h, grpcName(g))
	default:
		_, _ = fmt.Fprintf(&b, "grpc: source=%s -> %s", src, grpcName(g))
	}
	return b.String()
}

// resolveHTTP returns the status with the tier that produced it and, for
// prefix matches, the pattern.
func (m *mapper) resolveHTTP(code string, app int) (int, string, string) {
	if v, ok := m.httpOverride[code]; ok {
		return v, "override", ""
	}
	if m.httpTrie != nil {
		if v, ok, pat := m.httpTrie.MatchWithPattern(code); ok {
			return v, "prefix", pat
		}
	}
	if validHTTP(app) {
		return app, "app_code", ""
	}
	return m.fallbackHTTP, "fallback", ""
}

func (m *mapper) resolveGRPC(code string, app int) (codes.Code, string, string) {
	if v, ok := m.grpcOverride[code]; ok {
		return v, "override", ""
	}
	if m.grpcTrie != nil {
		if v, ok, pat := m.grpcTrie.MatchWithPattern(code); ok {
			return v, "prefix", pat
		}
	}
	h, _, _ := m.resolveHTTP(code, app)
	if v, ok := m.grpcDefault[h]; ok {
		return v, "default", ""
	}
	return m.fallbackGRPC, "fallback", ""
}

func grpcName(c codes.Code) string {
	return fmt.Sprintf("%s(%d)", strings.ToUpper(c.String()), int(c))
}
