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

// Option configures the Mapper at build time.
// All options are applied to an internal builder and then frozen into
// an immutable Mapper by New.
type Option func(*builder)

// WithHTTPOverride registers an exact HTTP status for a full diagnostic code
// (prefix + variant code, e.g. "0AIP"). Overrides win over every other tier.
func WithHTTPOverride(code string, http int) Option {
	return func(b *builder) { b.httpOverride[code] = http }
}

// WithGRPCOverride registers an exact gRPC code for a full diagnostic code.
func WithGRPCOverride(code string, grpc codes.Code) Option {
	return func(b *builder) { b.grpcOverride[code] = grpc }
}

// WithHTTPPrefix adds an HTTP longest-prefix-match rule over full codes.
// A rule for a taxonomy prefix ("0A") covers all of its variants; a longer
// prefix wins.
func WithHTTPPrefix(prefix string, http int) Option {
	return func(b *builder) { b.httpPrefixes = append(b.httpPrefixes, prefixRule{prefix, http}) }
}

// WithGRPCPrefix adds a gRPC longest-prefix-match rule over full codes.
func WithGRPCPrefix(prefix string, grpc codes.Code) Option {
	return func(b *builder) { b.grpcPrefixes = append(b.grpcPrefixes, prefixRule{prefix, int(grpc)}) }
}

// WithGRPCDefault replaces the built-in gRPC code used for a resolved HTTP
// status when no gRPC override or prefix rule matches.
func WithGRPCDefault(http int, grpc codes.Code) Option {
	return func(b *builder) { b.grpcDefaults[http] = grpc }
}
