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
	"net/http"

	"google.golang.org/grpc/codes"
)

type prefixRule struct {
	// prefix is the raw full-code prefix; it is validated when the trie is built.
	prefix string
	// val is the transport status to apply when this prefix matches.
	// gRPC rules keep the code as int until New converts it.
	val int
}

type builder struct {
	// httpOverride holds exact per-code HTTP statuses.
	httpOverride map[string]int
	// grpcOverride holds exact per-code gRPC codes.
	grpcOverride map[string]codes.Code

	// httpPrefixes and grpcPrefixes hold LPM rules, compiled into tries by New.
	httpPrefixes []prefixRule
	grpcPrefixes []prefixRule

	// grpcDefaults maps a resolved HTTP status to a gRPC code.
	grpcDefaults map[int]codes.Code

	// fallbacks used when nothing else applies.
	fallbackHTTP int
	fallbackGRPC codes.Code
}

func newBuilder() *builder {
	return &builder{
		httpOverride: make(map[string]int),
		grpcOverride: make(map[string]codes.Code),
		grpcDefaults: make(map[int]codes.Code, len(defaultGRPC)),

		fallbackHTTP: http.StatusInternalServerError,
		fallbackGRPC: codes.Internal,
	}
}
