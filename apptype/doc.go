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

// Package apptype provides typed parsers for application-level status codes.
//
// Taxonomy metadata stores app codes as strings ("400", "NOT_FOUND") and
// names the target type with an app_type string ("u16", "grpc_code"). A
// Parser binds such a name to a Go type and a locale-independent parse
// function. Parsing happens every time an ErrorInfo is dispatched, and a
// failure is reported as *ParseError rather than replaced by a default.
package apptype
