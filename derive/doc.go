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

// Package derive is the derivation engine of dirpx error taxonomies.
//
// # Overview
//
// A taxonomy author declares a closed set of variant types, each carrying
// its metadata as an errinfo struct tag, and derives a dispatch Table once:
//
//	type AppError interface{ error; appError() }
//
//	type InvalidParam struct {
//	    taxonomy.Meta `errinfo:"code=IP,app_code=400"`
//	    Param string
//	}
//
//	var appErrors = derive.Must(derive.New[AppError](
//	    taxonomy.Header{Name: "AppError", Prefix: "0A", AppType: "u16"},
//	    apptype.Uint16,
//	    InvalidParam{}, NotFound{}, ServerError{}, Unknown{},
//	))
//
// # Definition time
//
// New validates everything that can be validated without an instance:
// missing prefix or app_type, a prototype without metadata, duplicate
// prototypes, a missing code or app_code, duplicate full codes, an app_type
// that does not name the parser. Must turns any of these into a panic during
// package initialization, so a broken taxonomy never serves a request.
//
// Go cannot enumerate the implementations of an interface, so the list of
// prototypes is the variant set. An instance of a type missing from the list
// is reported by Dispatch as errcode.ErrUnknownVariant.
//
// # Dispatch time
//
// Dispatch is pure: it looks up the precomputed arm for the instance type,
// parses the app code into T and uses e.Error() as the server message. The
// only failures are metadata defects (*apptype.ParseError or
// errcode.ErrUnknownVariant). Check surfaces bad app codes for every variant
// at once and is meant to be called from tests.
//
// # Immutability
//
// Metadata is copied during New. A Table never changes after construction
// and can be shared by any number of goroutines.
package derive
