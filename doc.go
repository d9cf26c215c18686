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

// Package errcode defines the runtime contract of dirpx error taxonomies.
//
// A taxonomy is a closed set of failure variants for one subsystem. Every
// variant carries a permanent diagnostic code (a taxonomy prefix followed by
// a variant suffix), an application-level status and, optionally, a message
// that is safe to show to clients. The derive subpackage validates that
// metadata once and produces a dispatch table; this package defines what the
// table produces:
//
//   - ErrorInfo: the value built for one failure instance;
//   - Provider: the capability of an instance to build its ErrorInfo.
//
// # Two renderings
//
// ErrorInfo has a display form, "[code] client message", returned by String
// and by the %v and %s verbs, and an internal form, "[code] server message",
// returned by Detail and by %+v. Only the display form may leave the
// process. The JSON encoding has exactly two fields, "code" and "msg";
// the app code and the server message are never serialized.
//
// # Client message fallback
//
// When a variant declares no client message, ClientMsg returns the server
// message, i.e. the instance's own Error() text.
package errcode
