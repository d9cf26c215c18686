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

// Package grpcx converts derived errors into gRPC statuses.
//
// A status carries the code and the client message twice: in the status
// message as "[code] msg" for humans, and in a google.rpc.ErrorInfo detail
// for programs. Clients read it back with ExtractInfo or ClientInfo.
package grpcx
