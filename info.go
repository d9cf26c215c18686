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

package errcode

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"dirpx.dev/errcode/apptype"
)

// ErrorInfo is the runtime description of one failure instance.
//
// It carries:
//   - AppCode: the parsed application-level status (e.g. an HTTP status). It
//     is a decision input for the boundary and is never serialized;
//   - Code: the permanent diagnostic code (taxonomy prefix + variant suffix);
//   - a client message, safe to disclose to untrusted callers;
//   - a server message, the instance's full diagnostic text, for internal
//     logs only.
//
// ErrorInfo values are immutable and carried by value.
type ErrorInfo[T any] struct {
	AppCode T
	Code    string

	clientMsg string
	serverMsg string
}

// NewInfo assembles an ErrorInfo from already typed parts.
func NewInfo[T any](appCode T, code, clientMsg, serverMsg string) ErrorInfo[T] {
	return ErrorInfo[T]{
		AppCode:   appCode,
		Code:      code,
		clientMsg: clientMsg,
		serverMsg: serverMsg,
	}
}

// Build parses appCode with p and assembles an ErrorInfo. A parse failure is
// returned as *apptype.ParseError; no default app code is substituted.
func Build[T any](p apptype.Parser[T], appCode, code, clientMsg, serverMsg string) (ErrorInfo[T], error) {
	app, err := p.Parse(appCode)
	if err != nil {
		return ErrorInfo[T]{}, err
	}
	return NewInfo(app, code, clientMsg, serverMsg), nil
}

// ClientMsg returns the message meant for clients. When no client message
// was declared it falls back to the server message.
func (i ErrorInfo[T]) ClientMsg() string {
	if i.clientMsg == "" {
		return i.serverMsg
	}
	return i.clientMsg
}

// StoredClientMsg returns the declared client message as is, which may be
// empty.
func (i ErrorInfo[T]) StoredClientMsg() string { return i.clientMsg }

// ServerMsg returns the full diagnostic text of the instance.
func (i ErrorInfo[T]) ServerMsg() string { return i.serverMsg }

// String returns the display form "[code] client message". This is the only
// representation that may reach end users.
func (i ErrorInfo[T]) String() string {
	return "[" + i.Code + "] " + i.ClientMsg()
}

// Detail returns the internal form "[code] server message". It may contain
// stack traces and other sensitive data; use it for internal logs only.
func (i ErrorInfo[T]) Detail() string {
	return "[" + i.Code + "] " + i.serverMsg
}

// Format implements fmt.Formatter.
//
//	%s, %v  display form (String)
//	%+v     internal form (Detail)
//	%q      quoted display form
func (i ErrorInfo[T]) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			_, _ = io.WriteString(s, i.Detail())
			return
		}
		_, _ = io.WriteString(s, i.String())
	case 's':
		_, _ = io.WriteString(s, i.String())
	case 'q':
		_, _ = io.WriteString(s, strconv.Quote(i.String()))
	default:
		_, _ = fmt.Fprintf(s, "%%!%c(errcode.ErrorInfo=%s)", verb, i.String())
	}
}

// wireInfo is the only shape an ErrorInfo takes on the wire.
type wireInfo struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}

// MarshalJSON implements json.Marshaler. Only the code and the client
// message (under "msg") are emitted.
func (i ErrorInfo[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireInfo{Code: i.Code, Msg: i.ClientMsg()})
}

// UnmarshalJSON implements json.Unmarshaler. The decoded value has the
// zero AppCode and no server message.
func (i *ErrorInfo[T]) UnmarshalJSON(b []byte) error {
	var w wireInfo
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	var zero T
	*i = ErrorInfo[T]{AppCode: zero, Code: w.Code, clientMsg: w.Msg}
	return nil
}
