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

package apptype

import (
	"errors"
	"fmt"
	"strconv"

	"google.golang.org/grpc/codes"
)

var (
	// ErrEmpty is returned when an empty string is given to a parser.
	ErrEmpty = errors.New("apptype: empty input")

	// ErrOutOfRange is returned when a value parses but falls outside of the
	// domain of the target type (e.g. HTTP status 42).
	ErrOutOfRange = errors.New("apptype: value out of range")
)

// ParseError is the runtime failure produced when an app_code string cannot
// be parsed into its app_type. The input is author-controlled metadata, so a
// ParseError always points at a broken taxonomy definition.
type ParseError struct {
	// Type is the app_type name, e.g. "u16".
	Type string
	// Input is the raw app_code string.
	Input string
	// Err is the underlying parse failure.
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("apptype: cannot parse app_code %q as %s: %v", e.Input, e.Type, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parser turns the string form of an app_code into its typed value.
//
// The zero Parser is not usable; build one with New or use the predefined
// parsers below.
type Parser[T any] struct {
	name  string
	parse func(string) (T, error)
}

// New returns a Parser named name backed by fn. The name is what taxonomy
// metadata refers to as app_type.
func New[T any](name string, fn func(string) (T, error)) Parser[T] {
	return Parser[T]{name: name, parse: fn}
}

// Name returns the app_type name of the parser.
func (p Parser[T]) Name() string { return p.name }

// Valid reports whether p was built with New.
func (p Parser[T]) Valid() bool { return p.name != "" && p.parse != nil }

// Parse converts s into T. Any failure is returned as *ParseError; there is
// no fallback value.
func (p Parser[T]) Parse(s string) (T, error) {
	var zero T
	if !p.Valid() {
		return zero, &ParseError{Type: p.name, Input: s, Err: errors.New("apptype: parser not initialized")}
	}
	if s == "" {
		return zero, &ParseError{Type: p.name, Input: s, Err: ErrEmpty}
	}
	v, err := p.parse(s)
	if err != nil {
		return zero, &ParseError{Type: p.name, Input: s, Err: err}
	}
	return v, nil
}

// Predefined parsers. All of them use strconv, so the result does not depend
// on the process locale.
var (
	// Int parses a base-10 signed integer.
	Int = New("int", strconv.Atoi)

	// Uint16 parses a base-10 unsigned 16-bit integer.
	Uint16 = New("u16", parseUint16)

	// HTTPStatus parses a base-10 HTTP status code in the range 100..599.
	HTTPStatus = New("http_status", parseHTTPStatus)

	// GRPCCode parses either a numeric gRPC code (0..16) or its canonical
	// upper-case name, e.g. "NOT_FOUND".
	GRPCCode = New("grpc_code", parseGRPCCode)
)

func parseUint16(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, err
	}
	return uint16(v), nil
}

func parseHTTPStatus(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if v < 100 || v > 599 {
		return 0, ErrOutOfRange
	}
	return v, nil
}

func parseGRPCCode(s string) (codes.Code, error) {
	if s[0] >= '0' && s[0] <= '9' {
		v, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return 0, err
		}
		if v > uint64(codes.Unauthenticated) {
			return 0, ErrOutOfRange
		}
		return codes.Code(v), nil
	}
	// codes.Code understands quoted canonical names through UnmarshalJSON.
	var c codes.Code
	if err := c.UnmarshalJSON([]byte(strconv.Quote(s))); err != nil {
		return 0, err
	}
	return c, nil
}
