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

package taxonomy

import (
	"encoding"
	"errors"
	"regexp"
)

// Code is one validated segment of a diagnostic code: either a taxonomy
// prefix ("0A") or a variant suffix ("IP"). The full code of a variant is
// the plain concatenation prefix + suffix.
//
// Codes are permanent identifiers that external consumers key on, so unlike
// most identifiers in dirpx they are case-sensitive and never normalized.
type Code string

// MaxLength is the maximum length of a single code segment.
const MaxLength = 32

// codeFmt accepts ASCII letters, digits and underscore, 1..32 characters.
// The upper bound must stay in sync with MaxLength.
const codeFmt = `^[0-9A-Za-z_]{1,32}$`

var codeRe = regexp.MustCompile(codeFmt)

var (
	// ErrCodeEmpty is returned when a required code segment is empty.
	ErrCodeEmpty = errors.New("taxonomy: empty code")

	// ErrCodeInvalid is returned when a code segment contains characters
	// outside [0-9A-Za-z_] or is longer than MaxLength.
	ErrCodeInvalid = errors.New("taxonomy: invalid code")
)

var (
	_ encoding.TextMarshaler   = (*Code)(nil)
	_ encoding.TextUnmarshaler = (*Code)(nil)
)

// Parse validates s as a code segment.
func Parse(s string) (Code, error) {
	if err := validate(s); err != nil {
		return "", err
	}
	return Code(s), nil
}

// MustParse is the panic-on-error variant of Parse.
func MustParse(s string) Code {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Validate checks c. The empty code is invalid.
func Validate(c Code) error {
	return validate(string(c))
}

func (c Code) String() string { return string(c) }

// MarshalText implements encoding.TextMarshaler.
func (c Code) MarshalText() ([]byte, error) {
	if err := Validate(c); err != nil {
		return nil, err
	}
	return []byte(c), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. The text is taken as
// is; padded input is invalid.
func (c *Code) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func validate(s string) error {
	if s == "" {
		return ErrCodeEmpty
	}
	if !codeRe.MatchString(s) {
		return ErrCodeInvalid
	}
	return nil
}
