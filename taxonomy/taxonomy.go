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
	"errors"
	"fmt"
)

// Definition-time failures. They are wrapped in *DefinitionError, so use
// errors.Is to test for them.
var (
	ErrMissingPrefix   = errors.New("missing prefix")
	ErrMissingAppType  = errors.New("missing app_type")
	ErrNoVariants      = errors.New("no variants")
	ErrUnnamedVariant  = errors.New("unnamed variant")
	ErrDuplicateName   = errors.New("duplicate variant name")
	ErrMissingCode     = errors.New("missing code")
	ErrMissingAppCode  = errors.New("missing app_code")
	ErrDuplicateCode   = errors.New("duplicate code")
	ErrMissingMetadata = errors.New("missing error_info metadata")
)

// DefinitionError describes one problem found in taxonomy metadata.
type DefinitionError struct {
	// Taxonomy is the taxonomy name (may be empty for anonymous ones).
	Taxonomy string
	// Variant is the variant name, empty for header problems.
	Variant string
	// Err is the underlying problem, usually one of the Err* sentinels.
	Err error
}

func (e *DefinitionError) Error() string {
	where := e.Taxonomy
	if where == "" {
		where = "<taxonomy>"
	}
	if e.Variant != "" {
		where += "." + e.Variant
	}
	return fmt.Sprintf("taxonomy: %s: %v", where, e.Err)
}

func (e *DefinitionError) Unwrap() error { return e.Err }

// Header is the type-level metadata of a taxonomy.
type Header struct {
	// Name identifies the taxonomy in diagnostics, e.g. "AppError".
	Name string
	// Prefix namespaces every code of the taxonomy.
	Prefix Code
	// AppType names the type app codes parse into, e.g. "u16".
	AppType string
}

// Variant is the metadata of one failure case.
type Variant struct {
	// Name is the variant identifier, e.g. "InvalidParam".
	Name string
	// Code is the variant suffix appended to the taxonomy prefix.
	Code Code
	// AppCode is the string form of the application-level status. It is
	// parsed when an ErrorInfo is dispatched, not here.
	AppCode string
	// ClientMsg is the optional client-facing message.
	ClientMsg string
}

// Taxonomy is the complete metadata of one closed set of failures.
//
// A Taxonomy is plain data: it is validated once, then treated as read-only
// for the lifetime of the process.
type Taxonomy struct {
	Header
	Variants []Variant
}

// FullCode returns prefix + suffix for v.
func (t Taxonomy) FullCode(v Variant) string {
	return string(t.Prefix) + string(v.Code)
}

// Codes returns the full codes of all variants, in declaration order.
func (t Taxonomy) Codes() []string {
	out := make([]string, len(t.Variants))
	for i, v := range t.Variants {
		out[i] = t.FullCode(v)
	}
	return out
}

// Lookup returns the variant named name.
func (t Taxonomy) Lookup(name string) (Variant, bool) {
	for _, v := range t.Variants {
		if v.Name == name {
			return v, true
		}
	}
	return Variant{}, false
}

// Validate checks the header. All problems are reported at once.
func (h Header) Validate() error {
	var errs []error
	switch err := Validate(h.Prefix); {
	case errors.Is(err, ErrCodeEmpty):
		errs = append(errs, h.fail("", ErrMissingPrefix))
	case err != nil:
		errs = append(errs, h.fail("", fmt.Errorf("prefix %q: %w", h.Prefix, err)))
	}
	if h.AppType == "" {
		errs = append(errs, h.fail("", ErrMissingAppType))
	}
	return errors.Join(errs...)
}

// Validate checks the whole taxonomy and reports every problem found, joined
// with errors.Join. A nil result means the taxonomy can be derived.
//
// Full codes must be unique within the taxonomy: two variants sharing a code
// could never be told apart by monitoring or clients.
func (t Taxonomy) Validate() error {
	var errs []error
	if err := t.Header.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(t.Variants) == 0 {
		errs = append(errs, t.fail("", ErrNoVariants))
	}

	names := make(map[string]struct{}, len(t.Variants))
	codes := make(map[string]string, len(t.Variants))
	for i, v := range t.Variants {
		name := v.Name
		if name == "" {
			name = fmt.Sprintf("#%d", i)
			errs = append(errs, t.fail(name, ErrUnnamedVariant))
		} else if _, dup := names[name]; dup {
			errs = append(errs, t.fail(name, ErrDuplicateName))
		}
		names[name] = struct{}{}

		switch err := Validate(v.Code); {
		case errors.Is(err, ErrCodeEmpty):
			errs = append(errs, t.fail(name, ErrMissingCode))
		case err != nil:
			errs = append(errs, t.fail(name, fmt.Errorf("code %q: %w", v.Code, err)))
		default:
			full := t.FullCode(v)
			if other, dup := codes[full]; dup {
				errs = append(errs, t.fail(name, fmt.Errorf("%w %q (also used by %s)", ErrDuplicateCode, full, other)))
			} else {
				codes[full] = name
			}
		}

		if v.AppCode == "" {
			errs = append(errs, t.fail(name, ErrMissingAppCode))
		}
	}
	return errors.Join(errs...)
}

func (h Header) fail(variant string, err error) error {
	return &DefinitionError{Taxonomy: h.Name, Variant: variant, Err: err}
}
