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

package derive

import (
	"errors"
	"fmt"
	"reflect"

	"dirpx.dev/errcode/apptype"
	"dirpx.dev/errcode/taxonomy"
)

// Definition-time failures specific to binding metadata to Go types. They
// are reported inside *taxonomy.DefinitionError values.
var (
	ErrNilVariant       = errors.New("nil variant prototype")
	ErrDuplicateVariant = errors.New("variant type listed more than once")
	ErrNoParser         = errors.New("app_type parser not initialized")
	ErrAppTypeMismatch  = errors.New("app_type does not match parser")
	ErrUnbound          = errors.New("variant declared without a Go type")
	ErrUnknownBinding   = errors.New("type bound to an undeclared variant")
)

// arm is the precomputed dispatch entry of one variant.
type arm struct {
	variant taxonomy.Variant
	// code is prefix + suffix, computed once at build time.
	code string
}

// Table is the derived dispatch table of one taxonomy. It maps every
// variant type of the closed set E to its metadata and turns failure
// instances into ErrorInfo values whose app code has type T.
//
// A Table is immutable once built and safe for concurrent use.
type Table[E error, T any] struct {
	tax    taxonomy.Taxonomy
	parser apptype.Parser[T]
	arms   map[reflect.Type]arm
}

// New derives a Table from the errinfo tags of the given variant prototypes.
//
// The prototypes enumerate the closed variant set: every one of them must
// carry metadata (see taxonomy.Meta), no type may appear twice, h.AppType
// must name p, and the resulting taxonomy must pass taxonomy.Validate. All
// problems are reported together; on any of them no Table is returned.
//
// Pointer and value prototypes denote the same variant: dispatching either
// &InvalidParam{} or InvalidParam{} selects the same arm.
func New[E error, T any](h taxonomy.Header, p apptype.Parser[T], variants ...E) (*Table[E, T], error) {
	var errs []error
	tax := taxonomy.Taxonomy{Header: h}
	types := make([]reflect.Type, 0, len(variants))
	seen := make(map[reflect.Type]struct{}, len(variants))

	for i, proto := range variants {
		rt := baseType(reflect.TypeOf(proto))
		if rt == nil {
			errs = append(errs, fail(h.Name, fmt.Sprintf("#%d", i), ErrNilVariant))
			continue
		}
		if _, dup := seen[rt]; dup {
			errs = append(errs, fail(h.Name, rt.Name(), ErrDuplicateVariant))
			continue
		}
		seen[rt] = struct{}{}

		v, err := taxonomy.VariantOf(rt)
		if err != nil {
			errs = append(errs, fail(h.Name, rt.Name(), err))
			continue
		}
		tax.Variants = append(tax.Variants, v)
		types = append(types, rt)
	}
	return build[E](tax, p, types, errs)
}

// FromTaxonomy derives a Table from metadata declared outside of Go code
// (typically a YAML schema, see taxonomy.LoadSchema). bindings maps each
// variant name to a prototype of its Go type.
//
// The declared variant set and the bound type set must be identical: a
// declared variant without a binding and a binding without a declared
// variant are both definition errors.
func FromTaxonomy[E error, T any](t taxonomy.Taxonomy, p apptype.Parser[T], bindings map[string]E) (*Table[E, T], error) {
	var errs []error
	types := make([]reflect.Type, 0, len(t.Variants))
	seen := make(map[reflect.Type]string, len(bindings))

	for _, v := range t.Variants {
		proto, ok := bindings[v.Name]
		if !ok {
			errs = append(errs, fail(t.Name, v.Name, ErrUnbound))
			types = append(types, nil)
			continue
		}
		rt := baseType(reflect.TypeOf(proto))
		switch other, dup := seen[rt]; {
		case rt == nil:
			errs = append(errs, fail(t.Name, v.Name, ErrNilVariant))
		case dup:
			errs = append(errs, fail(t.Name, v.Name, fmt.Errorf("%w (%s also bound to %s)", ErrDuplicateVariant, rt, other)))
		default:
			seen[rt] = v.Name
		}
		types = append(types, rt)
	}
	for name := range bindings {
		if _, ok := t.Lookup(name); !ok {
			errs = append(errs, fail(t.Name, name, ErrUnknownBinding))
		}
	}
	return build[E](t, p, types, errs)
}

// Must panics if err is non-nil. It is meant for package-level tables, so
// that a malformed taxonomy stops the process at start-up:
//
//	var appErrors = derive.Must(derive.New[AppError](hdr, apptype.Uint16, ...))
func Must[E error, T any](t *Table[E, T], err error) *Table[E, T] {
	if err != nil {
		panic(err)
	}
	return t
}

// build validates tax against p and freezes the arms. types[i] is the Go
// type of tax.Variants[i].
func build[E error, T any](tax taxonomy.Taxonomy, p apptype.Parser[T], types []reflect.Type, errs []error) (*Table[E, T], error) {
	if !p.Valid() {
		errs = append(errs, fail(tax.Name, "", ErrNoParser))
	} else if tax.AppType != "" && tax.AppType != p.Name() {
		errs = append(errs, fail(tax.Name, "", fmt.Errorf("%w: declared %q, parser %q", ErrAppTypeMismatch, tax.AppType, p.Name())))
	}
	if err := tax.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("derive: taxonomy %q: %w", tax.Name, err)
	}

	variants := make([]taxonomy.Variant, len(tax.Variants))
	copy(variants, tax.Variants)
	tax.Variants = variants

	arms := make(map[reflect.Type]arm, len(types))
	for i, rt := range types {
		v := tax.Variants[i]
		arms[rt] = arm{variant: v, code: tax.FullCode(v)}
	}
	return &Table[E, T]{tax: tax, parser: p, arms: arms}, nil
}

func baseType(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

func fail(tax, variant string, err error) error {
	return &taxonomy.DefinitionError{Taxonomy: tax, Variant: variant, Err: err}
}
