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
	"strings"

	"dirpx.dev/errcode"
	"dirpx.dev/errcode/taxonomy"
)

// Dispatch maps a failure instance to its ErrorInfo.
//
// The app code is parsed on every call; a malformed app_code yields
// *apptype.ParseError. An instance whose type is not part of the table
// yields errcode.ErrUnknownVariant. Both indicate broken metadata rather
// than bad input, so callers normally treat them as fatal in tests and fall
// back to a generic status in production.
//
// The server message is e.Error(). Dispatch has no side effects.
func (t *Table[E, T]) Dispatch(e E) (errcode.ErrorInfo[T], error) {
	a, ok := t.lookup(e)
	if !ok {
		return errcode.ErrorInfo[T]{}, fmt.Errorf("derive: %w: %T in taxonomy %q", errcode.ErrUnknownVariant, e, t.tax.Name)
	}
	return errcode.Build(t.parser, a.variant.AppCode, a.code, a.variant.ClientMsg, e.Error())
}

// MustDispatch is Dispatch that panics on failure.
func (t *Table[E, T]) MustDispatch(e E) errcode.ErrorInfo[T] {
	info, err := t.Dispatch(e)
	if err != nil {
		panic(err)
	}
	return info
}

// Check parses the app code of every variant and reports all failures.
// Dispatch does the same work lazily; Check lets a test catch a bad
// app_code without constructing an instance of each variant.
func (t *Table[E, T]) Check() error {
	var errs []error
	for _, v := range t.tax.Variants {
		if _, err := t.parser.Parse(v.AppCode); err != nil {
			errs = append(errs, &taxonomy.DefinitionError{Taxonomy: t.tax.Name, Variant: v.Name, Err: err})
		}
	}
	return errors.Join(errs...)
}

// Taxonomy returns a copy of the metadata the table was derived from.
func (t *Table[E, T]) Taxonomy() taxonomy.Taxonomy {
	out := t.tax
	out.Variants = make([]taxonomy.Variant, len(t.tax.Variants))
	copy(out.Variants, t.tax.Variants)
	return out
}

// Codes returns the full codes of all variants in declaration order.
func (t *Table[E, T]) Codes() []string { return t.tax.Codes() }

// Code returns the full code of e without parsing its app code.
func (t *Table[E, T]) Code(e E) (string, bool) {
	a, ok := t.lookup(e)
	return a.code, ok
}

// Explain returns a human-readable trace of how e is dispatched: which
// variant matched, its code, the parsed app code (or the parse failure) and
// where the client message comes from.
//
// Example output:
//
//	taxonomy="AppError" prefix="0A" app_type=u16
//	variant=ServerError code="0AISE"
//	app_code="500" -> 500
//	client_msg=declared "we had a server problem, please try again later"
//
// The format is meant for people, not for parsing.
func (t *Table[E, T]) Explain(e E) string {
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "taxonomy=%q prefix=%q app_type=%s\n", t.tax.Name, t.tax.Prefix, t.tax.AppType)

	a, ok := t.lookup(e)
	if !ok {
		_, _ = fmt.Fprintf(&b, "variant=<unknown> type=%T", e)
		return b.String()
	}
	_, _ = fmt.Fprintf(&b, "variant=%s code=%q\n", a.variant.Name, a.code)

	if v, err := t.parser.Parse(a.variant.AppCode); err != nil {
		_, _ = fmt.Fprintf(&b, "app_code=%q -> error: %v\n", a.variant.AppCode, err)
	} else {
		_, _ = fmt.Fprintf(&b, "app_code=%q -> %v\n", a.variant.AppCode, v)
	}

	if a.variant.ClientMsg == "" {
		_, _ = fmt.Fprint(&b, "client_msg=fallback (instance text)")
	} else {
		_, _ = fmt.Fprintf(&b, "client_msg=declared %q", a.variant.ClientMsg)
	}
	return b.String()
}

func (t *Table[E, T]) lookup(e E) (arm, bool) {
	rt := baseType(reflect.TypeOf(e))
	if rt == nil {
		return arm{}, false
	}
	a, ok := t.arms[rt]
	return a, ok
}

// Instance is a failure instance bound to its table. It implements
// errcode.Provider, so boundary code can find it with errcode.As.
type Instance[E error, T any] struct {
	err   E
	table *Table[E, T]
}

// Wrap binds e to t. The result unwraps to e, so errors.As on the variant
// type keeps working.
func (t *Table[E, T]) Wrap(e E) *Instance[E, T] {
	return &Instance[E, T]{err: e, table: t}
}

func (i *Instance[E, T]) Error() string { return i.err.Error() }

func (i *Instance[E, T]) Unwrap() error { return i.err }

// Variant returns the wrapped instance.
func (i *Instance[E, T]) Variant() E { return i.err }

// ToErrorInfo implements errcode.Provider.
func (i *Instance[E, T]) ToErrorInfo() (errcode.ErrorInfo[T], error) {
	return i.table.Dispatch(i.err)
}

var _ errcode.Provider[int] = (*Instance[error, int])(nil)
