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
	"reflect"
	"strings"
)

// TagKey is the struct tag key that carries variant metadata.
const TagKey = "errinfo"

// Meta marks a struct type as a taxonomy variant. Embed it and attach the
// variant metadata as a struct tag:
//
//	type InvalidParam struct {
//	    taxonomy.Meta `errinfo:"code=IP,app_code=400"`
//	    Param string
//	}
//
// Values containing commas are single-quoted:
//
//	taxonomy.Meta `errinfo:"code=ISE,app_code=500,client_msg='oops, try later'"`
type Meta struct{}

var metaType = reflect.TypeOf(Meta{})

// ErrBadTag is returned for malformed errinfo tags.
var ErrBadTag = errors.New("malformed errinfo tag")

// ParseTag parses the value of an errinfo struct tag into a Variant with an
// empty Name. Recognized keys are code, app_code and client_msg; unknown or
// repeated keys are rejected. Missing keys are left empty so that
// Taxonomy.Validate can report them together with everything else.
func ParseTag(tag string) (Variant, error) {
	var v Variant
	seen := make(map[string]bool, 3)
	rest := tag
	for {
		rest = strings.TrimLeft(rest, " ")
		if rest == "" {
			return v, nil
		}
		eq := strings.IndexByte(rest, '=')
		if eq <= 0 {
			return Variant{}, fmt.Errorf("%w: expected key=value in %q", ErrBadTag, rest)
		}
		key := strings.TrimSpace(rest[:eq])
		rest = strings.TrimLeft(rest[eq+1:], " ")

		var val string
		if strings.HasPrefix(rest, "'") {
			end := strings.IndexByte(rest[1:], '\'')
			if end < 0 {
				return Variant{}, fmt.Errorf("%w: unterminated quote for %q", ErrBadTag, key)
			}
			val = rest[1 : end+1]
			rest = strings.TrimLeft(rest[end+2:], " ")
			if rest != "" && rest[0] != ',' {
				return Variant{}, fmt.Errorf("%w: unexpected %q after %q", ErrBadTag, rest, key)
			}
		} else {
			comma := strings.IndexByte(rest, ',')
			if comma < 0 {
				comma = len(rest)
			}
			val = strings.TrimSpace(rest[:comma])
			rest = rest[comma:]
		}
		rest = strings.TrimPrefix(rest, ",")

		if seen[key] {
			return Variant{}, fmt.Errorf("%w: repeated key %q", ErrBadTag, key)
		}
		seen[key] = true

		switch key {
		case "code":
			v.Code = Code(val)
		case "app_code":
			v.AppCode = val
		case "client_msg":
			v.ClientMsg = val
		default:
			return Variant{}, fmt.Errorf("%w: unknown key %q", ErrBadTag, key)
		}
	}
}

// VariantOf reads the metadata declared on the variant type t (a struct or
// a pointer to one) through an embedded or named Meta field. The returned
// Variant is named after the struct type.
func VariantOf(t reflect.Type) (Variant, error) {
	if t == nil {
		return Variant{}, fmt.Errorf("nil variant type: %w", ErrMissingMetadata)
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return Variant{}, fmt.Errorf("%s is not a struct: %w", t, ErrMissingMetadata)
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Type != metaType {
			continue
		}
		tag, ok := f.Tag.Lookup(TagKey)
		if !ok {
			return Variant{}, fmt.Errorf("%s: Meta field without %s tag: %w", t.Name(), TagKey, ErrMissingMetadata)
		}
		v, err := ParseTag(tag)
		if err != nil {
			return Variant{}, fmt.Errorf("%s: %w", t.Name(), err)
		}
		v.Name = t.Name()
		return v, nil
	}
	return Variant{}, fmt.Errorf("%s: %w", t.Name(), ErrMissingMetadata)
}
