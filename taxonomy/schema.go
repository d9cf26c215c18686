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
	"io"

	"gopkg.in/yaml.v3"
)

// Schema is a file-level declaration of one or more taxonomies. It is the
// input of the errcodegen generator and of derive.FromTaxonomy.
//
//	package: app
//	taxonomies:
//	  - name: AppError
//	    prefix: "0A"
//	    app_type: u16
//	    variants:
//	      - name: InvalidParam
//	        code: IP
//	        app_code: "400"
//	      - name: ServerError
//	        code: ISE
//	        app_code: "500"
//	        client_msg: we had a server problem, please try again later
type Schema struct {
	Package    string
	Taxonomies []Taxonomy
}

type yamlSchema struct {
	Package    string         `yaml:"package"`
	Taxonomies []yamlTaxonomy `yaml:"taxonomies"`
}

type yamlTaxonomy struct {
	Name     string        `yaml:"name"`
	Prefix   string        `yaml:"prefix"`
	AppType  string        `yaml:"app_type"`
	Variants []yamlVariant `yaml:"variants"`
}

type yamlVariant struct {
	Name      string `yaml:"name"`
	Code      string `yaml:"code"`
	AppCode   string `yaml:"app_code"`
	ClientMsg string `yaml:"client_msg"`
}

// LoadSchema decodes a YAML schema and validates every taxonomy in it.
// Unknown fields are rejected, as are duplicate taxonomy names.
func LoadSchema(r io.Reader) (Schema, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var raw yamlSchema
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return Schema{}, errors.New("taxonomy: empty schema")
		}
		return Schema{}, fmt.Errorf("taxonomy: decode schema: %w", err)
	}

	out := Schema{Package: raw.Package}
	seen := make(map[string]struct{}, len(raw.Taxonomies))
	var errs []error
	for _, rt := range raw.Taxonomies {
		t := Taxonomy{Header: Header{Name: rt.Name, Prefix: Code(rt.Prefix), AppType: rt.AppType}}
		for _, rv := range rt.Variants {
			t.Variants = append(t.Variants, Variant{
				Name:      rv.Name,
				Code:      Code(rv.Code),
				AppCode:   rv.AppCode,
				ClientMsg: rv.ClientMsg,
			})
		}
		if _, dup := seen[t.Name]; dup {
			errs = append(errs, fmt.Errorf("taxonomy: duplicate taxonomy %q", t.Name))
		}
		seen[t.Name] = struct{}{}
		if err := t.Validate(); err != nil {
			errs = append(errs, err)
		}
		out.Taxonomies = append(out.Taxonomies, t)
	}
	if len(out.Taxonomies) == 0 {
		errs = append(errs, errors.New("taxonomy: schema declares no taxonomies"))
	}
	if err := errors.Join(errs...); err != nil {
		return Schema{}, err
	}
	return out, nil
}

// Lookup returns the taxonomy named name.
func (s Schema) Lookup(name string) (Taxonomy, bool) {
	for _, t := range s.Taxonomies {
		if t.Name == name {
			return t, true
		}
	}
	return Taxonomy{}, false
}
