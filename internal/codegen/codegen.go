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

package codegen

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"go/token"
	"sort"
	"strconv"
	"text/template"

	"dirpx.dev/errcode/taxonomy"
)

// ErrUnsupportedAppType is returned for an app_type with no Go mapping.
var ErrUnsupportedAppType = errors.New("codegen: unsupported app_type")

// ErrBadIdentifier is returned when a package, taxonomy or variant name is
// not a valid Go identifier, or when two generated declarations would share
// a name.
var ErrBadIdentifier = errors.New("codegen: not a Go identifier")

// appType is the Go side of one app_type name.
type appType struct {
	GoType string
	Parser string
	Import string
}

var appTypes = map[string]appType{
	"int":         {GoType: "int", Parser: "apptype.Int"},
	"u16":         {GoType: "uint16", Parser: "apptype.Uint16"},
	"http_status": {GoType: "int", Parser: "apptype.HTTPStatus"},
	"grpc_code":   {GoType: "codes.Code", Parser: "apptype.GRPCCode", Import: "google.golang.org/grpc/codes"},
}

// AppTypes returns the supported app_type names, sorted.
func AppTypes() []string {
	out := make([]string, 0, len(appTypes))
	for k := range appTypes {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// scope tracks the package-level identifiers a generated file declares.
type scope map[string]string

// declare records id for owner and fails if another owner already holds it.
func (sc scope) declare(id, owner string) error {
	if prev, ok := sc[id]; ok {
		return fmt.Errorf("%w: %s declared by both %s and %s", ErrBadIdentifier, id, prev, owner)
	}
	sc[id] = owner
	return nil
}

type fileData struct {
	Package    string
	Imports    []string
	Taxonomies []taxData
}

type taxData struct {
	Name     string
	AppType  appType
	Variants []varData
}

type varData struct {
	Name      string
	FullCode  string
	AppCode   string
	ClientMsg string
}

// Generate renders Go source for every taxonomy in s: a kind enum, an error
// type implementing errcode.Provider and an info function with one switch
// arm per variant. pkg overrides s.Package when not empty.
//
// The schema is validated again, so a hand-built Schema gets the same
// definition-time checks as a loaded one.
func Generate(s taxonomy.Schema, pkg string) ([]byte, error) {
	if pkg == "" {
		pkg = s.Package
	}
	if !token.IsIdentifier(pkg) {
		return nil, fmt.Errorf("%w: package %q", ErrBadIdentifier, pkg)
	}

	data := fileData{Package: pkg}
	imports := map[string]bool{
		"fmt":                       true,
		"dirpx.dev/errcode":         true,
		"dirpx.dev/errcode/apptype": true,
	}
	var errs []error
	declared := scope{}
	for _, t := range s.Taxonomies {
		if err := t.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		at, ok := appTypes[t.AppType]
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %q in taxonomy %q", ErrUnsupportedAppType, t.AppType, t.Name))
			continue
		}
		if !token.IsIdentifier(t.Name) || !token.IsExported(t.Name) {
			errs = append(errs, fmt.Errorf("%w: taxonomy %q must be exported", ErrBadIdentifier, t.Name))
			continue
		}
		if at.Import != "" {
			imports[at.Import] = true
		}
		owner := "taxonomy " + t.Name
		for _, id := range []string{t.Name, t.Name + "Kind", t.Name + "Kinds", t.Name + "Info", "New" + t.Name} {
			if err := declared.declare(id, owner); err != nil {
				errs = append(errs, err)
			}
		}
		td := taxData{Name: t.Name, AppType: at}
		for _, v := range t.Variants {
			id := t.Name + v.Name
			if !token.IsIdentifier(id) {
				errs = append(errs, fmt.Errorf("%w: variant %q in taxonomy %q", ErrBadIdentifier, v.Name, t.Name))
				continue
			}
			if err := declared.declare(id, "variant "+t.Name+"."+v.Name); err != nil {
				errs = append(errs, err)
				continue
			}
			td.Variants = append(td.Variants, varData{
				Name:      v.Name,
				FullCode:  t.FullCode(v),
				AppCode:   v.AppCode,
				ClientMsg: v.ClientMsg,
			})
		}
		data.Taxonomies = append(data.Taxonomies, td)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	if len(data.Taxonomies) == 0 {
		return nil, errors.New("codegen: no taxonomies")
	}
	for imp := range imports {
		data.Imports = append(data.Imports, imp)
	}
	sort.Strings(data.Imports)

	var buf bytes.Buffer
	if err := fileTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("codegen: render: %w", err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("codegen: format: %w", err)
	}
	return src, nil
}

var fileTmpl = template.Must(template.New("file").Funcs(template.FuncMap{
	"quote": strconv.Quote,
}).Parse(`// Code generated by errcodegen. DO NOT EDIT.

package {{.Package}}

import (
{{- range .Imports}}
	{{quote .}}
{{- end}}
)
{{range .Taxonomies}}{{$t := .}}
// {{.Name}}Kind enumerates the variants of the {{.Name}} taxonomy.
type {{.Name}}Kind int

const (
{{- range $i, $v := .Variants}}
	{{$t.Name}}{{$v.Name}}{{if eq $i 0}} {{$t.Name}}Kind = iota + 1{{end}}
{{- end}}
)

// {{.Name}}Kinds lists every {{.Name}}Kind in declaration order.
var {{.Name}}Kinds = []{{.Name}}Kind{
{{- range .Variants}}
	{{$t.Name}}{{.Name}},
{{- end}}
}

func (k {{.Name}}Kind) String() string {
	switch k {
{{- range .Variants}}
	case {{$t.Name}}{{.Name}}:
		return {{quote .Name}}
{{- end}}
	}
	return fmt.Sprintf("{{.Name}}Kind(%d)", int(k))
}

// Code returns the full diagnostic code of k, or "" for an unknown kind.
func (k {{.Name}}Kind) Code() string {
	switch k {
{{- range .Variants}}
	case {{$t.Name}}{{.Name}}:
		return {{quote .FullCode}}
{{- end}}
	}
	return ""
}

// {{.Name}}Info builds the ErrorInfo of kind k with diag as server message.
func {{.Name}}Info(k {{.Name}}Kind, diag string) (errcode.ErrorInfo[{{.AppType.GoType}}], error) {
	switch k {
{{- range .Variants}}
	case {{$t.Name}}{{.Name}}:
		return errcode.Build({{$t.AppType.Parser}}, {{quote .AppCode}}, {{quote .FullCode}}, {{quote .ClientMsg}}, diag)
{{- end}}
	}
	return errcode.ErrorInfo[{{.AppType.GoType}}]{}, fmt.Errorf("%w: %s", errcode.ErrUnknownVariant, k)
}

// {{.Name}} is a failure instance of the {{.Name}} taxonomy.
type {{.Name}} struct {
	Kind {{.Name}}Kind
	Msg  string
}

// New{{.Name}} returns a {{.Name}} of kind k with server message msg.
func New{{.Name}}(k {{.Name}}Kind, msg string) *{{.Name}} {
	return &{{.Name}}{Kind: k, Msg: msg}
}

func (e *{{.Name}}) Error() string { return e.Msg }

// ToErrorInfo implements errcode.Provider.
func (e *{{.Name}}) ToErrorInfo() (errcode.ErrorInfo[{{.AppType.GoType}}], error) {
	return {{.Name}}Info(e.Kind, e.Msg)
}
{{end}}`))
