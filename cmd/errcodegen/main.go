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

// Command errcodegen generates Go error taxonomies from a YAML schema.
//
//	errcodegen -in errors.yaml -out errors_gen.go [-pkg app]
//
// Typical use is a go:generate directive next to the schema.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"dirpx.dev/errcode/internal/codegen"
	"dirpx.dev/errcode/taxonomy"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("errcodegen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	in := fs.String("in", "", "YAML schema file (required)")
	out := fs.String("out", "", "output Go file; stdout when empty")
	pkg := fs.String("pkg", "", "package name; defaults to the schema's package")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *in == "" {
		fmt.Fprintln(stderr, "errcodegen: -in is required")
		fmt.Fprintf(stderr, "supported app types: %s\n", strings.Join(codegen.AppTypes(), ", "))
		fs.Usage()
		return 2
	}

	src, err := generate(*in, *pkg)
	if err != nil {
		fmt.Fprintf(stderr, "errcodegen: %v\n", err)
		return 1
	}

	if *out == "" {
		_, err = stdout.Write(src)
	} else {
		err = os.WriteFile(*out, src, 0o644)
	}
	if err != nil {
		fmt.Fprintf(stderr, "errcodegen: %v\n", err)
		return 1
	}
	return 0
}

func generate(path, pkg string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := taxonomy.LoadSchema(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return codegen.Generate(s, pkg)
}
