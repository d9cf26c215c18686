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

package main

import (
	"fmt"

	"dirpx.dev/errcode/apptype"
	"dirpx.dev/errcode/derive"
	"dirpx.dev/errcode/taxonomy"
)

// AppError is the closed set of failures this service reports.
type AppError interface {
	error
	appError()
}

type InvalidParam struct {
	taxonomy.Meta `errinfo:"code=IP,app_code=400"`
	Param         string
}

func (e InvalidParam) Error() string { return "Invalid param: " + e.Param }

type NotFound struct {
	taxonomy.Meta `errinfo:"code=NF,app_code=404"`
	Item          string
}

func (e NotFound) Error() string { return fmt.Sprintf("Item %s not found", e.Item) }

type ServerError struct {
	taxonomy.Meta `errinfo:"code=ISE,app_code=500,client_msg='we had a server problem, please try again later'"`
	Detail        string
}

func (e ServerError) Error() string { return "Internal server error: " + e.Detail }

type Unknown struct {
	taxonomy.Meta `errinfo:"code=UE,app_code=500"`
}

func (Unknown) Error() string { return "Unknown error" }

func (InvalidParam) appError() {}
func (NotFound) appError()     {}
func (ServerError) appError()  {}
func (Unknown) appError()      {}

var appErrors = derive.Must(derive.New[AppError](
	taxonomy.Header{Name: "AppError", Prefix: "0A", AppType: "u16"},
	apptype.Uint16,
	InvalidParam{}, NotFound{}, ServerError{}, Unknown{},
))

// fail wraps e so the responder can find its ErrorInfo.
func fail(e AppError) error { return appErrors.Wrap(e) }
