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

package errcode

import "errors"

// ErrUnknownVariant is returned by dispatch when an instance does not belong
// to the taxonomy it was handed to.
var ErrUnknownVariant = errors.New("errcode: unknown variant")

// Provider is implemented by failure instances that can describe themselves
// as an ErrorInfo.
//
// The only error ToErrorInfo may return is a metadata defect: an app_code
// that does not parse into T (*apptype.ParseError), or an instance that is
// not part of its taxonomy (ErrUnknownVariant).
type Provider[T any] interface {
	error

	// ToErrorInfo maps the instance to its ErrorInfo.
	ToErrorInfo() (ErrorInfo[T], error)
}

// As finds the first error in err's chain that implements Provider[T].
func As[T any](err error) (Provider[T], bool) {
	if err == nil {
		return nil, false
	}
	var p Provider[T]
	if errors.As(err, &p) {
		return p, true
	}
	return nil, false
}

// InfoOf is a shortcut for As followed by ToErrorInfo. The boolean reports
// whether a provider was found at all.
func InfoOf[T any](err error) (ErrorInfo[T], bool, error) {
	p, ok := As[T](err)
	if !ok {
		return ErrorInfo[T]{}, false, nil
	}
	info, ierr := p.ToErrorInfo()
	return info, true, ierr
}
