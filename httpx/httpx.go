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

package httpx

import (
	"net/http"

	"dirpx.dev/errcode"
	"dirpx.dev/errcode/logx"
	"dirpx.dev/errcode/mapper"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"google.golang.org/grpc/codes"
)

// InternalMsg is the client message sent for errors that carry no
// ErrorInfo or whose ErrorInfo cannot be built.
const InternalMsg = "internal server error"

// Responder turns errors into HTTP responses.
//
// A provider's ErrorInfo becomes a JSON body {"code": ..., "msg": ...} with
// the client message; the status comes from the app code, optionally
// adjusted by Mapper. The server form of every error is logged: at warn
// level when the status is 5xx, at info level otherwise.
//
// Errors without an ErrorInfo, and providers whose metadata is broken, are
// answered with 500 and InternalMsg and logged at error level.
type Responder[T any] struct {
	// AppCode converts the app code to an int for status resolution.
	// Required.
	AppCode func(T) int

	// Mapper adjusts statuses per code. When nil the app code is used as
	// the status if it lies in 100..599, else 500.
	Mapper mapper.Mapper

	Logger zerolog.Logger
}

// Write sends the response for err and returns the status it used.
// A nil err writes nothing and returns 0.
func (r Responder[T]) Write(c *gin.Context, err error) int {
	if err == nil {
		return 0
	}

	info, ok, ierr := errcode.InfoOf[T](err)
	if !ok || ierr != nil {
		ev := r.Logger.Error().Err(err).Str("path", c.Request.URL.Path)
		if ierr != nil {
			ev = ev.AnErr("metadata", ierr)
		}
		ev.Msg("unclassified error")
		var zero T
		c.AbortWithStatusJSON(http.StatusInternalServerError, errcode.NewInfo(zero, "", InternalMsg, ""))
		return http.StatusInternalServerError
	}

	status := r.status(info)
	var ev *zerolog.Event
	if status >= http.StatusInternalServerError {
		ev = r.Logger.Warn()
	} else {
		ev = r.Logger.Info()
	}
	ev.Int(logx.FieldStatus, status).
		Str("path", c.Request.URL.Path).
		Object("error", logx.Info(info)).
		Msgf("%+v", info)

	c.AbortWithStatusJSON(status, info)
	return status
}

func (r Responder[T]) status(info errcode.ErrorInfo[T]) int {
	app := r.AppCode(info.AppCode)
	if r.Mapper != nil {
		return r.Mapper.HTTPStatus(info.Code, app)
	}
	if app < 100 || app > 599 {
		return http.StatusInternalServerError
	}
	return app
}

// Handle adapts an error-returning handler to gin. A returned error is
// written with r unless the handler already wrote a response.
func (r Responder[T]) Handle(h func(*gin.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h(c); err != nil && !c.Writer.Written() {
			r.Write(c, err)
		}
	}
}

// Middleware writes the last error attached with c.Error once the chain has
// run, unless a response was already written.
func (r Responder[T]) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		r.Write(c, c.Errors.Last().Err)
	}
}

// Number converts integer app codes for Responder.AppCode.
func Number[T ~int | ~int32 | ~int64 | ~uint16 | ~uint32](v T) int { return int(v) }

// GRPC converts gRPC app codes for Responder.AppCode.
func GRPC(c codes.Code) int { return mapper.HTTPFromGRPC(c) }
