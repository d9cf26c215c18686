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
	"net/http"
	"runtime/debug"

	"dirpx.dev/errcode/httpx"
	"dirpx.dev/errcode/mapper"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func newResponder(cfg Config, log zerolog.Logger) (httpx.Responder[uint16], error) {
	opts := make([]mapper.Option, 0, len(cfg.HTTPOverrides))
	for _, o := range cfg.HTTPOverrides {
		opts = append(opts, mapper.WithHTTPOverride(o.Code, o.Status))
	}
	m, err := mapper.New(opts...)
	if err != nil {
		return httpx.Responder[uint16]{}, err
	}
	return httpx.Responder[uint16]{
		AppCode: httpx.Number[uint16],
		Mapper:  m,
		Logger:  log,
	}, nil
}

func newRouter(r httpx.Responder[uint16]) *gin.Engine {
	router := gin.New()
	router.Use(gin.CustomRecovery(func(c *gin.Context, rec any) {
		r.Logger.Error().Str("panic", fmt.Sprint(rec)).Msg("panic recovered")
		r.Write(c, fail(Unknown{}))
	}))
	router.Use(r.Middleware())

	router.GET("/", r.Handle(func(*gin.Context) error {
		return fail(ServerError{Detail: string(debug.Stack())})
	}))
	router.GET("/items/:id", r.Handle(func(c *gin.Context) error {
		return fail(NotFound{Item: c.Param("id")})
	}))
	router.GET("/params", r.Handle(func(c *gin.Context) error {
		q, ok := c.GetQuery("q")
		if !ok || q == "" {
			return fail(InvalidParam{Param: "q"})
		}
		c.JSON(http.StatusOK, gin.H{"q": q})
		return nil
	}))
	router.GET("/panic", func(*gin.Context) { panic("boom") })
	return router
}
