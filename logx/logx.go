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

package logx

import (
	"fmt"
	"io"
	"os"
	"strings"

	"dirpx.dev/errcode"
	"github.com/rs/zerolog"
)

// Field names used for error info in log events.
const (
	FieldCode      = "code"
	FieldAppCode   = "app_code"
	FieldMsg       = "msg"
	FieldServerMsg = "server_msg"
	FieldStatus    = "status"
	FieldComponent = "component"
)

// New builds a logger from cfg, writing to the configured output.
// An unknown level falls back to info.
func New(cfg Config) zerolog.Logger {
	cfg.ApplyDefaults()
	return NewWriter(cfg, outputWriter(cfg.Output))
}

// NewWriter is New with an explicit destination.
func NewWriter(cfg Config, w io.Writer) zerolog.Logger {
	cfg.ApplyDefaults()
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var zl zerolog.Logger
	if strings.EqualFold(cfg.Format, "console") {
		zl = zerolog.New(zerolog.ConsoleWriter{
			Out:        w,
			NoColor:    cfg.NoColor,
			TimeFormat: "15:04:05",
		})
	} else {
		zl = zerolog.New(w)
	}
	zl = zl.Level(level)
	if cfg.Timestamp {
		zl = zl.With().Timestamp().Logger()
	}
	return zl
}

// Component returns l tagged with a component name.
func Component(l zerolog.Logger, name string) zerolog.Logger {
	return l.With().Str(FieldComponent, name).Logger()
}

func outputWriter(output string) io.Writer {
	if strings.EqualFold(output, "stderr") {
		return os.Stderr
	}
	return os.Stdout
}

// infoObject renders an ErrorInfo for internal logs. Unlike the JSON body
// sent to clients it includes the app code and the server message.
type infoObject[T any] struct {
	info errcode.ErrorInfo[T]
}

// Info returns a zerolog object for info:
//
//	log.Warn().Object("error", logx.Info(info)).Msg("request failed")
func Info[T any](info errcode.ErrorInfo[T]) zerolog.LogObjectMarshaler {
	return infoObject[T]{info: info}
}

func (o infoObject[T]) MarshalZerologObject(e *zerolog.Event) {
	e.Str(FieldCode, o.info.Code)
	appCode(e, o.info.AppCode)
	e.Str(FieldMsg, o.info.ClientMsg())
	e.Str(FieldServerMsg, o.info.ServerMsg())
}

// appCode writes numbers as numbers and everything else through its
// String method, so gRPC codes log as names.
func appCode(e *zerolog.Event, v any) {
	switch x := v.(type) {
	case int:
		e.Int(FieldAppCode, x)
	case int32:
		e.Int32(FieldAppCode, x)
	case int64:
		e.Int64(FieldAppCode, x)
	case uint16:
		e.Uint16(FieldAppCode, x)
	case uint32:
		e.Uint32(FieldAppCode, x)
	case uint64:
		e.Uint64(FieldAppCode, x)
	case fmt.Stringer:
		e.Str(FieldAppCode, x.String())
	default:
		e.Interface(FieldAppCode, x)
	}
}
