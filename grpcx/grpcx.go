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

package grpcx

import (
	"context"

	"dirpx.dev/errcode"
	"dirpx.dev/errcode/logx"
	"dirpx.dev/errcode/mapper"
	"github.com/rs/zerolog"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
)

// InternalMsg is the status message sent for errors that carry no
// ErrorInfo or whose ErrorInfo cannot be built.
const InternalMsg = "internal error"

// MetadataMsg is the errdetails.ErrorInfo metadata key holding the client
// message.
const MetadataMsg = "msg"

// CodeFunc picks the gRPC code for an ErrorInfo.
type CodeFunc[T any] func(errcode.ErrorInfo[T]) codes.Code

// Direct is the CodeFunc for taxonomies whose app_type is grpc_code.
func Direct(info errcode.ErrorInfo[codes.Code]) codes.Code { return info.AppCode }

// FromHTTP builds a CodeFunc for taxonomies whose app codes are HTTP
// statuses. A nil m uses the default mapper.
func FromHTTP[T any](m mapper.Mapper, appCode func(T) int) CodeFunc[T] {
	if m == nil {
		m, _ = mapper.New()
	}
	return func(info errcode.ErrorInfo[T]) codes.Code {
		return m.GRPCStatus(info.Code, appCode(info.AppCode))
	}
}

// Converter turns errors into gRPC statuses.
//
// The status message is the display form "[code] client message"; an
// errdetails.ErrorInfo detail carries the code as Reason and the client
// message under MetadataMsg. The server message is only logged.
type Converter[T any] struct {
	// Domain is the errdetails.ErrorInfo domain, typically the service name.
	Domain string
	// Code is required.
	Code   CodeFunc[T]
	Logger zerolog.Logger
}

// Status converts err. Errors that already are gRPC statuses pass through
// unchanged; errors without an ErrorInfo become codes.Internal with
// InternalMsg. A nil err yields nil.
func (c Converter[T]) Status(err error) *status.Status {
	if err == nil {
		return nil
	}

	info, ok, ierr := errcode.InfoOf[T](err)
	if !ok {
		if st, isStatus := status.FromError(err); isStatus {
			return st
		}
	}
	if !ok || ierr != nil {
		ev := c.Logger.Error().Err(err)
		if ierr != nil {
			ev = ev.AnErr("metadata", ierr)
		}
		ev.Msg("unclassified error")
		return status.New(codes.Internal, InternalMsg)
	}

	code := c.Code(info)
	var ev *zerolog.Event
	if mapper.HTTPFromGRPC(code) >= 500 {
		ev = c.Logger.Warn()
	} else {
		ev = c.Logger.Info()
	}
	ev.Str(logx.FieldStatus, code.String()).
		Object("error", logx.Info(info)).
		Msgf("%+v", info)

	st := status.New(code, info.String())
	withDetails, derr := st.WithDetails(&errdetails.ErrorInfo{
		Reason:   info.Code,
		Domain:   c.Domain,
		Metadata: map[string]string{MetadataMsg: info.ClientMsg()},
	})
	if derr != nil {
		return st
	}
	return withDetails
}

// UnaryServerInterceptor converts handler errors with c.
func (c Converter[T]) UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err == nil {
			return resp, nil
		}
		return nil, c.Status(err).Err()
	}
}

// ExtractInfo pulls the errdetails.ErrorInfo detail out of a gRPC error, if
// present. Useful in tests and client code.
func ExtractInfo(err error) (*errdetails.ErrorInfo, bool) {
	if err == nil {
		return nil, false
	}
	st, ok := status.FromError(err)
	if !ok {
		return nil, false
	}
	for _, d := range st.Details() {
		if ei, ok := d.(*errdetails.ErrorInfo); ok {
			return ei, true
		}
	}
	return nil, false
}

// ClientInfo rebuilds the client view of an ErrorInfo from a gRPC error:
// the status code as app code, the diagnostic code and the client message.
// The server message is never transmitted, so it is empty.
func ClientInfo(err error) (errcode.ErrorInfo[codes.Code], bool) {
	ei, ok := ExtractInfo(err)
	if !ok {
		return errcode.ErrorInfo[codes.Code]{}, false
	}
	return errcode.NewInfo(status.Code(err), ei.GetReason(), ei.GetMetadata()[MetadataMsg], ""), true
}

// DescribeStatus renders st with its details as protobuf JSON, for logs.
// The exact spacing is not stable.
func DescribeStatus(st *status.Status) string {
	if st == nil {
		return "{}"
	}
	b, err := protojson.Marshal(st.Proto())
	if err != nil {
		return st.String()
	}
	return string(b)
}
