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

package mapper

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"google.golang.org/grpc/codes"
)

func TestDefaults_FollowAppCode(t *testing.T) {
	m, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	check := func(code string, app int, wantHTTP int, wantGRPC codes.Code) {
		t.Helper()
		st := m.Status(code, app)
		if st.HTTP != wantHTTP || st.GRPC != wantGRPC {
			t.Fatalf("Status(%q, %d) got HTTP=%d GRPC=%v; want HTTP=%d GRPC=%v",
				code, app, st.HTTP, st.GRPC, wantHTTP, wantGRPC)
		}
	}
	check("0AIP", 400, 400, codes.InvalidArgument)
	check("0ANF", 404, 404, codes.NotFound)
	check("0AISE", 500, 500, codes.Internal)
	check("0XTM", 429, 429, codes.ResourceExhausted)
	// valid status without a gRPC entry
	check("0XTP", 418, 418, codes.Internal)
	// app codes that are not HTTP statuses fall back
	check("01IC", 7, 500, codes.Internal)
	check("01IC", 0, 500, codes.Internal)
	check("01IC", 600, 500, codes.Internal)
}

func TestPriority_OverrideOverPrefixOverAppCode_HTTP(t *testing.T) {
	m, err := New(
		WithHTTPPrefix("0A", 503),
		WithHTTPOverride("0ANF", 410),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := m.HTTPStatus("0ANF", 404); got != 410 {
		t.Fatalf("override must win; got %d, want 410", got)
	}
	if got := m.HTTPStatus("0AIP", 400); got != 503 {
		t.Fatalf("prefix must beat app code; got %d, want 503", got)
	}
	if got := m.HTTPStatus("0BIP", 400); got != 400 {
		t.Fatalf("app code must apply outside the prefix; got %d, want 400", got)
	}
}

func TestPriority_OverrideOverPrefixOverDefault_GRPC(t *testing.T) {
	m, err := New(
		WithGRPCPrefix("0A", codes.Unavailable),
		WithGRPCOverride("0ANF", codes.Aborted),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := m.GRPCStatus("0ANF", 404); got != codes.Aborted {
		t.Fatalf("override must win; got %v, want %v", got, codes.Aborted)
	}
	if got := m.GRPCStatus("0AIP", 400); got != codes.Unavailable {
		t.Fatalf("prefix must win; got %v", got)
	}
	if got := m.GRPCStatus("0BIP", 400); got != codes.InvalidArgument {
		t.Fatalf("default table must apply; got %v", got)
	}
}

func TestGRPCDefault_FollowsResolvedHTTP(t *testing.T) {
	m, err := New(WithHTTPOverride("0AIP", 503))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := m.GRPCStatus("0AIP", 400); got != codes.Unavailable {
		t.Fatalf("gRPC default must use the overridden HTTP status; got %v", got)
	}
}

func TestWithGRPCDefault(t *testing.T) {
	m, err := New(WithGRPCDefault(409, codes.Aborted), WithGRPCDefault(418, codes.Unimplemented))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := m.GRPCStatus("0AC", 409); got != codes.Aborted {
		t.Fatalf("got %v; want Aborted", got)
	}
	if got := m.GRPCStatus("0AT", 418); got != codes.Unimplemented {
		t.Fatalf("got %v; want Unimplemented", got)
	}
}

func TestPrefix_LongestWins(t *testing.T) {
	m, err := New(
		WithHTTPPrefix("0A", 503),
		WithHTTPPrefix("0AIS", 502),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := m.HTTPStatus("0AISE", 500); got != 502 {
		t.Fatalf("LPM failed: got %d, want 502", got)
	}
	if got := m.HTTPStatus("0AIP", 400); got != 503 {
		t.Fatalf("shorter prefix failed: got %d, want 503", got)
	}
	// codes are case-sensitive
	if got := m.HTTPStatus("0aIP", 400); got != 400 {
		t.Fatalf("prefix matched a different case: got %d", got)
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		want error
	}{
		{"empty prefix", []Option{WithHTTPPrefix("", 503)}, ErrInvalidPrefix},
		{"bad prefix char", []Option{WithGRPCPrefix("0A.", codes.Unavailable)}, ErrInvalidPrefix},
		{"prefix status", []Option{WithHTTPPrefix("0A", 42)}, ErrInvalidStatus},
		{"override status", []Option{WithHTTPOverride("0AIP", 1000)}, ErrInvalidStatus},
		{"empty http override", []Option{WithHTTPOverride("", 400)}, ErrEmptyCode},
		{"empty grpc override", []Option{WithGRPCOverride("", codes.Internal)}, ErrEmptyCode},
		{"grpc default key", []Option{WithGRPCDefault(0, codes.Internal)}, ErrInvalidStatus},
		{"grpc override code", []Option{WithGRPCOverride("0AIP", codes.Code(99))}, ErrInvalidGRPCCode},
		{"grpc prefix code", []Option{WithGRPCPrefix("0A", codes.Code(17))}, ErrInvalidGRPCCode},
		{"grpc default code", []Option{WithGRPCDefault(503, codes.Code(1<<20))}, ErrInvalidGRPCCode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New(tt.opts...)
			if err == nil {
				t.Fatalf("New() = %v, nil; want error", m)
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("New() error = %v; want %v", err, tt.want)
			}
		})
	}
}

func TestNew_ReportsAllProblems(t *testing.T) {
	_, err := New(WithHTTPPrefix("", 503), WithHTTPOverride("0AIP", 42))
	if err == nil {
		t.Fatal("want error")
	}
	if !errors.Is(err, ErrInvalidPrefix) || !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("both problems must be reported, got: %v", err)
	}
}

func TestNew_AcceptsEveryCanonicalGRPCCode(t *testing.T) {
	for c := codes.OK; c <= codes.Unauthenticated; c++ {
		if _, err := New(WithGRPCOverride("0AIP", c), WithGRPCPrefix("0A", c), WithGRPCDefault(503, c)); err != nil {
			t.Fatalf("New() with %v: %v", c, err)
		}
	}
}

func TestHTTPFromGRPC(t *testing.T) {
	tests := []struct {
		in   codes.Code
		want int
	}{
		{codes.OK, 200},
		{codes.InvalidArgument, 400},
		{codes.NotFound, 404},
		{codes.PermissionDenied, 403},
		{codes.Unauthenticated, 401},
		{codes.Unavailable, 503},
		{codes.Canceled, 499},
		{codes.Code(99), 500},
	}
	for _, tt := range tests {
		if got := HTTPFromGRPC(tt.in); got != tt.want {
			t.Fatalf("HTTPFromGRPC(%v) = %d; want %d", tt.in, got, tt.want)
		}
	}
}

func TestExplain_Sources(t *testing.T) {
	m, _ := New(WithHTTPPrefix("0AIS", 503), WithGRPCOverride("0AIP", codes.OutOfRange))

	exp := m.Explain("0AISE", 500)
	if !strings.Contains(exp, `source=prefix pattern="0AIS"`) {
		t.Fatalf("Explain missing prefix pattern: %s", exp)
	}
	exp = m.Explain("0AIP", 400)
	if !strings.Contains(exp, "http: source=app_code -> 400") || !strings.Contains(exp, "grpc: source=override") {
		t.Fatalf("Explain missing sources: %s", exp)
	}
	exp = m.Explain("01IC", 7)
	if !strings.Contains(exp, "http: source=fallback -> 500") {
		t.Fatalf("Explain missing fallback: %s", exp)
	}
}

func TestBuilder_IsNotShared(t *testing.T) {
	m1, _ := New(WithHTTPOverride("0AIP", 409))
	m2, _ := New()
	if m2.HTTPStatus("0AIP", 400) != 400 {
		t.Fatal("options leaked across mappers")
	}
	if m1.HTTPStatus("0AIP", 400) != 409 {
		t.Fatal("override lost")
	}
}

func TestConcurrency_MapperStatus(t *testing.T) {
	m, _ := New(WithHTTPPrefix("0A", 503), WithGRPCPrefix("0A", codes.Unavailable))
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				st := m.Status("0AISE", 500)
				if st.HTTP != 503 || st.GRPC != codes.Unavailable {
					t.Errorf("unexpected status: %+v", st)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func BenchmarkMapperStatus_AppCode(b *testing.B) {
	m, _ := New()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = m.Status("0ANF", 404)
	}
}

func BenchmarkMapperStatus_PrefixHit(b *testing.B) {
	m, _ := New(WithHTTPPrefix("0AIS", 503), WithGRPCPrefix("0AIS", codes.Unavailable))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = m.Status("0AISE", 500)
	}
}

func BenchmarkMapperStatus_Override(b *testing.B) {
	m, _ := New(WithHTTPOverride("0AUE", 502), WithGRPCOverride("0AUE", codes.Unavailable))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = m.Status("0AUE", 500)
	}
}
