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

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"dirpx.dev/errcode/apptype"
)

func TestClientMsg_Fallback(t *testing.T) {
	i := NewInfo(400, "01IC", "", "Invalid command: foo")
	if got := i.ClientMsg(); got != "Invalid command: foo" {
		t.Fatalf("ClientMsg() = %q, want server message", got)
	}
	if i.StoredClientMsg() != "" {
		t.Fatalf("StoredClientMsg() = %q, want empty", i.StoredClientMsg())
	}
}

func TestClientMsg_Declared(t *testing.T) {
	i := NewInfo(400, "01IA", "friendly msg", "Invalid argument: secret detail")
	if got := i.ClientMsg(); got != "friendly msg" {
		t.Fatalf("ClientMsg() = %q, want %q", got, "friendly msg")
	}
}

func TestDisplayAndDetail(t *testing.T) {
	i := NewInfo(500, "0AISE", "we had a server problem", "Internal server error: stack...")

	if got, want := i.String(), "[0AISE] we had a server problem"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
	if got, want := i.Detail(), "[0AISE] Internal server error: stack..."; got != want {
		t.Fatalf("Detail() = %q, want %q", got, want)
	}

	tests := []struct {
		format string
		want   string
	}{
		{"%v", "[0AISE] we had a server problem"},
		{"%s", "[0AISE] we had a server problem"},
		{"%+v", "[0AISE] Internal server error: stack..."},
		{"%q", `"[0AISE] we had a server problem"`},
	}
	for _, tt := range tests {
		if got := fmt.Sprintf(tt.format, i); got != tt.want {
			t.Fatalf("Sprintf(%q) = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestDisplay_NeverLeaksServerMsg(t *testing.T) {
	i := NewInfo(500, "0AISE", "try again later", "password=hunter2")
	if strings.Contains(i.String(), "hunter2") || strings.Contains(fmt.Sprint(i), "hunter2") {
		t.Fatal("display form must not contain the server message when a client message exists")
	}
}

func TestJSON_TwoFieldsOnly(t *testing.T) {
	i := NewInfo(503, "0AUE", "", "Unknown error")
	b, err := json.Marshal(i)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("Unmarshal map: %v", err)
	}
	if len(m) != 2 {
		t.Fatalf("expected exactly two fields, got %v", m)
	}
	if m["code"] != "0AUE" || m["msg"] != "Unknown error" {
		t.Fatalf("unexpected body %s", b)
	}
	for _, k := range []string{"app_code", "AppCode", "server_msg", "client_msg"} {
		if _, ok := m[k]; ok {
			t.Fatalf("field %q must not be serialized: %s", k, b)
		}
	}
}

func TestJSON_RoundTrip(t *testing.T) {
	in := NewInfo(400, "01IA", "friendly msg", "Invalid argument: x")
	b, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var out ErrorInfo[int]
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if out.Code != in.Code || out.ClientMsg() != in.ClientMsg() {
		t.Fatalf("round trip mismatch: got %v, want %v", out, in)
	}
	if out.AppCode != 0 || out.ServerMsg() != "" {
		t.Fatalf("decoded value must not carry app code or server message: %+v", out)
	}
}

func TestJSON_Embedded(t *testing.T) {
	body := struct {
		Error ErrorInfo[int] `json:"error"`
	}{Error: NewInfo(404, "0ANF", "", "Item 7 not found")}
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if got, want := string(b), `{"error":{"code":"0ANF","msg":"Item 7 not found"}}`; got != want {
		t.Fatalf("Marshal = %s, want %s", got, want)
	}
}

func TestBuild(t *testing.T) {
	i, err := Build(apptype.Int, "400", "01IC", "", "Invalid command: foo")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if i.AppCode != 400 || i.Code != "01IC" || i.ClientMsg() != "Invalid command: foo" {
		t.Fatalf("unexpected info %+v", i)
	}

	_, err = Build(apptype.Int, "not-a-number", "01IC", "", "x")
	var pe *apptype.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Build with bad app code: want *apptype.ParseError, got %v", err)
	}
}

type fakeErr struct{ msg string }

func (e fakeErr) Error() string { return e.msg }

func (e fakeErr) ToErrorInfo() (ErrorInfo[int], error) {
	return NewInfo(418, "XXTP", "", e.msg), nil
}

func TestAs_WrapChain(t *testing.T) {
	err := fmt.Errorf("handler: %w", fakeErr{msg: "teapot"})
	p, ok := As[int](err)
	if !ok {
		t.Fatal("As must find provider through wrapping")
	}
	info, perr := p.ToErrorInfo()
	if perr != nil || info.AppCode != 418 {
		t.Fatalf("unexpected info %+v, %v", info, perr)
	}

	if _, ok := As[string](err); ok {
		t.Fatal("As must respect the app type")
	}
	if _, ok := As[int](errors.New("plain")); ok {
		t.Fatal("plain error is not a provider")
	}
	if _, ok := As[int](nil); ok {
		t.Fatal("nil is not a provider")
	}
}

func TestInfoOf(t *testing.T) {
	info, ok, err := InfoOf[int](fakeErr{msg: "teapot"})
	if !ok || err != nil || info.Code != "XXTP" {
		t.Fatalf("InfoOf = %+v, %v, %v", info, ok, err)
	}
	_, ok, _ = InfoOf[int](errors.New("plain"))
	if ok {
		t.Fatal("InfoOf on plain error must report ok=false")
	}
}
