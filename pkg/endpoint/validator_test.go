package endpoint

import (
	"errors"
	"net/http"
	"net/url"
	"testing"
)

func newTestResponse(status int, contentType string) *Response {
	header := http.Header{}
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	return &Response{StatusCode: status, Header: header}
}

func newTestWireRequest() *WireRequest {
	return &WireRequest{
		Method: "GET",
		URL:    &url.URL{Scheme: "https", Host: "x", Path: "/api"},
		Header: http.Header{"Accept-Encoding": {"gzip"}},
	}
}

func TestValidatorValidate(t *testing.T) {
	t.Run("a 200 response with an accepted type is valid", func(t *testing.T) {
		v := &Validator{AcceptedMimeTypes: []string{"application/json"}}
		resp := newTestResponse(200, "application/json; charset=utf-8")
		if err := v.Validate([]byte("{}"), resp, newTestWireRequest()); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("without a response we fail with InvalidResponseShape", func(t *testing.T) {
		v := &Validator{}
		err := v.Validate([]byte("{}"), nil, newTestWireRequest())
		if !errors.Is(err, ErrInvalidResponseShape) {
			t.Fatal("unexpected error", err)
		}
	})

	t.Run("without a body we fail with NoData", func(t *testing.T) {
		v := &Validator{}
		err := v.Validate(nil, newTestResponse(200, "application/json"), newTestWireRequest())
		if !errors.Is(err, ErrNoData) {
			t.Fatal("unexpected error", err)
		}
	})

	t.Run("an empty body is not the same as no body", func(t *testing.T) {
		v := &Validator{}
		if err := v.Validate([]byte{}, newTestResponse(200, "text/plain"), newTestWireRequest()); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("204 needs neither a body nor a content type", func(t *testing.T) {
		v := &Validator{AcceptedMimeTypes: []string{"application/json"}}
		if err := v.Validate(nil, newTestResponse(204, ""), newTestWireRequest()); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("an unexpected status code yields Unknown with the code", func(t *testing.T) {
		v := &Validator{}
		err := v.Validate([]byte("{}"), newTestResponse(777, "application/json"), newTestWireRequest())
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatal("unexpected error", err)
		}
		if !verr.Equal(NewValidationError(777, nil)) {
			t.Fatal("unexpected validation error", verr)
		}
	})

	t.Run("an explicitly accepted unusual status code is valid", func(t *testing.T) {
		v := &Validator{AcceptedStatusCodes: StatusCodes(777)}
		if err := v.Validate([]byte("{}"), newTestResponse(777, "application/json"), newTestWireRequest()); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("we decode the server error", func(t *testing.T) {
		v := &Validator{}
		body := []byte(`{"error":"not_found","reason":"no such user"}`)
		err := v.Validate(body, newTestResponse(404, "application/json"), newTestWireRequest())
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatal("unexpected error", err)
		}
		expect := NewValidationError(404, DefaultServerError{Name: "not_found", Reason: "no such user"})
		if !verr.Equal(expect) {
			t.Fatal("unexpected validation error", verr)
		}
	})

	t.Run("an undecodable server error degrades to no server error", func(t *testing.T) {
		v := &Validator{}
		err := v.Validate([]byte("<html>"), newTestResponse(500, "text/html"), newTestWireRequest())
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatal("unexpected error", err)
		}
		if verr.Kind != ValidationServerError || verr.ServerError != nil {
			t.Fatal("unexpected validation error", verr)
		}
	})

	t.Run("we use the custom server error decoder", func(t *testing.T) {
		v := &Validator{
			DecodeServerError: func(data []byte) (ServerError, error) {
				return DefaultServerError{Reason: string(data)}, nil
			},
		}
		err := v.Validate([]byte("nope"), newTestResponse(403, ""), newTestWireRequest())
		var verr *ValidationError
		if !errors.As(err, &verr) || verr.Description() != "nope" {
			t.Fatal("unexpected error", err)
		}
	})

	t.Run("an unaccepted media type yields InvalidMimeType", func(t *testing.T) {
		v := &Validator{AcceptedMimeTypes: []string{"foo/bar"}}
		err := v.Validate([]byte("{}"), newTestResponse(200, "application/json"), newTestWireRequest())
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatal("unexpected error", err)
		}
		if !verr.Equal(newInvalidMimeTypeError(200, "application/json")) {
			t.Fatal("unexpected validation error", verr)
		}
	})

	t.Run("a missing content type only matches wildcards", func(t *testing.T) {
		strict := &Validator{AcceptedMimeTypes: []string{"application/json"}}
		err := strict.Validate([]byte("{}"), newTestResponse(200, ""), newTestWireRequest())
		var verr *ValidationError
		if !errors.As(err, &verr) || verr.Kind != ValidationInvalidMimeType || verr.MimeType != "" {
			t.Fatal("unexpected error", err)
		}
		lenient := &Validator{AcceptedMimeTypes: []string{"*/*"}}
		if err := lenient.Validate([]byte("{}"), newTestResponse(200, ""), newTestWireRequest()); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("401 emits the unauthorized notification", func(t *testing.T) {
		var got []*Notification
		req := newTestWireRequest()
		v := &Validator{Events: EventSinkFunc(func(n *Notification) { got = append(got, n) })}
		err := v.Validate([]byte("{}"), newTestResponse(401, "application/json"), req)
		if !errors.Is(err, ErrUnauthorized) {
			t.Fatal("unexpected error", err)
		}
		if len(got) != 1 || got[0].Event != EventUnauthorized || got[0].Request != req {
			t.Fatal("unexpected notifications", got)
		}
	})
}

func TestValidatorDiagnostics(t *testing.T) {
	type testcase struct {
		name      string
		validator *Validator
		body      []byte
		resp      *Response
		expect    int
	}

	large := newTestResponse(200, "application/json")
	large.Header.Set("Content-Length", "6000")

	cases := []testcase{{
		name:      "nothing on success",
		validator: &Validator{},
		body:      []byte("{}"),
		resp:      newTestResponse(200, "application/json"),
		expect:    0,
	}, {
		name:      "one on failure",
		validator: &Validator{},
		body:      nil,
		resp:      newTestResponse(200, "application/json"),
		expect:    1,
	}, {
		name:      "one on success with debug all",
		validator: &Validator{DebugAllHTTP: true},
		body:      []byte("{}"),
		resp:      newTestResponse(200, "application/json"),
		expect:    1,
	}, {
		name:      "one on success with a large response",
		validator: &Validator{},
		body:      []byte("{}"),
		resp:      large,
		expect:    1,
	}, {
		name:      "nothing with a large response below a custom threshold",
		validator: &Validator{MaxResponseSize: 10000},
		body:      []byte("{}"),
		resp:      large,
		expect:    0,
	}}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got []*Diagnostic
			tc.validator.Diagnostics = DiagnosticSinkFunc(func(d *Diagnostic) {
				got = append(got, d)
			})
			_ = tc.validator.Validate(tc.body, tc.resp, newTestWireRequest())
			if len(got) != tc.expect {
				t.Fatal("expected", tc.expect, "diagnostics, got", len(got))
			}
		})
	}
}
