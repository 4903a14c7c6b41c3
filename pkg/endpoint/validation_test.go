package endpoint

import (
	"errors"
	"testing"
)

func TestNewValidationError(t *testing.T) {
	se := DefaultServerError{Name: "oops", Reason: "bad bad"}

	type testcase struct {
		status      int
		kind        ValidationErrorKind
		serverError ServerError
	}

	cases := []testcase{
		{status: 500, kind: ValidationServerError, serverError: se},
		{status: 532, kind: ValidationServerError, serverError: se},
		{status: 599, kind: ValidationServerError, serverError: se},
		{status: 400, kind: ValidationBadRequest, serverError: se},
		{status: 401, kind: ValidationUnauthorized, serverError: se},
		{status: 402, kind: ValidationPaymentRequired, serverError: nil},
		{status: 403, kind: ValidationForbidden, serverError: se},
		{status: 404, kind: ValidationNotFound, serverError: se},
		{status: 405, kind: ValidationMethodNotAllowed, serverError: nil},
		{status: 302, kind: ValidationUnknown, serverError: nil},
		{status: 600, kind: ValidationUnknown, serverError: nil},
		{status: 777, kind: ValidationUnknown, serverError: nil},
	}

	for _, tc := range cases {
		t.Run(tc.kind.String(), func(t *testing.T) {
			err := NewValidationError(tc.status, se)
			if err.Kind != tc.kind {
				t.Fatal("unexpected kind", err.Kind)
			}
			if err.StatusCode != tc.status {
				t.Fatal("unexpected status", err.StatusCode)
			}
			if err.ServerError != tc.serverError {
				t.Fatal("unexpected server error", err.ServerError)
			}
		})
	}
}

func TestValidationErrorEqual(t *testing.T) {
	t.Run("unknown errors compare the status code", func(t *testing.T) {
		if !NewValidationError(777, nil).Equal(NewValidationError(777, nil)) {
			t.Fatal("expected equal")
		}
		if NewValidationError(777, nil).Equal(NewValidationError(778, nil)) {
			t.Fatal("expected not equal")
		}
	})

	t.Run("server errors compare the payload", func(t *testing.T) {
		left := NewValidationError(500, DefaultServerError{Reason: "a"})
		if !left.Equal(NewValidationError(503, DefaultServerError{Reason: "a"})) {
			t.Fatal("expected equal")
		}
		if left.Equal(NewValidationError(500, DefaultServerError{Reason: "b"})) {
			t.Fatal("expected not equal")
		}
		if left.Equal(NewValidationError(500, nil)) {
			t.Fatal("expected not equal")
		}
	})

	t.Run("invalid mime type errors compare the media type", func(t *testing.T) {
		left := newInvalidMimeTypeError(200, "text/html")
		if !left.Equal(newInvalidMimeTypeError(201, "text/html")) {
			t.Fatal("expected equal")
		}
		if left.Equal(newInvalidMimeTypeError(200, "text/plain")) {
			t.Fatal("expected not equal")
		}
	})

	t.Run("different kinds are not equal", func(t *testing.T) {
		if NewValidationError(404, nil).Equal(NewValidationError(403, nil)) {
			t.Fatal("expected not equal")
		}
	})

	t.Run("payload-less kinds are equal", func(t *testing.T) {
		if !NewValidationError(402, nil).Equal(NewValidationError(402, nil)) {
			t.Fatal("expected equal")
		}
	})

	t.Run("nil handling", func(t *testing.T) {
		var verr *ValidationError
		if !verr.Equal(nil) || verr.Equal(ErrNoData) || ErrNoData.Equal(nil) {
			t.Fatal("unexpected nil equality")
		}
	})
}

func TestValidationErrorIs(t *testing.T) {
	var err error = NewValidationError(404, DefaultServerError{Reason: "gone"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatal("expected ErrNotFound")
	}
	if errors.Is(err, ErrForbidden) {
		t.Fatal("did not expect ErrForbidden")
	}
	if errors.Is(err, ErrConnection) {
		t.Fatal("did not expect ErrConnection")
	}
	if !errors.Is(NewValidationError(777, nil), ErrUnknownStatus) {
		t.Fatal("expected ErrUnknownStatus")
	}
}

func TestValidationErrorError(t *testing.T) {
	type testcase struct {
		err    *ValidationError
		expect string
	}
	cases := []testcase{{
		err:    NewValidationError(404, nil),
		expect: "endpoint: not_found (404)",
	}, {
		err:    newInvalidMimeTypeError(200, "text/html"),
		expect: `endpoint: invalid_mime_type: "text/html"`,
	}, {
		err:    &ValidationError{Kind: ValidationInvalidResponseShape},
		expect: "endpoint: invalid_response_shape",
	}}
	for _, tc := range cases {
		if got := tc.err.Error(); got != tc.expect {
			t.Fatal("expected", tc.expect, "got", got)
		}
	}
}

func TestValidationErrorDescription(t *testing.T) {
	type testcase struct {
		err    *ValidationError
		expect string
	}
	cases := []testcase{
		{err: NewValidationError(107, nil), expect: "An unknown error has occurred."},
		{err: newInvalidMimeTypeError(200, "snoop/dog"), expect: "Invalid mime type: snoop/dog."},
		{err: newInvalidMimeTypeError(200, ""), expect: ""},
		{err: &ValidationError{Kind: ValidationInvalidResponseShape}, expect: ""},
		{err: &ValidationError{Kind: ValidationNoData}, expect: "Server returned no data."},
		{err: NewValidationError(532, DefaultServerError{Name: "serverError", Reason: "bad bad"}), expect: "bad bad"},
		{err: NewValidationError(500, nil), expect: "A server error has occurred."},
		{err: NewValidationError(500, DefaultServerError{Name: "no reason"}), expect: "A server error has occurred."},
		{err: NewValidationError(400, DefaultServerError{Reason: "robot monkey"}), expect: "robot monkey"},
		{err: NewValidationError(400, nil), expect: "The client made a bad request to the server."},
		{err: NewValidationError(401, DefaultServerError{Reason: "bad monkey"}), expect: "bad monkey"},
		{err: NewValidationError(401, nil), expect: "The user is unauthorized."},
		{err: NewValidationError(402, DefaultServerError{Reason: "ignored"}), expect: ""},
		{err: NewValidationError(403, DefaultServerError{Reason: "bad robot"}), expect: "bad robot"},
		{err: NewValidationError(403, nil), expect: "Access is forbidden."},
		{err: NewValidationError(404, DefaultServerError{Reason: "monkey robot"}), expect: "monkey robot"},
		{err: NewValidationError(404, nil), expect: "The requested resource was not found on the server."},
		{err: NewValidationError(405, nil), expect: ""},
	}
	for _, tc := range cases {
		if got := tc.err.Description(); got != tc.expect {
			t.Fatal("expected", tc.expect, "got", got)
		}
	}
}

func TestDecodeDefaultServerError(t *testing.T) {
	t.Run("with a valid payload", func(t *testing.T) {
		se, err := DecodeDefaultServerError([]byte(`{"error":"e","reason":"r","detail":"d"}`))
		if err != nil {
			t.Fatal(err)
		}
		if se.ErrorName() != "e" || se.ErrorReason() != "r" || se.ErrorDetail() != "d" {
			t.Fatal("unexpected server error", se)
		}
	})

	t.Run("with an invalid payload", func(t *testing.T) {
		se, err := DecodeDefaultServerError([]byte(`<html>`))
		if err == nil || se != nil {
			t.Fatal("expected an error")
		}
	})
}
