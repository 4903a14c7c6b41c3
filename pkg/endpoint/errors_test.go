package endpoint

import (
	"context"
	"errors"
	"testing"
)

func TestRequestError(t *testing.T) {
	t.Run("Error", func(t *testing.T) {
		type testcase struct {
			err    *RequestError
			expect string
		}
		cases := []testcase{{
			err:    &RequestError{Kind: ConnectionError, Failure: "connection_refused", Err: errors.New("x")},
			expect: "endpoint: connection_error: connection_refused",
		}, {
			err:    &RequestError{Kind: ParseFailed, Err: errors.New("unexpected EOF")},
			expect: "endpoint: parse_failed: unexpected EOF",
		}, {
			err:    &RequestError{Kind: ServerUnreachable},
			expect: "endpoint: server_unreachable",
		}, {
			err:    &RequestError{Kind: ResponseTooLarge, Err: ErrBodyTooLarge},
			expect: "endpoint: response_too_large: endpoint: response body too large",
		}, {
			err:    &RequestError{Kind: RequestErrorKind(99)},
			expect: "endpoint: RequestErrorKind(99)",
		}}
		for _, tc := range cases {
			if got := tc.err.Error(); got != tc.expect {
				t.Fatal("expected", tc.expect, "got", got)
			}
		}
	})

	t.Run("errors.Is matches the kind and the wrapped error", func(t *testing.T) {
		err := newTransportError(Cancelled, "interrupted", context.Canceled)
		if !errors.Is(err, ErrCancelled) {
			t.Fatal("expected ErrCancelled")
		}
		if errors.Is(err, ErrConnection) {
			t.Fatal("did not expect ErrConnection")
		}
		if !errors.Is(err, context.Canceled) {
			t.Fatal("expected context.Canceled")
		}
	})

	t.Run("errors.As works through wrapping", func(t *testing.T) {
		var rerr *RequestError
		wrapped := errors.Join(errors.New("outer"), newRequestError(NoParser, nil))
		if !errors.As(wrapped, &rerr) || rerr.Kind != NoParser {
			t.Fatal("expected a NoParser error")
		}
	})

	t.Run("Unwrap returns the underlying error", func(t *testing.T) {
		inner := errors.New("inner")
		if newRequestError(RequestBuildFailed, inner).Unwrap() != inner {
			t.Fatal("unexpected unwrap")
		}
	})
}
