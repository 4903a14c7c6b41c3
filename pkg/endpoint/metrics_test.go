package endpoint

import (
	"errors"
	"testing"
)

func TestMetricsOutcome(t *testing.T) {
	type testcase struct {
		err    error
		expect string
	}
	cases := []testcase{
		{err: nil, expect: "ok"},
		{err: newRequestError(Cancelled, nil), expect: "cancelled"},
		{err: NewValidationError(404, nil), expect: "not_found"},
		{err: errors.New("mocked"), expect: "other"},
	}
	for _, tc := range cases {
		if got := metricsOutcome(tc.err); got != tc.expect {
			t.Fatal("expected", tc.expect, "got", got)
		}
	}
}
