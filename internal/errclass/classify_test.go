package errclass

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"os"
	"syscall"
	"testing"
)

func TestClassify(t *testing.T) {
	type testcase struct {
		name    string
		err     error
		class   Class
		failure string
	}

	cases := []testcase{{
		name:    "nil error",
		err:     nil,
		class:   ClassNone,
		failure: "",
	}, {
		name:    "context.Canceled",
		err:     context.Canceled,
		class:   ClassCancelled,
		failure: FailureInterrupted,
	}, {
		name:    "wrapped context.Canceled",
		err:     &url.Error{Op: "Get", URL: "https://x/", Err: context.Canceled},
		class:   ClassCancelled,
		failure: FailureInterrupted,
	}, {
		name:    "operation was canceled string",
		err:     errors.New("dial tcp: operation was canceled"),
		class:   ClassCancelled,
		failure: FailureInterrupted,
	}, {
		name:    "context.DeadlineExceeded",
		err:     fmt.Errorf("get: %w", context.DeadlineExceeded),
		class:   ClassConnection,
		failure: FailureGenericTimeoutError,
	}, {
		name:    "host not found",
		err:     &net.DNSError{Err: "no such host", Name: "x.invalid", IsNotFound: true},
		class:   ClassConnection,
		failure: FailureDNSNXDOMAINError,
	}, {
		name:    "DNS timeout",
		err:     &net.DNSError{Err: "timeout", Name: "x.invalid", IsTimeout: true},
		class:   ClassConnection,
		failure: FailureGenericTimeoutError,
	}, {
		name:    "connection refused",
		err:     &net.OpError{Op: "dial", Net: "tcp", Err: os.NewSyscallError("connect", syscall.ECONNREFUSED)},
		class:   ClassConnection,
		failure: FailureConnectionRefused,
	}, {
		name:    "connection reset",
		err:     fmt.Errorf("read: %w", syscall.ECONNRESET),
		class:   ClassConnection,
		failure: FailureConnectionReset,
	}, {
		name:    "network unreachable",
		err:     syscall.ENETUNREACH,
		class:   ClassConnection,
		failure: FailureNetworkUnreachable,
	}, {
		name:    "not connected",
		err:     syscall.ENOTCONN,
		class:   ClassConnection,
		failure: FailureNotConnected,
	}, {
		name:    "connection lost",
		err:     io.ErrUnexpectedEOF,
		class:   ClassConnection,
		failure: FailureEOFError,
	}, {
		name:    "closed connection",
		err:     fmt.Errorf("write: %w", net.ErrClosed),
		class:   ClassConnection,
		failure: FailureConnectionAlreadyClosed,
	}, {
		name:    "i/o timeout string",
		err:     errors.New("read tcp 10.0.0.1:443: i/o timeout"),
		class:   ClassConnection,
		failure: FailureGenericTimeoutError,
	}, {
		name:    "no such host string",
		err:     errors.New("lookup x.invalid: no such host"),
		class:   ClassConnection,
		failure: FailureDNSNXDOMAINError,
	}, {
		name:    "connection refused string",
		err:     errors.New("dial tcp 127.0.0.1:1: connect: connection refused"),
		class:   ClassConnection,
		failure: FailureConnectionRefused,
	}, {
		name:    "unknown error",
		err:     errors.New("antani"),
		class:   ClassUnknown,
		failure: "unknown_failure: antani",
	}, {
		name:    "unrelated errno",
		err:     syscall.EINVAL,
		class:   ClassUnknown,
		failure: "unknown_failure: " + syscall.EINVAL.Error(),
	}}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			class, failure := Classify(tc.err)
			if class != tc.class {
				t.Fatal("expected class", tc.class, "got", class)
			}
			if failure != tc.failure {
				t.Fatal("expected failure", tc.failure, "got", failure)
			}
		})
	}
}

func TestClassString(t *testing.T) {
	cases := map[Class]string{
		ClassNone:       "none",
		ClassCancelled:  "cancelled",
		ClassConnection: "connection",
		ClassUnknown:    "unknown",
		Class(99):       "Class(99)",
	}
	for class, expect := range cases {
		if got := class.String(); got != expect {
			t.Fatal("expected", expect, "got", got)
		}
	}
}
