package netresult

import (
	"context"
	stdjson "encoding/json"
	"errors"
	"net"
	"net/http"
	"syscall"

	"github.com/kbukum/restkit/codec"
)

// StatusError is implemented by transport errors that carry an HTTP response
// status. Detail is the server-provided description of the failure.
type StatusError interface {
	error
	HTTPStatus() int
	Detail() string
}

// Classify maps err to an ErrorInfo. The first matching rule wins:
// unreachable host, timeout, payload encoding, 4xx, 5xx, then unknown.
// A nil err yields nil and an *ErrorInfo is returned as is.
func Classify(err error) *ErrorInfo {
	if err == nil {
		return nil
	}
	var info *ErrorInfo
	if errors.As(err, &info) {
		return info
	}

	switch {
	case isNoInternet(err):
		return NewNoInternet(err)
	case isTimeout(err):
		return NewTimeout(err)
	case isSerialization(err):
		return NewSerialization(err)
	}

	if se, ok := findStatusError(err); ok {
		status := se.HTTPStatus()
		switch {
		case status >= 400 && status < 500:
			info := NewClientError(status, MsgClientError+": "+detail(se))
			info.Cause = err
			return info
		case status >= 500 && status < 600:
			info := NewServerError(status, MsgServerError+": "+detail(se))
			info.Cause = err
			return info
		}
	}

	return NewUnknown(err.Error(), err)
}

func isNoInternet(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	return errors.Is(err, syscall.EHOSTUNREACH) || errors.Is(err, syscall.ENETUNREACH)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	found := false
	walk(err, func(e error) bool {
		if t, ok := e.(interface{ Timeout() bool }); ok && t.Timeout() {
			found = true
		}
		return found
	})
	return found
}

func isSerialization(err error) bool {
	var (
		codecErr       *codec.Error
		syntaxErr      *stdjson.SyntaxError
		typeErr        *stdjson.UnmarshalTypeError
		unsupportedT   *stdjson.UnsupportedTypeError
		unsupportedV   *stdjson.UnsupportedValueError
		marshalerErr   *stdjson.MarshalerError
		invalidUnmarsh *stdjson.InvalidUnmarshalError
	)
	return errors.As(err, &codecErr) ||
		errors.As(err, &syntaxErr) ||
		errors.As(err, &typeErr) ||
		errors.As(err, &unsupportedT) ||
		errors.As(err, &unsupportedV) ||
		errors.As(err, &marshalerErr) ||
		errors.As(err, &invalidUnmarsh)
}

func findStatusError(err error) (StatusError, bool) {
	var se StatusError
	walk(err, func(e error) bool {
		if s, ok := e.(StatusError); ok && s.HTTPStatus() != 0 {
			se = s
			return true
		}
		return false
	})
	return se, se != nil
}

func detail(se StatusError) string {
	if d := se.Detail(); d != "" {
		return d
	}
	return http.StatusText(se.HTTPStatus())
}

// walk visits err and every error it wraps, depth first, until visit
// returns true.
func walk(err error, visit func(error) bool) bool {
	for err != nil {
		if visit(err) {
			return true
		}
		switch u := err.(type) {
		case interface{ Unwrap() error }:
			err = u.Unwrap()
		case interface{ Unwrap() []error }:
			for _, e := range u.Unwrap() {
				if walk(e, visit) {
					return true
				}
			}
			return false
		default:
			return false
		}
	}
	return false
}
