package apiclient

import (
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"strings"

	"github.com/spf13/cast"
)

// RequestOption configures a single call.
type RequestOption func(*callConfig)

type callConfig struct {
	headers http.Header
	query   url.Values
}

func newCallConfig(opts []RequestOption) *callConfig {
	cc := &callConfig{headers: http.Header{}, query: url.Values{}}
	for _, opt := range opts {
		opt(cc)
	}
	return cc
}

// headerMap flattens the headers, joining repeated values with ", ".
func (cc *callConfig) headerMap() map[string]string {
	m := make(map[string]string, len(cc.headers)+2)
	for k, vs := range cc.headers {
		m[k] = strings.Join(vs, ", ")
	}
	return m
}

// WithHeaders sets request headers. Keys are case-insensitive.
func WithHeaders(headers map[string]string) RequestOption {
	return func(cc *callConfig) {
		for k, v := range headers {
			cc.headers.Set(k, v)
		}
	}
}

// WithHeader sets a single request header.
func WithHeader(key, value string) RequestOption {
	return func(cc *callConfig) { cc.headers.Set(key, value) }
}

// WithQuery adds query parameters. Nil values are omitted, slices add one
// parameter per element and other values are converted to strings.
func WithQuery(params map[string]any) RequestOption {
	return func(cc *callConfig) {
		for k, v := range params {
			addQueryValue(cc.query, k, v)
		}
	}
}

// WithRequest applies the headers and parameters collected by b.
func WithRequest(b *RequestBuilder) RequestOption {
	return func(cc *callConfig) {
		if b == nil {
			return
		}
		for k, vs := range b.headers {
			cc.headers[k] = append([]string(nil), vs...)
		}
		for k, v := range b.params {
			addQueryValue(cc.query, k, v)
		}
	}
}

func addQueryValue(q url.Values, key string, value any) {
	if isNil(value) {
		return
	}
	switch v := value.(type) {
	case []byte, string:
		q.Add(key, cast.ToString(v))
		return
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		for i := 0; i < rv.Len(); i++ {
			addQueryValue(q, key, rv.Index(i).Interface())
		}
		return
	}
	q.Add(key, queryString(value))
}

func queryString(v any) string {
	s, err := cast.ToStringE(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return s
}

// isNil reports whether v is nil or a typed nil pointer, map, slice or
// interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
