package apiclient

import (
	"maps"
	"net/http"

	"github.com/kbukum/restkit/platform"
)

// RequestBuilder collects headers and query parameters to be applied to a
// call with WithRequest. Header names are case-insensitive; nil parameter
// values are never sent.
type RequestBuilder struct {
	headers http.Header
	params  map[string]any
}

// NewRequestBuilder returns an empty builder.
func NewRequestBuilder() *RequestBuilder {
	return &RequestBuilder{
		headers: http.Header{},
		params:  map[string]any{},
	}
}

// AddHeader sets a header, replacing any previous value.
func (b *RequestBuilder) AddHeader(key, value string) *RequestBuilder {
	b.headers.Set(key, value)
	return b
}

// AddHeaders sets each header in headers.
func (b *RequestBuilder) AddHeaders(headers map[string]string) *RequestBuilder {
	for k, v := range headers {
		b.headers.Set(k, v)
	}
	return b
}

// AddParam sets a query parameter. A nil value removes it.
func (b *RequestBuilder) AddParam(key string, value any) *RequestBuilder {
	if isNil(value) {
		delete(b.params, key)
		return b
	}
	b.params[key] = value
	return b
}

// AddParams sets each parameter in params.
func (b *RequestBuilder) AddParams(params map[string]any) *RequestBuilder {
	for k, v := range params {
		b.AddParam(k, v)
	}
	return b
}

// BearerAuth sets "Authorization: Bearer <token>".
func (b *RequestBuilder) BearerAuth(token string) *RequestBuilder {
	return b.AddHeader("Authorization", "Bearer "+token)
}

// BasicAuth sets "Authorization: Basic base64(username:password)".
func (b *RequestBuilder) BasicAuth(username, password string) *RequestBuilder {
	creds := platform.Base64().EncodeToString([]byte(username + ":" + password))
	return b.AddHeader("Authorization", "Basic "+creds)
}

// Headers returns a copy of the headers keyed by canonical name.
func (b *RequestBuilder) Headers() map[string]string {
	out := make(map[string]string, len(b.headers))
	for k := range b.headers {
		out[k] = b.headers.Get(k)
	}
	return out
}

// Params returns a copy of the query parameters.
func (b *RequestBuilder) Params() map[string]any {
	return maps.Clone(b.params)
}
