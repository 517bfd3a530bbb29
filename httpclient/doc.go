// Package httpclient is the net/http transport engine.
//
// An Adapter resolves request paths against a base URL, applies default
// headers and a User-Agent, retries server errors with exponential backoff
// and logs each request and response with an X-Request-ID. Every non-2xx
// response is returned as *Error together with the raw Response; the error
// carries the status and a message taken from the response body.
//
//	a, err := httpclient.New(httpclient.Config{
//	    BaseURL:    "https://api.example.com",
//	    MaxRetries: 2,
//	    Logging:    true,
//	}, httpclient.WithLogger(log))
//
//	resp, err := a.Do(ctx, httpclient.Request{
//	    Method: http.MethodGet,
//	    Path:   "/users/123",
//	})
//
// Cancellation of ctx is returned as is (errors.Is(err, context.Canceled));
// deadlines and client timeouts are reported as ErrCodeTimeout.
package httpclient
