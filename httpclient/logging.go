package httpclient

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/restkit/logger"
)

// HeaderRequestID carries the per-request correlation ID.
const HeaderRequestID = "X-Request-ID"

// loggingTransport tags each request with an X-Request-ID and logs the
// request and its response.
type loggingTransport struct {
	next http.RoundTripper
	log  *logger.Logger
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	requestID := req.Header.Get(HeaderRequestID)
	if requestID == "" {
		requestID = uuid.NewString()
		req = req.Clone(req.Context())
		req.Header.Set(HeaderRequestID, requestID)
	}

	fields := logger.RequestFields(req.Method, req.URL.String(), requestID)
	t.log.Info("http request", fields)

	start := time.Now()
	resp, err := t.next.RoundTrip(req)
	elapsed := time.Since(start)

	respFields := logger.MergeWithDuration(logger.RequestFields(req.Method, req.URL.String(), requestID), elapsed)
	if err != nil {
		t.log.Warn("http request failed", logger.MergeWithError(respFields, err))
		return nil, err
	}
	respFields[logger.FieldStatus] = resp.StatusCode
	t.log.Info("http response", respFields)
	return resp, nil
}
