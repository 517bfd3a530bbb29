package apiclient

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/kbukum/restkit/httpclient"
	"github.com/kbukum/restkit/logger"
	"github.com/kbukum/restkit/netresult"
	"github.com/kbukum/restkit/observability"
)

const outcomeSuccess = "success"

// Get performs a GET request and decodes the response into T.
func Get[T any](ctx context.Context, c *Client, path string, opts ...RequestOption) (netresult.Outcome[T], error) {
	return do[T](ctx, c, http.MethodGet, path, nil, opts)
}

// Post performs a POST request with body encoded by the client codec.
// A nil body, including a typed nil pointer, sends no body.
func Post[T any](ctx context.Context, c *Client, path string, body any, opts ...RequestOption) (netresult.Outcome[T], error) {
	return do[T](ctx, c, http.MethodPost, path, body, opts)
}

// Put performs a PUT request with body encoded by the client codec.
func Put[T any](ctx context.Context, c *Client, path string, body any, opts ...RequestOption) (netresult.Outcome[T], error) {
	return do[T](ctx, c, http.MethodPut, path, body, opts)
}

// Patch performs a PATCH request with body encoded by the client codec.
func Patch[T any](ctx context.Context, c *Client, path string, body any, opts ...RequestOption) (netresult.Outcome[T], error) {
	return do[T](ctx, c, http.MethodPatch, path, body, opts)
}

// Delete performs a DELETE request and decodes the response into T.
func Delete[T any](ctx context.Context, c *Client, path string, opts ...RequestOption) (netresult.Outcome[T], error) {
	return do[T](ctx, c, http.MethodDelete, path, nil, opts)
}

// do runs one call. The error is non-nil only if ctx was cancelled, in which
// case the outcome is the zero value.
func do[T any](ctx context.Context, c *Client, method, path string, body any, opts []RequestOption) (netresult.Outcome[T], error) {
	start := time.Now()
	ctx, span := observability.StartClientSpan(ctx, c.tracer, method, path)

	out, status, err := send[T](ctx, c, method, path, body, newCallConfig(opts))
	if err != nil {
		observability.EndClientSpan(span, "cancelled", 0, err)
		c.log.Debug("call cancelled", logger.Fields(logger.FieldMethod, method, logger.FieldURL, path))
		return netresult.Outcome[T]{}, err
	}

	c.record(ctx, method, path, status, out.Err(), time.Since(start))
	var spanErr error
	if info := out.Err(); info != nil {
		spanErr = info
	}
	observability.EndClientSpan(span, outcomeLabel(out.Err()), status, spanErr)
	return out, nil
}

func send[T any](ctx context.Context, c *Client, method, path string, body any, cc *callConfig) (netresult.Outcome[T], int, error) {
	req := httpclient.Request{
		Method:  method,
		Path:    path,
		Headers: cc.headerMap(),
		Query:   cc.query,
	}
	if cc.headers.Get("Accept") == "" {
		req.Headers["Accept"] = c.codec.ContentType()
	}
	if !isNil(body) {
		data, err := c.codec.Marshal(body)
		if err != nil {
			return netresult.Failure[T](netresult.Classify(err)), 0, nil
		}
		req.Body = data
		if cc.headers.Get("Content-Type") == "" {
			req.Headers["Content-Type"] = c.codec.ContentType()
		}
	}

	resp, err := c.transport.Do(ctx, req)
	if err != nil {
		if ctxErr := ctx.Err(); errors.Is(ctxErr, context.Canceled) {
			return netresult.Outcome[T]{}, 0, ctxErr
		}
		status := 0
		if resp != nil {
			status = resp.StatusCode
		}
		return netresult.Failure[T](netresult.Classify(err)), status, nil
	}

	var v T
	if err := c.codec.Unmarshal(resp.Body, &v); err != nil {
		return netresult.Failure[T](netresult.Classify(err)), resp.StatusCode, nil
	}
	return netresult.Success(v), resp.StatusCode, nil
}

// record logs and counts a completed call.
func (c *Client) record(ctx context.Context, method, path string, status int, info *netresult.ErrorInfo, elapsed time.Duration) {
	outcome := outcomeLabel(info)
	if c.metrics != nil {
		c.metrics.RecordCall(ctx, method, outcome, elapsed)
		if info != nil {
			c.metrics.RecordError(ctx, method, outcome)
		}
	}

	fields := logger.MergeWithDuration(logger.Fields(
		logger.FieldMethod, method,
		logger.FieldURL, path,
		logger.FieldOutcome, outcome,
	), elapsed)
	if status != 0 {
		fields[logger.FieldStatus] = status
	}
	if info == nil {
		c.log.Debug("call succeeded", fields)
		return
	}
	c.log.Warn("call failed", logger.MergeWithError(fields, info))
}

func outcomeLabel(info *netresult.ErrorInfo) string {
	if info == nil {
		return outcomeSuccess
	}
	return info.Kind.String()
}
