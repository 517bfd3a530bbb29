// Package resilience provides the retry policy used by the std transport
// engine: a bounded number of retries with exponential backoff and jitter,
// filtered by a RetryIf predicate.
//
//	cfg := resilience.DefaultRetryConfig()
//	cfg.MaxRetries = 2
//	cfg.RetryIf = httpclient.IsServerError
//	resp, err := resilience.Retry(ctx, cfg, func() (*Response, error) { ... })
package resilience
