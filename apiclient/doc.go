// Package apiclient issues typed JSON API calls and returns their outcome as
// a netresult.Outcome instead of an error.
//
//	client, err := apiclient.NewFromConfig(apiclient.Config{BaseURL: "https://api.example.com"})
//
//	out, err := apiclient.Get[User](ctx, client, "/users/42")
//	if err != nil {
//	    return err // ctx was cancelled
//	}
//	out.OnSuccess(show).OnError(func(e *netresult.ErrorInfo) { warn(e.Message) })
//
// Every failure (encoding, transport, HTTP status, decoding) is classified
// into one of the netresult kinds. The error return is reserved for
// cancellation of ctx. Retry, timeouts and request logging happen in the
// Transport before the outcome is produced.
package apiclient
