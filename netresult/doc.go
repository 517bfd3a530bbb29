// Package netresult models the outcome of a remote call.
//
// An Outcome is exactly one of Success, Error or Loading. Failures are
// described by an ErrorInfo whose Kind is one of six closed categories,
// produced from arbitrary transport and payload errors by Classify.
//
//	out := netresult.Success(user)
//	out.OnSuccess(render).OnError(func(e *netresult.ErrorInfo) { log.Print(e) })
//
// Progress adapts a single call into the two-step stream Loading followed by
// Success or Error, suitable for driving UI state or status output.
package netresult
