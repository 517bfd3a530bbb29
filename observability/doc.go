// Package observability provides OpenTelemetry tracing and metrics for
// outgoing API calls.
//
// Instrumentation uses the global providers, which are no-ops until a
// program installs real ones:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("apicall"))
//	defer tp.Shutdown(ctx)
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("apicall"))
//	defer mp.Shutdown(ctx)
//
// Each call gets a client span and is counted by outcome:
//
//	ctx, span := observability.StartClientSpan(ctx, http.MethodGet, "/users/42")
//	defer observability.EndClientSpan(span, "success", 200, nil)
//	metrics.RecordCall(ctx, http.MethodGet, "success", elapsed)
package observability
