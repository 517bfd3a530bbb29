// Package bootstrap runs restkit programs with a uniform lifecycle: typed
// configuration is defaulted and validated, the logger is initialized from
// it, start hooks run, the task runs under a context that SIGINT and SIGTERM
// cancel, and stop hooks flush telemetry within a graceful timeout.
//
//	app, err := bootstrap.NewApp(&cfg)
//	app.OnStop(func(ctx context.Context) error { return tp.Shutdown(ctx) })
//	err = app.RunTask(ctx, func(ctx context.Context) error {
//	    out, err := apiclient.Get[Item](ctx, client, "/items/1")
//	    ...
//	})
//
// A cancelled task returns context.Canceled, which callers report as an
// interrupted run rather than a failed request.
package bootstrap
