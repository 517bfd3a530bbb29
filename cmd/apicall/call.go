package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cast"

	"github.com/kbukum/restkit/apiclient"
	"github.com/kbukum/restkit/bootstrap"
	"github.com/kbukum/restkit/netresult"
	"github.com/kbukum/restkit/observability"
	"github.com/kbukum/restkit/version"
)

func applyFlags(cfg *cliConfig, f *flags) error {
	if f.baseURL != "" {
		cfg.Client.BaseURL = f.baseURL
	}
	if f.engine != "" {
		cfg.Client.Engine = f.engine
	}
	if f.timeout != "" {
		d, err := cast.ToDurationE(f.timeout)
		if err != nil {
			return fmt.Errorf("invalid --timeout %q: %w", f.timeout, err)
		}
		cfg.Client.Timeout = d
	}
	if f.retries >= 0 {
		cfg.Client.MaxRetries = f.retries
	}
	if f.otlp != "" {
		cfg.Telemetry.Endpoint = f.otlp
	}
	if f.verbose {
		cfg.Logging.Level = "debug"
	}
	return nil
}

// parsePairs splits key=value flags. Repeated keys keep every value.
func parsePairs(flag string, pairs []string) (map[string][]string, error) {
	out := make(map[string][]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, fmt.Errorf("invalid --%s %q: want key=value", flag, p)
		}
		k = strings.TrimSpace(k)
		out[k] = append(out[k], v)
	}
	return out, nil
}

func requestOptions(f *flags) ([]apiclient.RequestOption, error) {
	headers, err := parsePairs("header", f.headers)
	if err != nil {
		return nil, err
	}
	query, err := parsePairs("query", f.query)
	if err != nil {
		return nil, err
	}

	b := apiclient.NewRequestBuilder()
	for k, vs := range headers {
		b.AddHeader(k, strings.Join(vs, ", "))
	}
	for k, vs := range query {
		if len(vs) == 1 {
			b.AddParam(k, vs[0])
		} else {
			b.AddParam(k, vs)
		}
	}
	return []apiclient.RequestOption{apiclient.WithRequest(b)}, nil
}

// readBody decodes --data with the configured codec, so lenient configs
// accept comments and trailing commas. "@path" reads the body from a file.
func readBody(cfg *cliConfig, data string) (any, error) {
	if data == "" {
		return nil, nil
	}
	raw := []byte(data)
	if path, ok := strings.CutPrefix(data, "@"); ok {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read --data file: %w", err)
		}
		raw = b
	}
	var body any
	if err := cfg.Client.Codec().Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("invalid --data: %w", err)
	}
	return body, nil
}

func call(ctx context.Context, stdout, stderr io.Writer, cfg *cliConfig, f *flags, method, path string) error {
	opts, err := requestOptions(f)
	if err != nil {
		return err
	}
	var body any
	if method != "GET" && method != "DELETE" {
		if body, err = readBody(cfg, f.data); err != nil {
			return err
		}
	}

	app, err := bootstrap.NewApp(cfg)
	if err != nil {
		return err
	}
	if cfg.Telemetry.Endpoint != "" {
		registerTelemetry(app, cfg)
	}

	return app.RunTask(ctx, func(ctx context.Context) error {
		client, err := apiclient.NewFromConfig(cfg.Client, apiclient.WithLogger(app.Logger))
		if err != nil {
			return err
		}

		op := func(ctx context.Context) (any, error) {
			out, err := send(ctx, client, method, path, body, opts)
			if err != nil {
				return nil, err
			}
			return out.Unwrap()
		}

		var final netresult.Outcome[any]
		for out := range netresult.Progress(ctx, op) {
			if out.IsLoading() {
				if f.progress {
					fmt.Fprintf(stderr, "%s %s ...\n", method, path)
				}
				continue
			}
			final = out
		}
		if final.IsLoading() {
			return ctx.Err()
		}
		return report(stdout, stderr, final)
	})
}

func send(ctx context.Context, c *apiclient.Client, method, path string, body any, opts []apiclient.RequestOption) (netresult.Outcome[any], error) {
	switch method {
	case "GET":
		return apiclient.Get[any](ctx, c, path, opts...)
	case "POST":
		return apiclient.Post[any](ctx, c, path, body, opts...)
	case "PUT":
		return apiclient.Put[any](ctx, c, path, body, opts...)
	case "PATCH":
		return apiclient.Patch[any](ctx, c, path, body, opts...)
	default:
		return apiclient.Delete[any](ctx, c, path, opts...)
	}
}

func report(stdout, stderr io.Writer, out netresult.Outcome[any]) error {
	if info := out.Err(); info != nil {
		if info.Status != 0 {
			fmt.Fprintf(stderr, "%s (%d): %s\n", info.Kind, info.Status, info.Message)
		} else {
			fmt.Fprintf(stderr, "%s: %s\n", info.Kind, info.Message)
		}
		return errCallFailed
	}
	v, _ := out.Value()
	if v == nil {
		return nil
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, string(b))
	return nil
}

func registerTelemetry(app *bootstrap.App[*cliConfig], cfg *cliConfig) {
	tc := observability.DefaultTracerConfig(cfg.Name)
	tc.ServiceVersion = version.Version
	tc.Environment = cfg.Environment
	tc.Endpoint = cfg.Telemetry.Endpoint
	tc.Insecure = cfg.Telemetry.Insecure
	tc.SampleRate = cfg.Telemetry.SampleRate

	mc := observability.DefaultMeterConfig(cfg.Name)
	mc.ServiceVersion = version.Version
	mc.Environment = cfg.Environment
	mc.Endpoint = cfg.Telemetry.Endpoint
	mc.Insecure = cfg.Telemetry.Insecure
	mc.Interval = time.Minute

	app.OnStart(func(ctx context.Context) error {
		tp, err := observability.InitTracer(ctx, tc)
		if err != nil {
			return err
		}
		app.OnStop(tp.Shutdown)

		mp, err := observability.InitMeter(ctx, &mc)
		if err != nil {
			return err
		}
		app.OnStop(mp.Shutdown)
		return nil
	})
}
