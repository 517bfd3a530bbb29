package restyengine

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kbukum/restkit/codec"
	"github.com/kbukum/restkit/httpclient"
	"github.com/kbukum/restkit/logger"
	"github.com/kbukum/restkit/resilience"
)

func fastRetry(n int) *resilience.RetryConfig {
	return &resilience.RetryConfig{
		MaxRetries:     n,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
		RetryIf:        httpclient.IsServerError,
	}
}

func TestEngine_Do_GET(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/users/42" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.URL.Query()["id"]; len(got) != 2 {
			t.Errorf("expected repeated id params, got %v", got)
		}
		if got := r.Header.Get("User-Agent"); got != "restkit-test" {
			t.Errorf("expected user agent, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":42}`))
	}))
	defer srv.Close()

	e, err := New(httpclient.Config{BaseURL: srv.URL, UserAgent: "restkit-test"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp, err := e.Do(context.Background(), httpclient.Request{
		Method: http.MethodGet,
		Path:   "/users/42",
		Query:  map[string][]string{"id": {"1", "2"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != 200 || string(resp.Body) != `{"id":42}` {
		t.Errorf("unexpected response %d %s", resp.StatusCode, resp.Body)
	}
}

func TestEngine_Do_JSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected application/json, got %q", ct)
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != `{"name":"A"}` {
			t.Errorf("unexpected body %s", body)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	e, _ := New(httpclient.Config{BaseURL: srv.URL})
	resp, err := e.Do(context.Background(), httpclient.Request{
		Method: http.MethodPost,
		Path:   "/users",
		Body:   struct {
			Name string `json:"name"`
		}{"A"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("expected 201, got %d", resp.StatusCode)
	}
}

func TestEngine_Do_EncodeFailure(t *testing.T) {
	e, _ := New(httpclient.Config{BaseURL: "http://127.0.0.1:1"})
	_, err := e.Do(context.Background(), httpclient.Request{
		Method: http.MethodPut,
		Path:   "/x",
		Body:   []any{make(chan int)},
	})
	var cerr *codec.Error
	if !errors.As(err, &cerr) {
		t.Fatalf("expected *codec.Error, got %v", err)
	}
}

func TestEngine_Do_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"not found"}`))
	}))
	defer srv.Close()

	e, _ := New(httpclient.Config{BaseURL: srv.URL})
	resp, err := e.Do(context.Background(), httpclient.Request{Method: http.MethodGet, Path: "/users/42"})
	var herr *httpclient.Error
	if !errors.As(err, &herr) {
		t.Fatalf("expected *httpclient.Error, got %v", err)
	}
	if herr.HTTPStatus() != 404 || herr.Detail() != "not found" {
		t.Errorf("got (%d, %q), want (404, %q)", herr.HTTPStatus(), herr.Detail(), "not found")
	}
	if resp == nil || resp.StatusCode != 404 {
		t.Error("the raw response should accompany the error")
	}
}

func TestEngine_Do_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	e, _ := New(httpclient.Config{BaseURL: srv.URL, Retry: fastRetry(2)})
	_, err := e.Do(context.Background(), httpclient.Request{Method: http.MethodGet, Path: "/"})
	if !httpclient.IsServerError(err) {
		t.Fatalf("expected server error, got %v", err)
	}
	if calls.Load() != 3 {
		t.Errorf("expected 3 calls, got %d", calls.Load())
	}
}

func TestEngine_Do_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusConflict)
	}))
	defer srv.Close()

	e, _ := New(httpclient.Config{BaseURL: srv.URL, Retry: fastRetry(2)})
	_, _ = e.Do(context.Background(), httpclient.Request{Method: http.MethodGet, Path: "/"})
	if calls.Load() != 1 {
		t.Errorf("expected 1 call, got %d", calls.Load())
	}
}

func TestEngine_Do_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	e, _ := New(httpclient.Config{BaseURL: srv.URL, Timeout: 20 * time.Millisecond})
	_, err := e.Do(context.Background(), httpclient.Request{Method: http.MethodGet, Path: "/"})
	if !httpclient.IsTimeout(err) {
		t.Fatalf("expected timeout error, got %v", err)
	}
}

func TestEngine_Do_CancellationPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	e, _ := New(httpclient.Config{BaseURL: srv.URL})
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)
	_, err := e.Do(ctx, httpclient.Request{Method: http.MethodGet, Path: "/"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestEngine_Logging(t *testing.T) {
	var gotID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = r.Header.Get(httpclient.HeaderRequestID)
	}))
	defer srv.Close()

	var buf bytes.Buffer
	log := logger.NewWithWriter(&logger.Config{Level: "info", Format: logger.FormatJSON}, "test", &buf)
	e, _ := New(httpclient.Config{BaseURL: srv.URL, Logging: true}, WithLogger(log))
	if _, err := e.Do(context.Background(), httpclient.Request{Method: http.MethodGet, Path: "/ping"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(gotID) != 36 {
		t.Errorf("expected a UUID request id, got %q", gotID)
	}
	out := buf.String()
	if !strings.Contains(out, `"message":"http response"`) || !strings.Contains(out, `"component":"restyengine"`) {
		t.Errorf("unexpected log output: %s", out)
	}
}

type fixedCodec struct{}

func (fixedCodec) ContentType() string         { return "application/vnd.restkit+json" }
func (fixedCodec) Marshal(any) ([]byte, error) { return []byte(`{"encoded":"fixed"}`), nil }
func (fixedCodec) Unmarshal([]byte, any) error { return nil }

func TestEngine_Do_WithCodec(t *testing.T) {
	var gotCT, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCT = r.Header.Get("Content-Type")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
	}))
	defer srv.Close()

	e, err := New(httpclient.Config{BaseURL: srv.URL}, WithCodec(fixedCodec{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := e.Do(context.Background(), httpclient.Request{Method: http.MethodPost, Path: "/x", Body: map[string]int{"a": 1}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotCT != "application/vnd.restkit+json" || gotBody != `{"encoded":"fixed"}` {
		t.Errorf("codec not used: content-type %q, body %q", gotCT, gotBody)
	}
}

func TestRestyLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&logger.Config{Level: "debug", Format: logger.FormatJSON}, "test", &buf)
	rl := restyLogger{log}

	rl.Errorf("failed %d", 1)
	rl.Warnf("slow %s", "call")
	rl.Debugf("dump %v", true)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	want := [][2]string{
		{`"level":"error"`, `"message":"failed 1"`},
		{`"level":"warn"`, `"message":"slow call"`},
		{`"level":"debug"`, `"message":"dump true"`},
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %d log lines, got %d:\n%s", len(want), len(lines), buf.String())
	}
	for i, w := range want {
		if !strings.Contains(lines[i], w[0]) || !strings.Contains(lines[i], w[1]) {
			t.Errorf("line %d: expected %s and %s, got %s", i, w[0], w[1], lines[i])
		}
	}
}

func TestEngine_DebugLogsThroughLogger(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	var buf bytes.Buffer
	log := logger.NewWithWriter(&logger.Config{Level: "debug", Format: logger.FormatJSON}, "test", &buf)
	e, err := New(httpclient.Config{BaseURL: srv.URL}, WithLogger(log))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	e.Resty().SetDebug(true)
	if _, err := e.Do(context.Background(), httpclient.Request{Method: http.MethodGet, Path: "/debug"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `"level":"debug"`) || !strings.Contains(out, "/debug") {
		t.Errorf("expected resty debug dump in log output:\n%s", out)
	}
}
