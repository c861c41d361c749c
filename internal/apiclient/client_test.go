package apiclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// fakeCreds is a compare-and-clear session used by the tests.
type fakeCreds struct {
	mu      sync.Mutex
	token   string
	expired int
}

func (f *fakeCreds) Token() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

func (f *fakeCreds) Expire(token string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if token == "" || f.token != token {
		return false
	}
	f.token = ""
	f.expired++
	return true
}

func TestDoAttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"42"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	var out struct{ ID string }
	if err := c.For(&fakeCreds{token: "abc"}).Do(context.Background(), http.MethodGet, "/x", nil, &out); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if gotAuth != "Bearer abc" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer abc")
	}
	if out.ID != "42" {
		t.Errorf("decoded id = %q, want 42", out.ID)
	}
}

func TestDoAnonymousSendsNoAuthHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(srv.URL)
	if err := c.For(&fakeCreds{}).Do(context.Background(), http.MethodGet, "/x", nil, nil); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if err := c.Do(context.Background(), http.MethodGet, "/x", nil, nil); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization = %q, want empty", gotAuth)
	}
}

func TestDoSendsJSONBody(t *testing.T) {
	var gotType, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotType = r.Header.Get("Content-Type")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	var out struct{ ID string }
	err := New(srv.URL).Do(context.Background(), http.MethodPost, "/x", map[string]string{"name": "whey"}, &out)
	if err != nil {
		t.Fatalf("Do with empty 201 body: %v", err)
	}
	if gotType != "application/json" {
		t.Errorf("Content-Type = %q", gotType)
	}
	if gotBody != `{"name":"whey"}` {
		t.Errorf("body = %q", gotBody)
	}
}

// TestErrorMessages verifies the message precedence for failed responses.
func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		contentType string
		body        string
		want        string
	}{
		{name: "json message", status: 400, contentType: "application/json", body: `{"message":"Name is required"}`, want: "Name is required"},
		{name: "json error", status: 409, contentType: "application/json", body: `{"error":"Slug taken"}`, want: "Slug taken"},
		{name: "problem title", status: 422, contentType: "application/problem+json", body: `{"title":"Invalid"}`, want: "Invalid"},
		{name: "plain text", status: 500, contentType: "text/plain", body: "database down\n", want: "database down"},
		{name: "empty body", status: 503, contentType: "", body: "", want: "HTTP 503"},
		{name: "json without message", status: 400, contentType: "application/json", body: `{"code":7}`, want: "HTTP 400"},
		{name: "html page", status: 502, contentType: "text/html", body: "<html>bad gateway</html>", want: "HTTP 502"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.contentType != "" {
					w.Header().Set("Content-Type", tt.contentType)
				}
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			err := New(srv.URL).Do(context.Background(), http.MethodGet, "/x", nil, nil)
			var apiErr *Error
			if !errors.As(err, &apiErr) {
				t.Fatalf("error = %v, want *Error", err)
			}
			if apiErr.Status != tt.status {
				t.Errorf("Status = %d, want %d", apiErr.Status, tt.status)
			}
			if apiErr.Message != tt.want {
				t.Errorf("Message = %q, want %q", apiErr.Message, tt.want)
			}
		})
	}
}

// TestUnauthorizedExpiresSessionOnce fires several concurrent requests that
// all get a 401 and checks the session is cleared and the hook fires once.
func TestUnauthorizedExpiresSessionOnce(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(10 * time.Millisecond)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	var hooks atomic.Int32
	c := New(srv.URL, WithOnExpired(func(context.Context) { hooks.Add(1) }))
	creds := &fakeCreds{token: "stale"}
	d := c.For(creds)

	var wg sync.WaitGroup
	errs := make([]error, 5)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = d.Do(context.Background(), http.MethodGet, "/admin/x", nil, nil)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if !errors.Is(err, ErrUnauthorized) {
			t.Errorf("request %d: err = %v, want ErrUnauthorized", i, err)
		}
	}
	if got := hooks.Load(); got != 1 {
		t.Errorf("OnExpired fired %d times, want 1", got)
	}
	if creds.Token() != "" || creds.expired != 1 {
		t.Errorf("token = %q, expired = %d; want cleared once", creds.Token(), creds.expired)
	}
}

// TestUnauthorizedKeepsNewerSession verifies that a 401 for an old token
// does not sign out a session that has since been replaced.
func TestUnauthorizedKeepsNewerSession(t *testing.T) {
	creds := &fakeCreds{token: "old"}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		creds.mu.Lock()
		creds.token = "fresh"
		creds.mu.Unlock()
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	var fired bool
	c := New(srv.URL, WithOnExpired(func(context.Context) { fired = true }))
	_ = c.For(creds).Do(context.Background(), http.MethodGet, "/x", nil, nil)

	if creds.Token() != "fresh" {
		t.Errorf("token = %q, want fresh", creds.Token())
	}
	if fired {
		t.Error("OnExpired fired for a replaced session")
	}
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	err := New(url).Do(context.Background(), http.MethodGet, "/x", nil, nil)
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("err = %v, want ErrTransport", err)
	}
	if StatusOf(err) != 0 {
		t.Errorf("StatusOf = %d, want 0", StatusOf(err))
	}
}

func TestCanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := New(srv.URL).Do(ctx, http.MethodGet, "/x", nil, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	err := New(srv.URL, WithTimeout(20*time.Millisecond)).Do(context.Background(), http.MethodGet, "/x", nil, nil)
	if !errors.Is(err, ErrTransport) {
		t.Errorf("err = %v, want ErrTransport", err)
	}
}

func TestRequestIDPropagates(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("X-Request-ID")
	}))
	defer srv.Close()

	ctx := WithRequestID(context.Background(), "req-1")
	if err := New(srv.URL).Do(ctx, http.MethodGet, "/x", nil, nil); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if got != "req-1" {
		t.Errorf("X-Request-ID = %q, want req-1", got)
	}
}

func TestNonJSONSuccessIgnoresBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	var out map[string]any
	if err := New(srv.URL).Do(context.Background(), http.MethodGet, "/x", nil, &out); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if out != nil {
		t.Errorf("out = %v, want untouched", out)
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(&Error{Status: 404}) {
		t.Error("IsNotFound(404) = false")
	}
	if IsNotFound(errors.New("x")) {
		t.Error("IsNotFound(plain) = true")
	}
	if errors.Is(&Error{Status: 403}, ErrUnauthorized) {
		t.Error("403 matched ErrUnauthorized")
	}
}
