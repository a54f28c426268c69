package remote

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestPostJSON_Success(t *testing.T) {
	var gotBody map[string]any
	var gotToken string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/payments" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		gotToken = r.Header.Get(ServiceTokenHeader)
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"p-1"}`))
	}))
	defer srv.Close()

	c := NewClient(Options{Name: "payment", BaseURL: srv.URL + "/", Token: "secret"}, zap.NewNop())
	out := c.PostJSON(context.Background(), "/api/payments", map[string]string{"bookingId": "b-1"})

	if out.Kind != Success || !out.OK() {
		t.Fatalf("kind = %s, want success", out.Kind)
	}
	if out.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", out.StatusCode)
	}
	if gotBody["bookingId"] != "b-1" {
		t.Fatalf("body bookingId = %v, want b-1", gotBody["bookingId"])
	}
	if gotToken != "secret" {
		t.Fatalf("token = %q, want secret", gotToken)
	}

	var decoded struct {
		ID string `json:"id"`
	}
	if err := out.Decode(&decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.ID != "p-1" {
		t.Fatalf("id = %q, want p-1", decoded.ID)
	}
	if out.AsError() != nil {
		t.Fatalf("AsError on success = %v", out.AsError())
	}
}

func TestPostJSON_NilBodySendsEmptyRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		if len(b) != 0 {
			t.Errorf("body = %q, want empty", b)
		}
		if r.Header.Get("Content-Type") != "" {
			t.Errorf("unexpected content type %q", r.Header.Get("Content-Type"))
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(Options{Name: "booking", BaseURL: srv.URL}, zap.NewNop())
	if out := c.PostJSON(context.Background(), "/api/bookings/1/cancel/", nil); !out.OK() {
		t.Fatalf("kind = %s, want success", out.Kind)
	}
}

func TestPostJSON_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":"bad amount"}`))
	}))
	defer srv.Close()

	c := NewClient(Options{Name: "payment", BaseURL: srv.URL}, zap.NewNop())
	out := c.PostJSON(context.Background(), "/api/payments", map[string]string{})

	if out.Kind != HTTPError {
		t.Fatalf("kind = %s, want http_error", out.Kind)
	}
	if out.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", out.StatusCode)
	}
	if string(out.Body) != `{"error":"bad amount"}` {
		t.Fatalf("body = %q", out.Body)
	}
	if out.AsError() == nil {
		t.Fatalf("AsError = nil, want error")
	}
	if err := out.Decode(&struct{}{}); err == nil {
		t.Fatalf("Decode on http error should fail")
	}
}

func TestPostJSON_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewClient(Options{Name: "payment", BaseURL: url}, zap.NewNop())
	out := c.PostJSON(context.Background(), "/api/payments", map[string]string{})

	if out.Kind != Unreachable {
		t.Fatalf("kind = %s, want unreachable", out.Kind)
	}
	if out.Err == nil {
		t.Fatalf("Err = nil, want cause")
	}
}

func TestPostJSON_TimeoutIsUnreachable(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := NewClient(Options{Name: "payment", BaseURL: srv.URL, Timeout: 50 * time.Millisecond}, zap.NewNop())
	out := c.PostJSON(context.Background(), "/slow", nil)

	if out.Kind != Unreachable {
		t.Fatalf("kind = %s, want unreachable", out.Kind)
	}
}
