package practicum

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"homework_status_bot/internal/domain/homework"

	logtest "github.com/sirupsen/logrus/hooks/test"
)

func newTestClient(url string, timeout time.Duration) *Client {
	logger, _ := logtest.NewNullLogger()
	return NewClient(url, "secret-token", timeout, logger)
}

func TestClient_GetStatuses_Success(t *testing.T) {
	var gotAuth, gotFromDate string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotFromDate = r.URL.Query().Get("from_date")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"homeworks": [{"homework_name": "proj1", "status": "approved"}], "current_date": 1000}`))
	}))
	defer server.Close()

	resp, err := newTestClient(server.URL, 5*time.Second).GetStatuses(context.Background(), 1700000000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotAuth != "OAuth secret-token" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "OAuth secret-token")
	}
	if gotFromDate != "1700000000" {
		t.Errorf("from_date = %q, want %q", gotFromDate, "1700000000")
	}
	if resp.CurrentDate != 1000 || !resp.HasCurrentDate {
		t.Errorf("current_date = %d, want 1000", resp.CurrentDate)
	}
	if len(resp.Homeworks) != 1 || resp.Homeworks[0]["homework_name"] != "proj1" {
		t.Errorf("unexpected homeworks: %+v", resp.Homeworks)
	}
}

func TestClient_GetStatuses_NonOKStatus(t *testing.T) {
	for _, code := range []int{http.StatusUnauthorized, http.StatusNotFound, http.StatusInternalServerError} {
		t.Run(http.StatusText(code), func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(code)
				_, _ = w.Write([]byte(`{"code": "error"}`))
			}))
			defer server.Close()

			_, err := newTestClient(server.URL, time.Second).GetStatuses(context.Background(), 0)
			if !errors.Is(err, ErrHTTPStatus) {
				t.Fatalf("expected ErrHTTPStatus, got %v", err)
			}
			var statusErr *StatusError
			if !errors.As(err, &statusErr) || statusErr.StatusCode != code {
				t.Errorf("expected StatusError with code %d, got %v", code, err)
			}
		})
	}
}

func TestClient_GetStatuses_ShapeErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `<html>maintenance</html>`},
		{"array body", `[]`},
		{"no homeworks key", `{"current_date": 1000}`},
		{"homeworks not list", `{"homeworks": 5, "current_date": 1000}`},
		{"trailing garbage", `{"homeworks": [], "current_date": 5} <html>oops</html>`},
		{"two json values", `{"homeworks": [], "current_date": 5} {"homeworks": []}`},
		{"oversized body", `{"homeworks": [], "pad": "` + strings.Repeat("x", maxResponseBodySize) + `"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := newTestClient(server.URL, time.Second).GetStatuses(context.Background(), 0)
			if !errors.Is(err, homework.ErrShape) {
				t.Fatalf("expected ErrShape, got %v", err)
			}
		})
	}
}

func TestClient_GetStatuses_Transport(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close() // connection refused from here on

	_, err := newTestClient(url, time.Second).GetStatuses(context.Background(), 0)
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
}

func TestClient_GetStatuses_TrailingWhitespace(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{\"homeworks\": [], \"current_date\": 5}\n\n"))
	}))
	defer server.Close()

	resp, err := newTestClient(server.URL, time.Second).GetStatuses(context.Background(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.CurrentDate != 5 {
		t.Errorf("current_date = %d, want 5", resp.CurrentDate)
	}
}

func TestClient_GetStatuses_TruncatedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "500")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"homeworks": [{"homework_name": "proj1"`))
		// returning early makes the server drop the connection mid-body
	}))
	defer server.Close()

	_, err := newTestClient(server.URL, time.Second).GetStatuses(context.Background(), 0)
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
	if errors.Is(err, homework.ErrShape) {
		t.Errorf("truncated body must not be reported as a shape error: %v", err)
	}
}

func TestClient_GetStatuses_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	_, err := newTestClient(server.URL, 50*time.Millisecond).GetStatuses(context.Background(), 0)
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected wrapped deadline error, got %v", err)
	}
}

func TestNewClient_DefaultEndpoint(t *testing.T) {
	c := newTestClient("", 0)
	if c.endpoint != DefaultEndpoint {
		t.Errorf("endpoint = %q, want %q", c.endpoint, DefaultEndpoint)
	}
}
