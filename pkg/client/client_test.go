package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("TestApp/1.0.0 (test@example.com)")

	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %q, want %q", cfg.BaseURL, DefaultBaseURL)
	}
	if cfg.UserAgent != "TestApp/1.0.0 (test@example.com)" {
		t.Errorf("UserAgent = %q", cfg.UserAgent)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
	}
	if cfg.RequestsPerSecond <= 0 {
		t.Error("Expected a positive default request rate")
	}
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		expectError bool
		errorMsg    string
	}{
		{
			name: "valid config",
			config: Config{
				BaseURL:   "https://api.artic.edu/api/v1",
				UserAgent: "TestApp/1.0.0 (test@example.com)",
				Timeout:   10 * time.Second,
			},
			expectError: false,
		},
		{
			name: "missing base URL",
			config: Config{
				UserAgent: "TestApp/1.0.0",
			},
			expectError: true,
			errorMsg:    "base URL is required",
		},
		{
			name: "empty user agent",
			config: Config{
				BaseURL:   "https://api.artic.edu/api/v1",
				UserAgent: "",
			},
			expectError: true,
			errorMsg:    "user-agent is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.config)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error but got nil")
					return
				}
				if tt.errorMsg != "" && err.Error() != tt.errorMsg {
					t.Errorf("Error message = %q, want %q", err.Error(), tt.errorMsg)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if c == nil {
				t.Fatal("Expected client, got nil")
			}
		})
	}
}

func TestNew_AppliesDefaultTimeout(t *testing.T) {
	c, err := New(Config{
		BaseURL:   "https://api.artic.edu/api/v1",
		UserAgent: "TestApp/1.0.0",
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if c.httpClient.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s default", c.httpClient.Timeout)
	}
}

func TestGet_Success(t *testing.T) {
	var gotUserAgent, gotAccept, gotQuery string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": []}`))
	}))
	defer server.Close()

	c, err := New(Config{
		BaseURL:   server.URL,
		UserAgent: "TestApp/1.0.0 (test@example.com)",
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	resp, err := c.Get(context.Background(), "/artworks", url.Values{"page": []string{"2"}})
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d, want 200", resp.StatusCode)
	}
	if gotUserAgent != "TestApp/1.0.0 (test@example.com)" {
		t.Errorf("User-Agent = %q", gotUserAgent)
	}
	if gotAccept != "application/json" {
		t.Errorf("Accept = %q", gotAccept)
	}
	if gotQuery != "page=2" {
		t.Errorf("Query = %q, want page=2", gotQuery)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Read body failed: %v", err)
	}
	if string(body) != `{"data": []}` {
		t.Errorf("Body = %q", string(body))
	}
}

func TestGet_HTTPErrors(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		wantClass  ErrorClass
	}{
		{name: "not found", statusCode: http.StatusNotFound, wantClass: ErrorClassClient},
		{name: "bad request", statusCode: http.StatusBadRequest, wantClass: ErrorClassClient},
		{name: "server error", statusCode: http.StatusInternalServerError, wantClass: ErrorClassServer},
		{name: "bad gateway", statusCode: http.StatusBadGateway, wantClass: ErrorClassServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
			}))
			defer server.Close()

			c, err := New(Config{BaseURL: server.URL, UserAgent: "TestApp/1.0.0"})
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}

			_, err = c.Get(context.Background(), "/artworks", nil)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("Expected *APIError, got %T: %v", err, err)
			}
			if apiErr.StatusCode != tt.statusCode {
				t.Errorf("StatusCode = %d, want %d", apiErr.StatusCode, tt.statusCode)
			}
			if apiErr.ErrorClass != tt.wantClass {
				t.Errorf("ErrorClass = %q, want %q", apiErr.ErrorClass, tt.wantClass)
			}
		})
	}
}

func TestGet_NetworkError(t *testing.T) {
	// Point at a server that is already closed.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	serverURL := server.URL
	server.Close()

	c, err := New(Config{BaseURL: serverURL, UserAgent: "TestApp/1.0.0"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	_, err = c.Get(context.Background(), "/artworks", nil)
	if err == nil {
		t.Fatal("Expected error, got nil")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected *APIError, got %T: %v", err, err)
	}
	if apiErr.ErrorClass != ErrorClassNetwork {
		t.Errorf("ErrorClass = %q, want %q", apiErr.ErrorClass, ErrorClassNetwork)
	}
}

func TestGet_SingleAttempt(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c, err := New(Config{BaseURL: server.URL, UserAgent: "TestApp/1.0.0"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	_, err = c.Get(context.Background(), "/artworks", nil)
	if err == nil {
		t.Fatal("Expected error, got nil")
	}

	if requests != 1 {
		t.Errorf("Server saw %d requests, want exactly 1 (no retry)", requests)
	}
}
