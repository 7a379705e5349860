package client

import (
	"context"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"restecho/internal/api"
	"restecho/internal/config"
	"restecho/internal/logging"
)

func newTestClient(t *testing.T) (*Client, *httptest.Server) {
	t.Helper()

	cfg := config.DefaultConfig().Server
	cfg.Port = 0

	ts := httptest.NewServer(api.NewServer(cfg, logging.Discard()))
	t.Cleanup(ts.Close)

	c := New(Options{
		BaseURL: ts.URL,
		Timeout: 5 * time.Second,
		Logger:  logging.Discard(),
	})
	return c, ts
}

func TestGet(t *testing.T) {
	c, _ := newTestClient(t)

	query := url.Values{}
	query.Set("folder", "documents")

	resp, err := c.Get(context.Background(), "/api/data", query)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var body map[string]interface{}
	if err := resp.DecodeJSON(&body); err != nil {
		t.Fatalf("DecodeJSON failed: %v", err)
	}
	if body["folder"] != "documents" {
		t.Errorf("Expected folder 'documents', got %v", body["folder"])
	}
}

func TestPostEcho(t *testing.T) {
	c, _ := newTestClient(t)

	resp, err := c.Post(context.Background(), "/api/data", map[string]interface{}{
		"name": "Alice",
		"age":  30,
	})
	if err != nil {
		t.Fatalf("Post failed: %v", err)
	}
	if resp.StatusCode != 201 {
		t.Fatalf("Expected status 201, got %d", resp.StatusCode)
	}

	var body struct {
		Message string                 `json:"message"`
		Server  string                 `json:"server"`
		Data    map[string]interface{} `json:"data"`
	}
	if err := resp.DecodeJSON(&body); err != nil {
		t.Fatalf("DecodeJSON failed: %v", err)
	}
	if body.Message != "Data Received" || body.Server != "MyServerName" {
		t.Errorf("Unexpected envelope: %+v", body)
	}
	if body.Data["name"] != "Alice" || body.Data["age"] != float64(30) {
		t.Errorf("Echoed data mismatch: %v", body.Data)
	}
}

func TestVerbHelpers(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	put, err := c.Put(ctx, "/api/data/1", map[string]interface{}{"key": "updated_value"})
	if err != nil || put.StatusCode != 200 {
		t.Fatalf("Put: status=%v err=%v", put, err)
	}

	patch, err := c.Patch(ctx, "/api/data/1", map[string]interface{}{"key": "patched_value"})
	if err != nil || patch.StatusCode != 200 {
		t.Fatalf("Patch: status=%v err=%v", patch, err)
	}

	del, err := c.Delete(ctx, "/api/data/1")
	if err != nil || del.StatusCode != 200 {
		t.Fatalf("Delete: status=%v err=%v", del, err)
	}

	opts, err := c.OptionsCall(ctx, "/api/data")
	if err != nil || opts.StatusCode != 204 {
		t.Fatalf("Options: status=%v err=%v", opts, err)
	}
	if allow := opts.Header.Get("Allow"); allow == "" {
		t.Error("Expected Allow header on OPTIONS response")
	}
}

func TestAPIErrorDecoding(t *testing.T) {
	c, _ := newTestClient(t)

	resp, err := c.DoRaw(context.Background(), "POST", "/api/data", nil, []byte("not-json"))
	if err != nil {
		t.Fatalf("DoRaw failed: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Fatalf("Expected status 400, got %d", resp.StatusCode)
	}

	apiErr := resp.APIError()
	if apiErr == nil {
		t.Fatal("Expected APIError for status 400")
	}
	if apiErr.Message != "Invalid JSON data" {
		t.Errorf("Expected 'Invalid JSON data', got %q", apiErr.Message)
	}
	if apiErr.Details == "" {
		t.Error("Expected non-empty details")
	}
}

func TestAPIErrorNilForSuccess(t *testing.T) {
	c, _ := newTestClient(t)

	resp, err := c.Get(context.Background(), "/api/data", nil)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if resp.APIError() != nil {
		t.Error("Expected nil APIError for 200 response")
	}
}

func TestTransportError(t *testing.T) {
	c, ts := newTestClient(t)
	ts.Close()

	_, err := c.Get(context.Background(), "/api/data", nil)
	if err == nil {
		t.Error("Expected transport error against closed server")
	}
}
