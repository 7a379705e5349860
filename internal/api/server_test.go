package api

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"testing"
	"time"

	"restecho/internal/config"
	"restecho/internal/logging"
)

func splitAddr(addr string) (string, int, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return "", 0, err
	}
	port, err := strconv.Atoi(portStr)
	return host, port, err
}

func TestServerLifecycle(t *testing.T) {
	cfg := config.DefaultConfig().Server
	cfg.Bind = "127.0.0.1"
	cfg.Port = 0

	server := NewServer(cfg, logging.Discard())

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	select {
	case <-server.Ready():
	case err := <-serverErr:
		t.Fatalf("Server failed to start: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("Server never signaled readiness")
	}

	// Readiness means the port is accepting connections: no sleep needed
	resp, err := http.Get("http://" + server.Addr() + "/api/data?folder=live")
	if err != nil {
		t.Fatalf("GET after readiness failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body["folder"] != "live" {
		t.Errorf("Expected folder 'live', got %v", body["folder"])
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}

	if err := <-serverErr; err != nil {
		t.Errorf("Start returned error after graceful shutdown: %v", err)
	}
}

func TestServerBindFailure(t *testing.T) {
	cfg := config.DefaultConfig().Server
	cfg.Bind = "127.0.0.1"
	cfg.Port = 0

	first := NewServer(cfg, logging.Discard())
	firstErr := make(chan error, 1)
	go func() {
		firstErr <- first.Start()
	}()
	<-first.Ready()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = first.Shutdown(ctx)
		<-firstErr
	}()

	// Second server on the same port must fail to bind, synchronously
	host, port, _ := splitAddr(first.Addr())
	cfg.Bind = host
	cfg.Port = port

	second := NewServer(cfg, logging.Discard())
	if err := second.Start(); err == nil {
		t.Error("Expected bind failure on occupied port")
	}
}
