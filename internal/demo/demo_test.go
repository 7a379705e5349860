package demo

import (
	"context"
	"net/http"
	"testing"
	"time"

	"restecho/internal/config"
	"restecho/internal/logging"
	"restecho/internal/scenario"
)

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Server.Bind = "127.0.0.1"
	cfg.Server.Port = 0
	return cfg
}

func TestRunEndToEnd(t *testing.T) {
	d := New(testConfig(), scenario.Default(), logging.Discard())

	report, err := d.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if !report.OK() {
		for _, res := range report.Results {
			if !res.Passed() {
				t.Errorf("Step %q failed: status=%d expect=%d err=%v",
					res.Step.Name, res.Status, res.Step.Expect, res.Err)
			}
		}
	}
	if len(report.Results) != 7 {
		t.Errorf("Expected 7 results, got %d", len(report.Results))
	}
}

func TestRunShutsServerDown(t *testing.T) {
	d := New(testConfig(), scenario.Default(), logging.Discard())

	if _, err := d.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	addr := d.server.Addr()
	client := &http.Client{Timeout: time.Second}
	if _, err := client.Get("http://" + addr + "/api/data"); err == nil {
		t.Error("Expected connection failure after cooperative shutdown")
	}
}

func TestRunReportsStepFailures(t *testing.T) {
	sc := scenario.Scenario{
		Name: "doomed",
		Steps: []scenario.Step{
			{Name: "wrong status", Method: http.MethodGet, Path: "/api/data", Expect: http.StatusCreated},
		},
	}

	d := New(testConfig(), sc, logging.Discard())

	report, err := d.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if report.OK() {
		t.Error("Expected a failing report")
	}
}

func TestBaseURLFor(t *testing.T) {
	tests := []struct {
		addr string
		want string
	}{
		{"127.0.0.1:8080", "http://127.0.0.1:8080"},
		{"0.0.0.0:8080", "http://127.0.0.1:8080"},
		{"[::]:9000", "http://127.0.0.1:9000"},
	}

	for _, tt := range tests {
		if got := baseURLFor(tt.addr); got != tt.want {
			t.Errorf("baseURLFor(%q) = %q, want %q", tt.addr, got, tt.want)
		}
	}
}
