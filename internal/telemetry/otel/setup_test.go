package otel

import (
	"context"
	"testing"
)

func TestNewProvidersEmptyEndpoint(t *testing.T) {
	p, err := NewProviders(context.Background(), "", "quizdesk", false)
	if err != nil {
		t.Fatalf("NewProviders: %v", err)
	}
	if p.TracerProvider == nil || p.MeterProvider == nil {
		t.Error("empty endpoint must still return no-op providers")
	}
	if err := p.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown: %v", err)
	}
}

func TestNewProvidersInvalidEndpoint(t *testing.T) {
	if _, err := NewProviders(context.Background(), "http://", "quizdesk", false); err == nil {
		t.Error("endpoint without host should be rejected")
	}
}

func TestParseTarget(t *testing.T) {
	cases := []struct {
		endpoint string
		target   string
		insecure bool
	}{
		{"localhost:4317", "localhost:4317", true},
		{"http://collector:4317", "collector:4317", true},
		{"https://collector:4317/v1/traces", "collector:4317", false},
		{"  ", "", false},
	}
	for _, tc := range cases {
		target, insecure, err := parseTarget(tc.endpoint)
		if err != nil {
			t.Fatalf("parseTarget(%q): %v", tc.endpoint, err)
		}
		if target != tc.target || insecure != tc.insecure {
			t.Errorf("parseTarget(%q) = %q, %v; want %q, %v", tc.endpoint, target, insecure, tc.target, tc.insecure)
		}
	}
}
