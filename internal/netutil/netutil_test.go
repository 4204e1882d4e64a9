package netutil

import (
	"context"
	"testing"
)

func TestIsLoopback(t *testing.T) {
	tests := []struct {
		host string
		want bool
	}{
		{"127.0.0.1", true},
		{"::1", true},
		{"localhost", true},
		{"0.0.0.0", false},
		{"192.0.2.10", false},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			got, err := IsLoopback(context.Background(), tt.host)
			if err != nil {
				t.Fatalf("IsLoopback(%q) failed: %v", tt.host, err)
			}
			if got != tt.want {
				t.Errorf("IsLoopback(%q) = %v, want %v", tt.host, got, tt.want)
			}
		})
	}
}

func TestIsLoopbackResolutionError(t *testing.T) {
	if _, err := IsLoopback(context.Background(), "definitely-not-a-real-host.invalid"); err == nil {
		t.Error("expected a resolution error")
	}
}

func TestResolveNumericHost(t *testing.T) {
	if got := Resolve(context.Background(), "127.0.0.1"); got != "127.0.0.1" {
		t.Errorf("Resolve(127.0.0.1) = %q", got)
	}
}

func TestResolveFallsBackToInput(t *testing.T) {
	host := "definitely-not-a-real-host.invalid"
	if got := Resolve(context.Background(), host); got != host {
		t.Errorf("Resolve(%q) = %q, want input back", host, got)
	}
}

func TestResolvePrefersIPv4ForLocalhost(t *testing.T) {
	got := Resolve(context.Background(), "localhost")
	if got != "127.0.0.1" && got != "::1" {
		t.Errorf("Resolve(localhost) = %q", got)
	}
}
