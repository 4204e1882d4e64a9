package cmd

import (
	"context"
	"testing"

	"github.com/skein-dev/skein/pkg/timeutil"

	"github.com/spf13/cobra"
)

// Time parsing itself is tested in pkg/timeutil; these verify the
// integration points the commands rely on.

func TestTimeutilParseIntegration(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty string", "", false},
		{"now keyword", "now", false},
		{"RFC3339", "2026-03-01T10:00:00Z", false},
		{"relative minutes", "30m", false},
		{"relative hours", "2h", false},
		{"relative days", "7d", false},
		{"relative weeks", "2w", false},
		{"invalid format", "invalid", true},
		{"unsupported unit", "5s", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := timeutil.Parse(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("timeutil.Parse(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestNewAppWithConfig(t *testing.T) {
	cfg := Config{
		Profile:      "test-profile",
		Region:       "us-west-2",
		OutputFormat: "json",
		Verbose:      true,
	}

	app := NewAppWithConfig(cfg, nil)

	if app.Config.Profile != "test-profile" {
		t.Errorf("expected profile 'test-profile', got %q", app.Config.Profile)
	}
	if app.Config.Region != "us-west-2" {
		t.Errorf("expected region 'us-west-2', got %q", app.Config.Region)
	}
	if app.Config.OutputFormat != "json" {
		t.Errorf("expected output format 'json', got %q", app.Config.OutputFormat)
	}
	if !app.Config.Verbose {
		t.Error("expected verbose to be true")
	}
}

func TestSetAndGetApp(t *testing.T) {
	cfg := Config{
		Profile: "context-test",
		Verbose: true,
	}
	app := NewAppWithConfig(cfg, nil)

	ctx := SetApp(context.Background(), app)

	cmd := &cobra.Command{}
	cmd.SetContext(ctx)

	retrieved := GetApp(cmd)
	if retrieved.Config.Profile != "context-test" {
		t.Errorf("expected profile 'context-test', got %q", retrieved.Config.Profile)
	}
	if !retrieved.Config.Verbose {
		t.Error("expected verbose to be true")
	}
}

func TestDisplayHost(t *testing.T) {
	tests := []struct {
		host string
		want string
	}{
		{"127.0.0.1", "127.0.0.1"},
		{"0.0.0.0", "0.0.0.0"},
		{"::1", "[::1]"},
		{"2001:db8::1", "[2001:db8::1]"},
		{"localhost", "localhost"},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			if got := displayHost(tt.host); got != tt.want {
				t.Errorf("displayHost(%q) = %q, want %q", tt.host, got, tt.want)
			}
		})
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := []string{"tail", "streams", "activity", "view", "sources", "completion"}

	registered := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		registered[c.Name()] = true
	}

	for _, name := range want {
		if !registered[name] {
			t.Errorf("command %q not registered on root", name)
		}
	}
}

func TestTailFlagDefaults(t *testing.T) {
	f := tailCmd.Flags()

	interval, err := f.GetDuration("interval")
	if err != nil {
		t.Fatalf("interval flag: %v", err)
	}
	if interval.Milliseconds() != 200 {
		t.Errorf("default interval = %v, want 200ms", interval)
	}

	since, err := f.GetString("since")
	if err != nil {
		t.Fatalf("since flag: %v", err)
	}
	if since != "" {
		t.Errorf("default since = %q, want empty", since)
	}
}

func TestViewFlagDefaults(t *testing.T) {
	f := viewCmd.Flags()

	host, err := f.GetString("host")
	if err != nil {
		t.Fatalf("host flag: %v", err)
	}
	if host != "127.0.0.1" {
		t.Errorf("default host = %q, want 127.0.0.1", host)
	}

	port, err := f.GetInt("port")
	if err != nil {
		t.Fatalf("port flag: %v", err)
	}
	if port != 4000 {
		t.Errorf("default port = %d, want 4000", port)
	}

	open, err := f.GetBool("open")
	if err != nil {
		t.Fatalf("open flag: %v", err)
	}
	if !open {
		t.Error("default open should be true")
	}
}
