package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadMissingFileReturnsEmptyConfig(t *testing.T) {
	cfg, err := loadFrom(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("loadFrom failed: %v", err)
	}
	if len(cfg.Streams) != 0 {
		t.Errorf("expected no streams, got %v", cfg.Streams)
	}
}

func TestLoadParsesAliases(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `log_group: /custom/batch
streams:
  ncov:
    stream: job/nextstrain-job/default/abc123
  zika:
    stream: job/zika/default/def456
    group: /other/group
view:
  host: 0.0.0.0
  port: 4100
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadFrom(path)
	if err != nil {
		t.Fatalf("loadFrom failed: %v", err)
	}

	if cfg.LogGroup != "/custom/batch" {
		t.Errorf("LogGroup = %q", cfg.LogGroup)
	}
	if got := cfg.AliasNames(); !reflect.DeepEqual(got, []string{"ncov", "zika"}) {
		t.Errorf("AliasNames = %v", got)
	}
	if cfg.View.Host != "0.0.0.0" || cfg.View.Port != 4100 {
		t.Errorf("View = %+v", cfg.View)
	}
}

func TestResolveStream(t *testing.T) {
	cfg := &Config{
		LogGroup: "/custom/batch",
		Streams: map[string]StreamAlias{
			"ncov": {Stream: "job/ncov/abc"},
			"zika": {Stream: "job/zika/def", Group: "/other/group"},
		},
	}

	tests := []struct {
		arg        string
		wantGroup  string
		wantStream string
		wantErr    bool
	}{
		{"job/literal/xyz", "/custom/batch", "job/literal/xyz", false},
		{"@ncov", "/custom/batch", "job/ncov/abc", false},
		{"@zika", "/other/group", "job/zika/def", false},
		{"@nope", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			group, stream, err := cfg.ResolveStream(tt.arg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveStream failed: %v", err)
			}
			if group != tt.wantGroup || stream != tt.wantStream {
				t.Errorf("got (%q, %q), want (%q, %q)", group, stream, tt.wantGroup, tt.wantStream)
			}
		})
	}
}
