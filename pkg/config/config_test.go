package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/synthgraph/pkg/cache"
	"github.com/matzehuels/synthgraph/pkg/errors"
	"github.com/matzehuels/synthgraph/pkg/pipeline"
	"github.com/matzehuels/synthgraph/pkg/sink"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	c := Default()
	if c.Sink.Kind != sink.KindMemory {
		t.Errorf("Sink.Kind = %q, want memory", c.Sink.Kind)
	}
	if !c.CacheEnabled() {
		t.Error("cache disabled by default")
	}
	if c.Serve.Addr != DefaultAddr {
		t.Errorf("Serve.Addr = %q, want %q", c.Serve.Addr, DefaultAddr)
	}
	ttl, err := c.Cache.TTLDuration()
	if err != nil || ttl != cache.TTLEdges {
		t.Errorf("TTLDuration = %v, %v", ttl, err)
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "synthgraph.toml", `
[defaults]
label = "User"
rel_type = "FOLLOWS"
batch_size = 500
seed = 7

[sink]
kind = "sqlite"
path = "out.db"

[cache]
enabled = false
ttl = "2h"
`)
	c, used, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if used != path {
		t.Errorf("path = %q, want %q", used, path)
	}
	if c.Defaults.Label != "User" || c.Defaults.RelType != "FOLLOWS" || c.Defaults.BatchSize != 500 || c.Defaults.Seed != 7 {
		t.Errorf("Defaults = %+v", c.Defaults)
	}
	if c.Sink.Kind != sink.KindSQLite || c.Sink.Path != "out.db" {
		t.Errorf("Sink = %+v", c.Sink)
	}
	if c.CacheEnabled() {
		t.Error("cache enabled, want disabled")
	}
	if ttl, _ := c.Cache.TTLDuration(); ttl != 2*time.Hour {
		t.Errorf("ttl = %v, want 2h", ttl)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "synthgraph.yaml", `
defaults:
  label: Account
sink:
  kind: redis
  redis_url: redis://localhost:6379/0
`)
	c, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if c.Defaults.Label != "Account" || c.Sink.Kind != sink.KindRedis {
		t.Errorf("config = %+v", c)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		code    errors.Code
	}{
		{"unknown toml key", "c.toml", "[defaults]\ncolour = \"red\"\n", errors.ErrCodeInvalidInput},
		{"unknown yaml key", "c.yaml", "defaults:\n  colour: red\n", errors.ErrCodeInvalidInput},
		{"bad sink", "c.toml", "[sink]\nkind = \"neo4j\"\n", errors.ErrCodeInvalidInput},
		{"bad ttl", "c.toml", "[cache]\nttl = \"soon\"\n", errors.ErrCodeInvalidInput},
		{"bad syntax", "c.toml", "[defaults\n", errors.ErrCodeInvalidInput},
		{"bad redis url", "c.toml", "[sink]\nkind = \"redis\"\nredis_url = \"localhost:6379\"\n", errors.ErrCodeInvalidInput},
		{"bad mongo uri", "c.yaml", "sink:\n  mongo_uri: http://db\n", errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeFile(t, tt.file, tt.content))
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %v, want %v (err = %v)", got, tt.code, err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestFindPathEnv(t *testing.T) {
	path := writeFile(t, "custom.toml", "")
	t.Setenv(EnvConfig, path)
	if got := FindPath(); got != path {
		t.Errorf("FindPath = %q, want %q", got, path)
	}
}

func TestApply(t *testing.T) {
	c := &Config{Defaults: Defaults{Label: "User", BatchSize: 10, Seed: 3}}
	opts := pipeline.Options{Model: "complete", RelType: "KNOWS"}
	c.Apply(&opts)
	if opts.Label != "User" || opts.RelType != "KNOWS" || opts.BatchSize != 10 || opts.Seed != 3 {
		t.Errorf("opts = %+v", opts)
	}
}
