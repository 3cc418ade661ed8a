package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func isolate(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("TRACKUP_HOME", dir)
	t.Setenv("TRACKUP_SERVER", "")
	t.Setenv("OPENAI_API_KEY", "")
	wd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)
	cfg, err := Load("", nil, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server != DefaultServer {
		t.Fatalf("server=%q", cfg.Server)
	}
	if cfg.Timeout != 60*time.Second {
		t.Fatalf("timeout=%v", cfg.Timeout)
	}
	if cfg.Serve.Store != "memory" {
		t.Fatalf("serve.store=%q", cfg.Serve.Store)
	}
}

func TestLoad_FileThenEnvThenFlag(t *testing.T) {
	isolate(t)
	p := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(p, []byte("server: http://file:1/\ntimeout: 5s\nlog:\n  level: debug\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(p, nil, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server != "http://file:1" || cfg.Timeout != 5*time.Second || cfg.Log.Level != "debug" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}

	t.Setenv("TRACKUP_SERVER", "http://env:2")
	cfg, err = Load(p, nil, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server != "http://env:2" {
		t.Fatalf("env should override file, got %q", cfg.Server)
	}

	fs := pflag.NewFlagSet("t", pflag.ContinueOnError)
	fs.String("server", "", "")
	if err := fs.Parse([]string{"--server", "http://flag:3"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	cfg, err = Load(p, fs, map[string]string{"server": "server"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server != "http://flag:3" {
		t.Fatalf("flag should override env, got %q", cfg.Server)
	}
}

func TestLoad_MissingExplicitFileErrors(t *testing.T) {
	isolate(t)
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil, nil); err == nil {
		t.Fatalf("expected error for missing explicit config")
	}
}

func TestLoad_OpenAIKeyFromBareEnv(t *testing.T) {
	isolate(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	cfg, err := Load("", nil, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.OpenAI.APIKey != "sk-test" {
		t.Fatalf("api key=%q", cfg.OpenAI.APIKey)
	}
}
