package config

import (
	"io/ioutil"
	"path/filepath"
	"testing"
)

func TestLoadMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), FileName))
	if err != nil {
		t.Fatal(err)
	}
	if cfg != Default() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := ioutil.WriteFile(path, []byte("max_call_depth: 50\nprompt: \"> \"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MaxCallDepth != 50 || cfg.Prompt != "> " {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.HistoryFile != Default().HistoryFile || cfg.LogLevel != Default().LogLevel {
		t.Errorf("missing keys should keep defaults: %+v", cfg)
	}
}

func TestLoadInvalid(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"syntax":   "max_call_depth: [",
		"type":     "max_call_depth: lots",
		"negative": "max_call_depth: -1",
	}

	for name, text := range cases {
		path := filepath.Join(dir, name+".yaml")
		if err := ioutil.WriteFile(path, []byte(text), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	want := Default()
	want.MaxCallDepth = 64
	want.LogLevel = "DEBUG"

	if err := want.Save(path); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should be valid: %v", err)
	}

	cfg.MaxCallDepth = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("zero depth means unbounded and should be valid: %v", err)
	}

	cfg.MaxCallDepth = -5
	if err := cfg.Validate(); err == nil {
		t.Error("negative depth should be rejected")
	}
}
