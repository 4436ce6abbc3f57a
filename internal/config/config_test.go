package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.AI.Model != DefaultModel {
		t.Errorf("Model = %q, want %q", cfg.AI.Model, DefaultModel)
	}
	if cfg.AI.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", cfg.AI.Timeout, DefaultTimeout)
	}
	if cfg.LogPath(dir) != filepath.Join(dir, DefaultLogFile) {
		t.Errorf("LogPath = %s", cfg.LogPath(dir))
	}
}

func TestSetAndGet(t *testing.T) {
	dir := t.TempDir()

	if err := Set(dir, "ai.model", "llama-3.1-8b-instant"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := Set(dir, "profile.target_weight", "76.5"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := Set(dir, "ai.timeout", "45s"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := Get(dir, "ai.model")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != "llama-3.1-8b-instant" {
		t.Errorf("ai.model = %q", got)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Profile.TargetWeight != 76.5 {
		t.Errorf("TargetWeight = %v", cfg.Profile.TargetWeight)
	}
	if cfg.AI.Timeout != 45*time.Second {
		t.Errorf("Timeout = %v", cfg.AI.Timeout)
	}

	// earlier keys survive later writes
	if got, _ := Get(dir, "ai.model"); got != "llama-3.1-8b-instant" {
		t.Errorf("ai.model lost after later Set: %q", got)
	}
}

func TestSetRejectsBadInput(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		key, value string
	}{
		{"nope.key", "x"},
		{"profile.target_weight", "heavy"},
		{"profile.target_weight", "-3"},
		{"ai.timeout", "soon"},
	}
	for _, tt := range tests {
		if err := Set(dir, tt.key, tt.value); err == nil {
			t.Errorf("Set(%s, %s) succeeded, want error", tt.key, tt.value)
		}
	}
	if _, err := os.Stat(Path(dir)); !os.IsNotExist(err) {
		t.Error("rejected writes should not create the config file")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	if err := Set(dir, "ai.model", "from-file"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	t.Setenv("P75_AI_MODEL", "from-env")

	got, err := Get(dir, "ai.model")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != "from-env" {
		t.Errorf("ai.model = %q, want from-env", got)
	}
}

func TestDotEnvInDataDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("P75_AI_API_KEY", "")
	os.Unsetenv("P75_AI_API_KEY")
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("P75_AI_API_KEY=sk-test-123456\n"), 0600); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.AI.APIKey != "sk-test-123456" {
		t.Errorf("APIKey = %q", cfg.AI.APIKey)
	}

	list, err := List(dir)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if list["ai.api_key"] != "****3456" {
		t.Errorf("masked key = %q", list["ai.api_key"])
	}
	os.Unsetenv("P75_AI_API_KEY")
}

func TestKeysSorted(t *testing.T) {
	ks := Keys()
	if len(ks) != len(keys) {
		t.Fatalf("len(Keys) = %d", len(ks))
	}
	for i := 1; i < len(ks); i++ {
		if strings.Compare(ks[i-1], ks[i]) >= 0 {
			t.Errorf("keys not sorted: %v", ks)
		}
	}
}
