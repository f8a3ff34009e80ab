package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "3001" {
		t.Errorf("Port = %s, want 3001", cfg.Port)
	}
	if cfg.ReposDir != "./repos" {
		t.Errorf("ReposDir = %s, want ./repos", cfg.ReposDir)
	}
	if cfg.StorageDir != "./storage" {
		t.Errorf("StorageDir = %s, want ./storage", cfg.StorageDir)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("BACKEND_PORT", "9090")
	t.Setenv("REPOS_DIR", "/tmp/repos")
	t.Setenv("LLM_MODEL", "gpt-4o")
	t.Setenv("EMBEDDING_MODEL", "text-embedding-3-large")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("Port = %s, want 9090", cfg.Port)
	}
	if cfg.ReposDir != "/tmp/repos" {
		t.Errorf("ReposDir = %s, want /tmp/repos", cfg.ReposDir)
	}
	if cfg.LLMModel != "gpt-4o" {
		t.Errorf("LLMModel = %s, want gpt-4o", cfg.LLMModel)
	}
	if cfg.EmbeddingModel != "text-embedding-3-large" {
		t.Errorf("EmbeddingModel = %s, want text-embedding-3-large", cfg.EmbeddingModel)
	}
}
