package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidate_InvalidPort(t *testing.T) {
	cfg := Config{
		HTTP:          HTTPConfig{Port: 0},
		Elasticsearch: ElasticsearchConfig{URL: "http://localhost:9200", Index: "preprints"},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_InvalidURL(t *testing.T) {
	cfg := Config{
		HTTP:          HTTPConfig{Port: 8080},
		Elasticsearch: ElasticsearchConfig{URL: "localhost:9200", Index: "preprints"},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for non-http(s) URL")
	}
}

func TestValidate_MissingIndex(t *testing.T) {
	cfg := Config{
		HTTP:          HTTPConfig{Port: 8080},
		Elasticsearch: ElasticsearchConfig{URL: "http://localhost:9200"},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing index")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 30 {
		t.Errorf("expected WriteTimeoutSec=30, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Elasticsearch.URL != "http://localhost:9200" {
		t.Errorf("expected default URL, got %q", cfg.Elasticsearch.URL)
	}
	if cfg.Elasticsearch.Index != "preprints" {
		t.Errorf("expected Index='preprints', got %q", cfg.Elasticsearch.Index)
	}
	if cfg.Elasticsearch.Mapping != "mappings/document.json" {
		t.Errorf("expected default mapping path, got %q", cfg.Elasticsearch.Mapping)
	}
	if cfg.Elasticsearch.HealthTimeoutSec != 1 {
		t.Errorf("expected HealthTimeoutSec=1, got %d", cfg.Elasticsearch.HealthTimeoutSec)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP: HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Elasticsearch: ElasticsearchConfig{
			URL:              "https://search.example.com:9200",
			Index:            "custom",
			Mapping:          "mappings/custom.json",
			HealthTimeoutSec: 5,
		},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Elasticsearch.Index != "custom" {
		t.Errorf("expected Index='custom', got %q", cfg.Elasticsearch.Index)
	}
	if cfg.Elasticsearch.Mapping != "mappings/custom.json" {
		t.Errorf("expected custom mapping to survive, got %q", cfg.Elasticsearch.Mapping)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("SEARCHD_TEST_URL", "http://es:9200")
	os.Unsetenv("SEARCHD_TEST_UNSET")

	in := []byte("url: ${SEARCHD_TEST_URL}\nindex: ${SEARCHD_TEST_UNSET:-preprints}\n")
	got := string(expandEnvVars(in))
	want := "url: http://es:9200\nindex: preprints\n"
	if got != want {
		t.Errorf("expanded = %q, want %q", got, want)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`
http:
  port: 8080
elasticsearch:
  url: ${SEARCHD_TEST_ES_URL:-http://localhost:9200}
  index: preprints
`)
	if err := os.MkdirAll(filepath.Join(dir, "config"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config", "test.yaml"), content, 0o600); err != nil {
		t.Fatal(err)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load("test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.HTTP.Port)
	}
	if cfg.Elasticsearch.URL != "http://localhost:9200" {
		t.Errorf("url = %q", cfg.Elasticsearch.URL)
	}
	if cfg.Elasticsearch.Mapping != "mappings/document.json" {
		t.Errorf("mapping default not applied: %q", cfg.Elasticsearch.Mapping)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("no-such-env"); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
