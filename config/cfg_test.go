package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rupor-github/gencfg"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfiguration_NoFile(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() with empty path error = %v", err)
	}
	if cfg.Version != 1 {
		t.Errorf("Default config version = %d, want 1", cfg.Version)
	}
	if len(cfg.Catalog.Extensions) == 0 {
		t.Error("Default config has no catalog extensions")
	}
	// name template must survive template processing untouched
	if cfg.Catalog.NameTemplate != "{{ .FileTitle }}-{{ .Year }}" {
		t.Errorf("NameTemplate = %q", cfg.Catalog.NameTemplate)
	}
	if cfg.Catalog.Index.Path == "" {
		t.Error("Default index path is empty")
	}
	if cfg.Logging.ConsoleLogger.Level != "normal" {
		t.Errorf("Console level = %q, want normal", cfg.Logging.ConsoleLogger.Level)
	}
}

func TestLoadConfiguration_WithFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, `version: 1
catalog:
  extensions: [".xml"]
  name_template: "{{ .Slug }}"
  transliterate: true
  index:
    path: `+filepath.Join(dir, "db", "index.db")+`
logging:
  console:
    level: debug
  file:
    level: debug
    destination: `+filepath.Join(dir, "mcat.log")+`
    mode: append
`)

	cfg, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if len(cfg.Catalog.Extensions) != 1 || cfg.Catalog.Extensions[0] != ".xml" {
		t.Errorf("Extensions = %v", cfg.Catalog.Extensions)
	}
	if cfg.Catalog.NameTemplate != "{{ .Slug }}" {
		t.Errorf("NameTemplate = %q", cfg.Catalog.NameTemplate)
	}
	if !cfg.Catalog.Transliterate {
		t.Error("Expected Transliterate to be true")
	}
	if cfg.Logging.FileLogger.Mode != "append" {
		t.Errorf("File log mode = %q", cfg.Logging.FileLogger.Mode)
	}
	// sanitizer creates directory for the index file
	if fi, err := os.Stat(filepath.Join(dir, "db")); err != nil || !fi.IsDir() {
		t.Errorf("index directory was not created: %v", err)
	}
}

func TestLoadConfiguration_MergeWithDefaults(t *testing.T) {
	path := writeConfig(t, `version: 1
catalog:
  transliterate: true
`)
	cfg, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if !cfg.Catalog.Transliterate {
		t.Error("value from file was not applied")
	}
	if len(cfg.Catalog.Extensions) != 2 {
		t.Errorf("default extensions lost: %v", cfg.Catalog.Extensions)
	}
	if cfg.Reporting.Destination == "" {
		t.Error("default report destination lost")
	}
}

func TestLoadConfiguration_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid yaml", "version: 1\ncatalog:\n  transliterate: true\n  invalid indent\n"},
		{"unknown field", "version: 1\nunknown_field: value\n"},
		{"bad version", "version: 2\n"},
		{"bad extension", "version: 1\ncatalog:\n  extensions: [\"xml\"]\n"},
		{"bad console level", "version: 1\nlogging:\n  console:\n    level: loud\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfiguration(writeConfig(t, tt.content)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadConfiguration_NonExistentFile(t *testing.T) {
	if _, err := LoadConfiguration("/nonexistent/config.yaml"); err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestLoadConfiguration_WithOptions(t *testing.T) {
	option := func(opts *gencfg.ProcessingOptions) {}
	cfg, err := LoadConfiguration("", option)
	if err != nil {
		t.Fatalf("LoadConfiguration() with options error = %v", err)
	}
	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}
}

func TestPrepareAndDump(t *testing.T) {
	data, err := Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, true)
	if err != nil {
		t.Fatalf("Prepared config is not valid: %v", err)
	}

	dumped, err := Dump(cfg)
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}
	again, err := unmarshalConfig(dumped, &Config{}, false)
	if err != nil {
		t.Fatalf("Dumped config cannot be loaded: %v", err)
	}
	if again.Catalog.NameTemplate != cfg.Catalog.NameTemplate {
		t.Errorf("NameTemplate after dump = %q, want %q", again.Catalog.NameTemplate, cfg.Catalog.NameTemplate)
	}
}

func TestUnmarshalConfig_WrapsValidationError(t *testing.T) {
	_, err := unmarshalConfig([]byte("version: 99\n"), &Config{}, true)
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	if !strings.Contains(err.Error(), "validat") {
		t.Errorf("expected error to mention validation, got: %v", err)
	}
	if errors.Unwrap(err) == nil {
		t.Errorf("expected wrapped error, got bare error: %v", err)
	}
}

func TestCatalogConfig_HasExtension(t *testing.T) {
	conf := &CatalogConfig{Extensions: []string{".xml", ".mcat"}}
	tests := []struct {
		name string
		want bool
	}{
		{"movie.xml", true},
		{"MOVIE.XML", true},
		{"dir/album.mcat", true},
		{"notes.txt", false},
		{"xml", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := conf.HasExtension(tt.name); got != tt.want {
			t.Errorf("HasExtension(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
