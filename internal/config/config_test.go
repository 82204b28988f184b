package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

const validYAML = `
corpus:
  dir: "data/abaev"
  languages_path: "data/languages.csv"
  workers: 8
  on_error: "skip"
  lenient_form_types: true

output:
  dir: "out"
  list_delimiter: ";"

database:
  driver: "postgres"
  dsn: "postgres://u:p@localhost:5432/abaev"
  max_conns: 10
  batch_size: 250
  replace: true

gazetteer:
  base_url: "http://localhost:9000/languoid"
  timeout: "3s"

log:
  level: "debug"
  format: "json"
`

func TestLoad_ValidYAML(t *testing.T) {
	path := writeYAML(t, t.TempDir(), validYAML)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Corpus
	if cfg.Corpus.Dir != "data/abaev" {
		t.Errorf("corpus.dir = %q, want %q", cfg.Corpus.Dir, "data/abaev")
	}
	if cfg.Corpus.Workers != 8 {
		t.Errorf("corpus.workers = %d, want 8", cfg.Corpus.Workers)
	}
	if cfg.Corpus.OnError != "skip" {
		t.Errorf("corpus.on_error = %q, want skip", cfg.Corpus.OnError)
	}
	if !cfg.Corpus.LenientFormTypes {
		t.Error("corpus.lenient_form_types should be true")
	}
	if cfg.Corpus.Pattern != "*.xml" {
		t.Errorf("corpus.pattern = %q, want default *.xml", cfg.Corpus.Pattern)
	}
	if cfg.Corpus.ExcludePrefix != "abaev_!" {
		t.Errorf("corpus.exclude_prefix = %q, want default abaev_!", cfg.Corpus.ExcludePrefix)
	}
	if cfg.Corpus.PrimaryLanguage != "os" || cfg.Corpus.DefaultDialect != "os-x-iron" {
		t.Errorf("corpus languages = %q/%q, want os/os-x-iron", cfg.Corpus.PrimaryLanguage, cfg.Corpus.DefaultDialect)
	}

	// Output
	if cfg.Output.Dir != "out" {
		t.Errorf("output.dir = %q, want out", cfg.Output.Dir)
	}
	if cfg.Output.ListDelimiter != ";" {
		t.Errorf("output.list_delimiter = %q, want ;", cfg.Output.ListDelimiter)
	}

	// Database
	if cfg.Database.Driver != DriverPostgres {
		t.Errorf("database.driver = %q, want postgres", cfg.Database.Driver)
	}
	if cfg.Database.MaxConns != 10 {
		t.Errorf("database.max_conns = %d, want 10", cfg.Database.MaxConns)
	}
	if cfg.Database.BatchSize != 250 {
		t.Errorf("database.batch_size = %d, want 250", cfg.Database.BatchSize)
	}
	if !cfg.Database.Replace {
		t.Error("database.replace should be true")
	}

	// Gazetteer
	if cfg.Gazetteer.Timeout != 3*time.Second {
		t.Errorf("gazetteer.timeout = %v, want 3s", cfg.Gazetteer.Timeout)
	}

	// Log
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q, want %q", cfg.Log.Level, "debug")
	}
	if cfg.Log.Format != "json" {
		t.Errorf("log.format = %q, want %q", cfg.Log.Format, "json")
	}
}

func TestLoad_ENVOverridesYAML(t *testing.T) {
	path := writeYAML(t, t.TempDir(), validYAML)
	t.Setenv("CORPUS_WORKERS", "2")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Corpus.Workers != 2 {
		t.Errorf("corpus.workers = %d, want 2 (ENV override)", cfg.Corpus.Workers)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log.level = %q, want %q (ENV override)", cfg.Log.Level, "warn")
	}
}

func TestLoad_ConfigPathEnv(t *testing.T) {
	path := writeYAML(t, t.TempDir(), validYAML)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Corpus.Dir != "data/abaev" {
		t.Errorf("corpus.dir = %q, want value from CONFIG_PATH file", cfg.Corpus.Dir)
	}
}

func TestLoad_NoFile_ENVOnly(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("DATABASE_DSN", "test.db")
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Corpus.Workers != 4 {
		t.Errorf("corpus.workers = %d, want 4 (default)", cfg.Corpus.Workers)
	}
	if cfg.Corpus.OnError != "abort" {
		t.Errorf("corpus.on_error = %q, want abort (default)", cfg.Corpus.OnError)
	}
	if cfg.Output.ListDelimiter != "|" {
		t.Errorf("output.list_delimiter = %q, want | (default)", cfg.Output.ListDelimiter)
	}
	if cfg.Database.Driver != DriverSQLite {
		t.Errorf("database.driver = %q, want sqlite (default)", cfg.Database.Driver)
	}
	if cfg.Database.DSN != "test.db" {
		t.Errorf("database.dsn = %q, want test.db", cfg.Database.DSN)
	}
	if cfg.Gazetteer.BaseURL != "https://glottolog.org/resource/languoid/id" {
		t.Errorf("gazetteer.base_url = %q", cfg.Gazetteer.BaseURL)
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	if err == nil {
		t.Fatal("expected error for missing explicit config path")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeYAML(t, t.TempDir(), `{{{invalid yaml`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestLoad_InvalidValue(t *testing.T) {
	path := writeYAML(t, t.TempDir(), "corpus:\n  on_error: \"retry\"\n")

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected validation error for unknown on_error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"zero workers", func(c *Config) { c.Corpus.Workers = 0 }, true},
		{"unknown on_error", func(c *Config) { c.Corpus.OnError = "ignore" }, true},
		{"skip on_error", func(c *Config) { c.Corpus.OnError = "skip" }, false},
		{"empty primary language", func(c *Config) { c.Corpus.PrimaryLanguage = "" }, true},
		{"empty dialect", func(c *Config) { c.Corpus.DefaultDialect = "" }, true},
		{"comma delimiter", func(c *Config) { c.Output.ListDelimiter = "," }, true},
		{"empty delimiter", func(c *Config) { c.Output.ListDelimiter = "" }, true},
		{"quote delimiter", func(c *Config) { c.Output.ListDelimiter = `"` }, true},
		{"multi-char delimiter", func(c *Config) { c.Output.ListDelimiter = " / " }, false},
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }, true},
		{"postgres driver", func(c *Config) { c.Database.Driver = DriverPostgres }, false},
		{"zero batch", func(c *Config) { c.Database.BatchSize = 0 }, true},
		{"zero conns", func(c *Config) { c.Database.MaxConns = 0 }, true},
		{"zero timeout", func(c *Config) { c.Gazetteer.Timeout = 0 }, true},
		{"unknown log level", func(c *Config) { c.Log.Level = "verbose" }, true},
		{"upper-case log level", func(c *Config) { c.Log.Level = "WARN" }, false},
		{"unknown log format", func(c *Config) { c.Log.Format = "xml" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func validConfig() Config {
	return Config{
		Corpus: CorpusConfig{
			Dir:             "corpus",
			Pattern:         "*.xml",
			PrimaryLanguage: "os",
			DefaultDialect:  "os-x-iron",
			Workers:         4,
			OnError:         "abort",
		},
		Output: OutputConfig{
			Dir:           "csv",
			ListDelimiter: "|",
		},
		Database: DatabaseConfig{
			Driver:    DriverSQLite,
			DSN:       "abaev.db",
			MaxConns:  4,
			BatchSize: 500,
		},
		Gazetteer: GazetteerConfig{
			BaseURL: "https://glottolog.org/resource/languoid/id",
			Timeout: 10 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
