package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/heartmarshall/abaevdict/internal/domain"
)

// Drivers accepted by database.driver.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Corpus.validate(); err != nil {
		return fmt.Errorf("corpus: %w", err)
	}
	if err := c.Output.validate(); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	if err := c.Database.validate(); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if c.Gazetteer.Timeout <= 0 {
		return fmt.Errorf("gazetteer: timeout must be > 0 (got %v)", c.Gazetteer.Timeout)
	}
	if !slices.Contains([]string{"debug", "info", "warn", "error"}, strings.ToLower(c.Log.Level)) {
		return fmt.Errorf("log: unknown level %q", c.Log.Level)
	}
	if !slices.Contains([]string{"json", "text"}, strings.ToLower(c.Log.Format)) {
		return fmt.Errorf("log: unknown format %q", c.Log.Format)
	}
	return nil
}

func (c *CorpusConfig) validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be >= 1 (got %d)", c.Workers)
	}
	if !domain.OnError(c.OnError).IsValid() {
		return fmt.Errorf("on_error must be abort or skip (got %q)", c.OnError)
	}
	if c.PrimaryLanguage == "" {
		return fmt.Errorf("primary_language is required")
	}
	if c.DefaultDialect == "" {
		return fmt.Errorf("default_dialect is required")
	}
	return nil
}

func (o *OutputConfig) validate() error {
	if o.ListDelimiter == "" || o.ListDelimiter == "," || strings.ContainsAny(o.ListDelimiter, "\"\r\n") {
		return fmt.Errorf("list_delimiter %q cannot be empty or clash with CSV syntax", o.ListDelimiter)
	}
	return nil
}

func (d *DatabaseConfig) validate() error {
	switch d.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("driver must be %s or %s (got %q)", DriverSQLite, DriverPostgres, d.Driver)
	}
	if d.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be > 0 (got %d)", d.BatchSize)
	}
	if d.MaxConns <= 0 {
		return fmt.Errorf("max_conns must be > 0 (got %d)", d.MaxConns)
	}
	return nil
}
