package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Corpus    CorpusConfig    `yaml:"corpus"`
	Output    OutputConfig    `yaml:"output"`
	Database  DatabaseConfig  `yaml:"database"`
	Gazetteer GazetteerConfig `yaml:"gazetteer"`
	Log       LogConfig       `yaml:"log"`
}

// CorpusConfig describes where the dictionary documents live and how they
// are extracted.
type CorpusConfig struct {
	Dir              string `yaml:"dir"                env:"CORPUS_DIR"                env-default:"corpus"`
	LanguagesPath    string `yaml:"languages_path"     env:"CORPUS_LANGUAGES_PATH"     env-default:"languages.csv"`
	Pattern          string `yaml:"pattern"            env:"CORPUS_PATTERN"            env-default:"*.xml"`
	ExcludePrefix    string `yaml:"exclude_prefix"     env:"CORPUS_EXCLUDE_PREFIX"     env-default:"abaev_!"`
	PrimaryLanguage  string `yaml:"primary_language"   env:"CORPUS_PRIMARY_LANGUAGE"   env-default:"os"`
	DefaultDialect   string `yaml:"default_dialect"    env:"CORPUS_DEFAULT_DIALECT"    env-default:"os-x-iron"`
	Workers          int    `yaml:"workers"            env:"CORPUS_WORKERS"            env-default:"4"`
	OnError          string `yaml:"on_error"           env:"CORPUS_ON_ERROR"           env-default:"abort"`
	LenientFormTypes bool   `yaml:"lenient_form_types" env:"CORPUS_LENIENT_FORM_TYPES" env-default:"false"`
}

// OutputConfig holds CSV output settings.
type OutputConfig struct {
	Dir           string `yaml:"dir"            env:"OUTPUT_DIR"            env-default:"csv"`
	ListDelimiter string `yaml:"list_delimiter" env:"OUTPUT_LIST_DELIMITER" env-default:"|"`
	SkipManifest  bool   `yaml:"skip_manifest"  env:"OUTPUT_SKIP_MANIFEST"  env-default:"false"`
}

// DatabaseConfig holds settings for loading the tables into a database.
type DatabaseConfig struct {
	Driver          string        `yaml:"driver"             env:"DATABASE_DRIVER"             env-default:"sqlite"`
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-default:"abaev.db"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"4"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	BatchSize       int           `yaml:"batch_size"         env:"DATABASE_BATCH_SIZE"         env-default:"500"`
	Replace         bool          `yaml:"replace"            env:"DATABASE_REPLACE"            env-default:"false"`
}

// GazetteerConfig holds settings for the language coordinate lookup.
type GazetteerConfig struct {
	BaseURL string        `yaml:"base_url" env:"GAZETTEER_BASE_URL" env-default:"https://glottolog.org/resource/languoid/id"`
	Timeout time.Duration `yaml:"timeout"  env:"GAZETTEER_TIMEOUT"  env-default:"10s"`
	Retries uint64        `yaml:"retries"  env:"GAZETTEER_RETRIES"  env-default:"2"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}
