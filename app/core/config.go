package core

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/corpora-ai/corpora/app/core/srv"
	"github.com/corpora-ai/corpora/pkg/chunker"
)

func MustLoadBaseConfig(path string) CoreConfig {
	if path == "" {
		return LoadBaseConfigFromENV()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	conf := &CoreConfig{}
	if err = toml.Unmarshal(raw, conf); err != nil {
		panic(err)
	}

	return *conf
}

func LoadBaseConfigFromENV() CoreConfig {
	var c CoreConfig
	c.FromENV()
	return c
}

type CoreConfig struct {
	Addr          string              `toml:"addr"`
	Log           Log                 `toml:"log"`
	Postgres      PGConfig            `toml:"postgres"`
	ObjectStorage ObjectStorageDriver `toml:"object_storage"`

	AI      srv.AIConfig  `toml:"ai"`
	Chunker ChunkerConfig `toml:"chunker"`
}

func (c *CoreConfig) FromENV() {
	c.Addr = os.Getenv("CORPORA_API_SERVICE_ADDRESS")
	c.Log.FromENV()
	c.Postgres.FromENV()
	c.ObjectStorage.FromENV()
	c.AI.FromENV()
	c.Chunker.FromENV()
}

type ObjectStorageDriver struct {
	Driver    string    `toml:"driver"`
	LocalRoot string    `toml:"local_root"`
	S3        *S3Config `toml:"s3"`
}

func (o *ObjectStorageDriver) FromENV() {
	o.Driver = os.Getenv("CORPORA_API_OBJECT_STORAGE_DRIVER")
	o.LocalRoot = os.Getenv("CORPORA_API_OBJECT_STORAGE_LOCAL_ROOT")
}

type S3Config struct {
	Bucket       string `toml:"bucket"`
	Region       string `toml:"region"`
	Endpoint     string `toml:"endpoint"`
	AccessKey    string `toml:"access_key"`
	SecretKey    string `toml:"secret_key"`
	UsePathStyle bool   `toml:"use_path_style"`
}

// ChunkerConfig overrides the splitter defaults. Zero values fall back to
// the package defaults.
type ChunkerConfig struct {
	MaxSize int `toml:"max_size"`
	Overlap int `toml:"overlap"`
}

func (c *ChunkerConfig) FromENV() {
	if v := os.Getenv("CORPORA_API_CHUNKER_MAX_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxSize = n
		}
	}
	if v := os.Getenv("CORPORA_API_CHUNKER_OVERLAP"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Overlap = n
		}
	}
}

func (c ChunkerConfig) MaxSizeOrDefault() int {
	if c.MaxSize <= 0 {
		return chunker.DefaultMaxSize
	}
	return c.MaxSize
}

func (c ChunkerConfig) OverlapOrDefault() int {
	if c.Overlap <= 0 {
		return chunker.DefaultOverlap
	}
	return c.Overlap
}

type PGConfig struct {
	DSN string `toml:"dsn"`
}

func (m *PGConfig) FromENV() {
	m.DSN = os.Getenv("CORPORA_API_POSTGRESQL_DSN")
}

func (c PGConfig) FormatDSN() string {
	return c.DSN
}

type Log struct {
	Level string `toml:"level"`
	Path  string `toml:"path"`
}

func (l *Log) FromENV() {
	l.Level = os.Getenv("CORPORA_API_LOG_LEVEL")
	l.Path = os.Getenv("CORPORA_API_LOG_PATH")
}

func (l *Log) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "info":
		return slog.LevelInfo
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}
