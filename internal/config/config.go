package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"alfredoptarigan/resume-matcher/internal/nlp"
)

type Config struct {
	Server     ServerConfig
	Log        LogConfig
	Database   DatabaseConfig
	Qdrant     QdrantConfig
	Gemini     GeminiConfig
	NLP        NLPConfig
	Storage    StorageConfig
	Recorder   RecorderConfig
	HistoryMax int
}

type ServerConfig struct {
	Port string
	Env  string
}

type LogConfig struct {
	JSON  bool
	Debug bool
}

type DatabaseConfig struct {
	Driver     string
	Host       string
	Port       string
	User       string
	Password   string
	DBName     string
	SQLitePath string
}

type QdrantConfig struct {
	URL        string
	APIKey     string
	Collection string
	VectorSize uint64
}

type GeminiConfig struct {
	APIKey            string
	EmbedModel        string
	RequestsPerSecond float64
	BreakerFailures   uint32
	BreakerTimeout    time.Duration
}

type NLPConfig struct {
	SimilarityBackend string
	GazetteerPath     string
	ChunkSize         int
}

type StorageConfig struct {
	UploadPath  string
	MaxFileSize int64
	KeepUploads bool
}

type RecorderConfig struct {
	Concurrency int
	QueueSize   int
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "3000")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_JSON", false)
	v.SetDefault("LOG_DEBUG", false)

	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "resume_matcher")
	v.SetDefault("SQLITE_PATH", "./resume_matcher.db")

	v.SetDefault("QDRANT_URL", "")
	v.SetDefault("QDRANT_API_KEY", "")
	v.SetDefault("QDRANT_COLLECTION", "resume_matcher_history")
	v.SetDefault("QDRANT_VECTOR_SIZE", 768)

	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("GEMINI_EMBED_MODEL", "text-embedding-004")
	v.SetDefault("GEMINI_RPS", 5)
	v.SetDefault("GEMINI_BREAKER_FAILURES", 5)
	v.SetDefault("GEMINI_BREAKER_TIMEOUT", "30s")

	v.SetDefault("SIMILARITY_BACKEND", "")
	v.SetDefault("GAZETTEER_PATH", "")
	v.SetDefault("ANNOTATE_CHUNK_SIZE", 4000)

	v.SetDefault("UPLOAD_PATH", "./uploads")
	v.SetDefault("MAX_FILE_SIZE", 10485760)
	v.SetDefault("KEEP_UPLOADS", false)

	v.SetDefault("RECORDER_CONCURRENCY", 2)
	v.SetDefault("RECORDER_QUEUE_SIZE", 100)
	v.SetDefault("HISTORY_LIMIT", 10)
}

// Load reads .env when present, then the environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using environment and defaults.")
	}

	return FromViper(NewViper())
}

// NewViper returns a viper instance with defaults that reads the environment.
func NewViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	return v
}

// FromViper builds a Config from v.
func FromViper(v *viper.Viper) *Config {
	cfg := &Config{
		Server: ServerConfig{
			Port: v.GetString("PORT"),
			Env:  v.GetString("ENV"),
		},
		Log: LogConfig{
			JSON:  v.GetBool("LOG_JSON"),
			Debug: v.GetBool("LOG_DEBUG"),
		},
		Database: DatabaseConfig{
			Driver:     strings.ToLower(v.GetString("DB_DRIVER")),
			Host:       v.GetString("DB_HOST"),
			Port:       v.GetString("DB_PORT"),
			User:       v.GetString("DB_USER"),
			Password:   v.GetString("DB_PASSWORD"),
			DBName:     v.GetString("DB_NAME"),
			SQLitePath: v.GetString("SQLITE_PATH"),
		},
		Qdrant: QdrantConfig{
			URL:        v.GetString("QDRANT_URL"),
			APIKey:     v.GetString("QDRANT_API_KEY"),
			Collection: v.GetString("QDRANT_COLLECTION"),
			VectorSize: v.GetUint64("QDRANT_VECTOR_SIZE"),
		},
		Gemini: GeminiConfig{
			APIKey:            v.GetString("GEMINI_API_KEY"),
			EmbedModel:        v.GetString("GEMINI_EMBED_MODEL"),
			RequestsPerSecond: v.GetFloat64("GEMINI_RPS"),
			BreakerFailures:   v.GetUint32("GEMINI_BREAKER_FAILURES"),
			BreakerTimeout:    v.GetDuration("GEMINI_BREAKER_TIMEOUT"),
		},
		NLP: NLPConfig{
			SimilarityBackend: strings.ToLower(v.GetString("SIMILARITY_BACKEND")),
			GazetteerPath:     v.GetString("GAZETTEER_PATH"),
			ChunkSize:         v.GetInt("ANNOTATE_CHUNK_SIZE"),
		},
		Storage: StorageConfig{
			UploadPath:  v.GetString("UPLOAD_PATH"),
			MaxFileSize: v.GetInt64("MAX_FILE_SIZE"),
			KeepUploads: v.GetBool("KEEP_UPLOADS"),
		},
		Recorder: RecorderConfig{
			Concurrency: v.GetInt("RECORDER_CONCURRENCY"),
			QueueSize:   v.GetInt("RECORDER_QUEUE_SIZE"),
		},
		HistoryMax: v.GetInt("HISTORY_LIMIT"),
	}

	// Without an API key only the lexical backend can work.
	if cfg.NLP.SimilarityBackend == "" {
		cfg.NLP.SimilarityBackend = nlp.BackendLexical
		if cfg.Gemini.APIKey != "" {
			cfg.NLP.SimilarityBackend = nlp.BackendGemini
		}
	}

	return cfg
}

func (c *Config) GetDatabaseDSN() string {
	if c.Database.Driver == DriverSQLite {
		return c.Database.SQLitePath
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

// HistoryIndexEnabled reports whether analyses are indexed in Qdrant.
func (c *Config) HistoryIndexEnabled() bool {
	return c.Qdrant.URL != "" && c.Gemini.APIKey != ""
}
