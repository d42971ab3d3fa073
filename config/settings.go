package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

const (
	DEFAULT_APP_ENV = "dev"
	CONFIG_NAME     = "esgpulse"

	STORE_MEMORY   = "memory"
	STORE_MONGO    = "mongo"
	STORE_DYNAMODB = "dynamodb"
)

// Settings is the effective process configuration, resolved from the
// environment, an optional esgpulse.yaml and built in defaults.
type Settings struct {
	AppEnv   string `yaml:"app_env"`
	Port     int    `yaml:"port"`
	LogLevel string `yaml:"log_level"`

	HuggingFaceToken string        `yaml:"huggingface_token"`
	InferenceBaseURL string        `yaml:"inference_base_url"`
	InferenceTimeout time.Duration `yaml:"inference_timeout"`

	NewsAPIKey        string        `yaml:"news_api_key"`
	NewsAPIBaseURL    string        `yaml:"news_api_base_url"`
	NewsAPIRPS        float64       `yaml:"news_api_rps"`
	NewsCacheTTL      time.Duration `yaml:"news_cache_ttl"`
	NewsEnrichContent bool          `yaml:"news_enrich_content"`

	StoreDriver   string `yaml:"store_driver"`
	MongoURI      string `yaml:"mongo_uri"`
	MongoDatabase string `yaml:"mongo_database"`
	DynamoDBTable string `yaml:"dynamodb_table"`
	AWSRegion     string `yaml:"aws_region"`
	AWSEndpoint   string `yaml:"aws_endpoint"`

	ValkeyAddress  string `yaml:"valkey_init_address"`
	ValkeyPassword string `yaml:"valkey_password"`
	ValkeyTLS      bool   `yaml:"valkey_tls"`

	KafkaBroker string `yaml:"kafka_broker"`
	KafkaTopic  string `yaml:"kafka_topic"`

	IngestConcurrency   int           `yaml:"ingest_concurrency"`
	IngestInterval      time.Duration `yaml:"ingest_interval"`
	HealthcheckInterval time.Duration `yaml:"healthcheck_interval"`

	ConfigFile string `yaml:"-"`
}

var defaults = map[string]interface{}{
	"app_env":   DEFAULT_APP_ENV,
	"port":      8080,
	"log_level": "info",

	"huggingface_token":  "",
	"inference_base_url": "https://api-inference.huggingface.co/models",
	"inference_timeout":  15 * time.Second,

	"news_api_key":        "",
	"news_api_base_url":   "https://newsapi.org/v2",
	"news_api_rps":        1.0,
	"news_cache_ttl":      5 * time.Minute,
	"news_enrich_content": false,

	"store_driver":   STORE_MEMORY,
	"mongo_uri":      "",
	"mongo_database": "esgpulse",
	"dynamodb_table": "Articles",
	"aws_region":     "us-west-2",
	"aws_endpoint":   "",

	"valkey_init_address": "",
	"valkey_password":     "",
	"valkey_tls":          false,

	"kafka_broker": "",
	"kafka_topic":  "esg-articles-analyzed",

	"ingest_concurrency":   1,
	"ingest_interval":      6 * time.Hour,
	"healthcheck_interval": 15 * time.Second,
}

// Load resolves Settings. Environment variables use the upper case key
// names (PORT, STORE_DRIVER, ...).
func Load() (Settings, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	v.SetConfigName(CONFIG_NAME)
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	s := Settings{
		AppEnv:   v.GetString("app_env"),
		Port:     v.GetInt("port"),
		LogLevel: v.GetString("log_level"),

		HuggingFaceToken: v.GetString("huggingface_token"),
		InferenceBaseURL: v.GetString("inference_base_url"),
		InferenceTimeout: v.GetDuration("inference_timeout"),

		NewsAPIKey:        v.GetString("news_api_key"),
		NewsAPIBaseURL:    v.GetString("news_api_base_url"),
		NewsAPIRPS:        v.GetFloat64("news_api_rps"),
		NewsCacheTTL:      v.GetDuration("news_cache_ttl"),
		NewsEnrichContent: v.GetBool("news_enrich_content"),

		StoreDriver:   v.GetString("store_driver"),
		MongoURI:      v.GetString("mongo_uri"),
		MongoDatabase: v.GetString("mongo_database"),
		DynamoDBTable: v.GetString("dynamodb_table"),
		AWSRegion:     v.GetString("aws_region"),
		AWSEndpoint:   v.GetString("aws_endpoint"),

		ValkeyAddress:  v.GetString("valkey_init_address"),
		ValkeyPassword: v.GetString("valkey_password"),
		ValkeyTLS:      v.GetBool("valkey_tls"),

		KafkaBroker: v.GetString("kafka_broker"),
		KafkaTopic:  v.GetString("kafka_topic"),

		IngestConcurrency:   v.GetInt("ingest_concurrency"),
		IngestInterval:      v.GetDuration("ingest_interval"),
		HealthcheckInterval: v.GetDuration("healthcheck_interval"),

		ConfigFile: v.ConfigFileUsed(),
	}

	return s, s.Validate()
}

func (s Settings) Validate() error {
	var errs []error

	switch s.StoreDriver {
	case STORE_MEMORY, STORE_MONGO, STORE_DYNAMODB:
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_DRIVER %q", s.StoreDriver))
	}
	if s.StoreDriver == STORE_MONGO && s.MongoURI == "" {
		errs = append(errs, errors.New("MONGO_URI is required for the mongo store"))
	}
	if s.Port <= 0 || s.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid PORT %d", s.Port))
	}
	if s.InferenceTimeout <= 0 {
		errs = append(errs, errors.New("INFERENCE_TIMEOUT must be positive"))
	}
	if s.IngestConcurrency < 1 {
		errs = append(errs, errors.New("INGEST_CONCURRENCY must be at least 1"))
	}
	if s.IngestInterval <= 0 {
		errs = append(errs, errors.New("INGEST_INTERVAL must be positive"))
	}
	if s.HealthcheckInterval <= 0 {
		errs = append(errs, errors.New("HEALTHCHECK_INTERVAL must be positive"))
	}

	return errors.Join(errs...)
}

// Masked returns a copy with credentials hidden, for display.
func (s Settings) Masked() Settings {
	s.HuggingFaceToken = mask(s.HuggingFaceToken)
	s.NewsAPIKey = mask(s.NewsAPIKey)
	s.ValkeyPassword = mask(s.ValkeyPassword)
	s.MongoURI = mask(s.MongoURI)
	return s
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	return "********"
}
