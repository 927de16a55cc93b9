package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/go-playground/validator/v10"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string `validate:"required"`
	LogLevel        string `validate:"oneof=debug info warn error"`
	LogFormat       string `validate:"oneof=json text"`
	ShutdownTimeout time.Duration
	MaxBodyBytes    int64 `validate:"gt=0"`

	// Batch predictions over Kafka; disabled unless KAFKA_ENABLED=true.
	KafkaEnabled     bool
	KafkaBrokers     []string `validate:"required_if=KafkaEnabled true"`
	KafkaSourceTopic string   `validate:"required_if=KafkaEnabled true"`
	KafkaSinkTopic   string   `validate:"required_if=KafkaEnabled true"`
	KafkaGroupID     string   `validate:"required_if=KafkaEnabled true"`

	BatchSize          int
	BatchFlushInterval time.Duration
}

// envNames maps struct fields to the variables that set them, for error messages.
var envNames = map[string]string{
	"HTTPAddr":         "HTTP_ADDR",
	"LogLevel":         "LOG_LEVEL",
	"LogFormat":        "LOG_FORMAT",
	"MaxBodyBytes":     "MAX_BODY_BYTES",
	"KafkaBrokers":     "KAFKA_BROKERS",
	"KafkaSourceTopic": "KAFKA_SOURCE_TOPIC",
	"KafkaSinkTopic":   "KAFKA_SINK_TOPIC",
	"KafkaGroupID":     "KAFKA_GROUP_ID",
}

var validate = validator.New()

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	batchSize, err := sharedcfg.ParseBatchSize()
	if err != nil {
		return nil, err
	}

	flushInterval, err := sharedcfg.ParseBatchFlushInterval()
	if err != nil {
		return nil, err
	}

	kafkaEnabled, err := strconv.ParseBool(sharedcfg.EnvOrDefault("KAFKA_ENABLED", "false"))
	if err != nil {
		return nil, errors.New("invalid KAFKA_ENABLED")
	}

	maxBodyBytes, err := parseMaxBodyBytes()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		MaxBodyBytes:    maxBodyBytes,

		KafkaEnabled:     kafkaEnabled,
		KafkaBrokers:     sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSourceTopic: sharedcfg.EnvOrDefault("KAFKA_SOURCE_TOPIC", "rainfall-prediction-requests"),
		KafkaSinkTopic:   sharedcfg.EnvOrDefault("KAFKA_SINK_TOPIC", "rainfall-predictions"),
		KafkaGroupID:     sharedcfg.EnvOrDefault("KAFKA_GROUP_ID", "raincast"),

		BatchSize:          batchSize,
		BatchFlushInterval: flushInterval,
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, describe(err)
	}
	return cfg, nil
}

func parseMaxBodyBytes() (int64, error) {
	s := os.Getenv("MAX_BODY_BYTES")
	if s == "" {
		return 64 << 10, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errors.New("invalid MAX_BODY_BYTES")
	}
	return n, nil
}

// describe turns the first validator failure into an error naming the variable.
func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	name, ok := envNames[fe.StructField()]
	if !ok {
		name = fe.StructField()
	}
	if fe.Tag() == "required" || fe.Tag() == "required_if" {
		return fmt.Errorf("%s is required", name)
	}
	return fmt.Errorf("invalid %s %q", name, fmt.Sprint(fe.Value()))
}
