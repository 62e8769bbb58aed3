package config

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/kelseyhightower/envconfig"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8081"`

	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBName     string `envconfig:"DB_NAME" default:"foodcart"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	RedisHost string `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort string `envconfig:"REDIS_PORT" default:"6379"`

	KafkaBroker       string        `envconfig:"KAFKA_BROKER" default:"localhost:9092"`
	OrdersTopic       string        `envconfig:"ORDERS_TOPIC" default:"orders"`
	WarmerGroupID     string        `envconfig:"WARMER_GROUP_ID" default:"places-warmer"`
	KafkaBatchTimeout time.Duration `envconfig:"KAFKA_BATCH_TIMEOUT" default:"10ms"`

	GeocoderAPIKey      string        `envconfig:"YANDEX_GEOCODER_API_KEY"`
	GeocoderURL         string        `envconfig:"YANDEX_GEOCODER_URL" default:"https://geocode-maps.yandex.ru/1.x"`
	GeocoderTimeout     time.Duration `envconfig:"GEOCODER_TIMEOUT" default:"5s"`
	GeocoderConcurrency int           `envconfig:"GEOCODER_CONCURRENCY" default:"4"`
	PlaceMissTTL        time.Duration `envconfig:"PLACE_MISS_TTL" default:"10m"`

	PhoneRegion string `envconfig:"PHONE_REGION" default:"RU"`
	MediaURL    string `envconfig:"MEDIA_URL" default:"/media/"`
	PublicURL   string `envconfig:"PUBLIC_URL" default:"http://localhost:8081"`
	QRSize      int    `envconfig:"QR_SIZE" default:"256"`
	QRRecovery  string `envconfig:"QR_RECOVERY" default:"medium"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) PostgresDSN() string {
	return "host=" + c.DBHost + " port=" + c.DBPort + " user=" + c.DBUser +
		" password=" + c.DBPassword + " dbname=" + c.DBName + " sslmode=" + c.DBSSLMode
}

func SetupLogger(cfg *Config) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
	if cfg.LogFormat == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}

func MustInitPostgres(cfg *Config) *sqlx.DB {
	db, err := sqlx.Open("postgres", cfg.PostgresDSN())
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	if err = db.Ping(); err != nil {
		log.Fatal("Failed to ping database: ", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db
}

func MustInitRedis(cfg *Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisHost + ":" + cfg.RedisPort,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to Redis: ", err)
	}

	return client
}

func NewKafkaReader(cfg *Config, topic, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{cfg.KafkaBroker},
		Topic:   topic,
		GroupID: groupID,
	})
}

func NewKafkaWriter(cfg *Config, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.KafkaBroker),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		BatchTimeout:           cfg.KafkaBatchTimeout,
		WriteTimeout:           5 * time.Second,
		AllowAutoTopicCreation: true,
	}
}
