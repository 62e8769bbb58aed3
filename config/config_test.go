package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PASSWORD", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8081", cfg.HTTPAddr)
	assert.Equal(t, "https://geocode-maps.yandex.ru/1.x", cfg.GeocoderURL)
	assert.Equal(t, 5*time.Second, cfg.GeocoderTimeout)
	assert.Equal(t, 10*time.Minute, cfg.PlaceMissTTL)
	assert.Equal(t, "RU", cfg.PhoneRegion)
	assert.Equal(t, 256, cfg.QRSize)
	assert.Equal(t, "medium", cfg.QRRecovery)
	assert.Equal(t, 10*time.Millisecond, cfg.KafkaBatchTimeout)
	assert.Equal(t, "host=db port=5432 user=postgres password=secret dbname=foodcart sslmode=disable", cfg.PostgresDSN())
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("GEOCODER_TIMEOUT", "soon")

	_, err := Load()
	assert.Error(t, err)
}

func TestNewKafkaWriter_FlushesWithoutWaitingForFullBatch(t *testing.T) {
	t.Setenv("KAFKA_BROKER", "kafka:9092")

	cfg, err := Load()
	require.NoError(t, err)

	writer := NewKafkaWriter(cfg, cfg.OrdersTopic)
	defer writer.Close()

	assert.Equal(t, "orders", writer.Topic)
	assert.Equal(t, "kafka:9092", writer.Addr.String())
	assert.Equal(t, 10*time.Millisecond, writer.BatchTimeout)
	assert.False(t, writer.Async)
}
