package service

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/skip2/go-qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderQRCode(t *testing.T) {
	tests := []struct {
		name      string
		publicURL string
		size      int
		recovery  string
		wantLevel qrcode.RecoveryLevel
		wantSize  int
		wantErr   bool
	}{
		{name: "defaults", publicURL: "http://localhost:8081", wantLevel: qrcode.Medium, wantSize: 256},
		{name: "explicit", publicURL: "https://foodcart.example.com", size: 128, recovery: "HIGH", wantLevel: qrcode.High, wantSize: 128},
		{name: "unknown level", publicURL: "http://localhost:8081", recovery: "ultra", wantErr: true},
		{name: "relative url", publicURL: "/orders", wantErr: true},
		{name: "negative size", publicURL: "http://localhost:8081", size: -4, wantErr: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			generator, err := NewOrderQRCode(testCase.publicURL, testCase.size, testCase.recovery)

			if testCase.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.wantLevel, generator.level)
			assert.Equal(t, testCase.wantSize, generator.size)
		})
	}
}

func TestOrderQRCode_OrderURL(t *testing.T) {
	generator, err := NewOrderQRCode("https://foodcart.example.com/ops/", 0, "")
	require.NoError(t, err)

	link, err := generator.OrderURL(42)

	require.NoError(t, err)
	assert.Equal(t, "https://foodcart.example.com/ops/api/orders/42", link)
}

func TestOrderQRCode_Generate(t *testing.T) {
	generator, err := NewOrderQRCode("http://localhost:8081", 200, "low")
	require.NoError(t, err)

	image, err := generator.Generate(42)
	require.NoError(t, err)

	cfg, err := png.DecodeConfig(bytes.NewReader(image))
	require.NoError(t, err)
	assert.Equal(t, 200, cfg.Width)
	assert.Equal(t, 200, cfg.Height)
}
