package configs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "PAYMENT_CURRENCY", "PAYMENT_GATEWAY_TIMEOUT", "MIDTRANS_USE_PROD", "DB_MAX_OPEN_CONNS"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "IDR", cfg.Payment.Currency)
	assert.Equal(t, 15*time.Second, cfg.Payment.GatewayTimeout)
	assert.False(t, cfg.Payment.UseProduction)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("PAYMENT_GATEWAY_TIMEOUT", "3s")
	t.Setenv("MIDTRANS_USE_PROD", "true")
	t.Setenv("DB_MAX_OPEN_CONNS", "not-a-number")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.Payment.GatewayTimeout)
	assert.True(t, cfg.Payment.UseProduction)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
}

func TestGetEnv_FallsBackOnEmpty(t *testing.T) {
	t.Setenv("SMARTEDU_TEST_KEY", "")
	assert.Equal(t, "fallback", GetEnv("SMARTEDU_TEST_KEY", "fallback"))
	assert.Equal(t, "", GetEnv("SMARTEDU_TEST_KEY"))
}
