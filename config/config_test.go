package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("COURSEHUB_TEST_VALUE", "set")

	assert.Equal(t, "set", getEnv("COURSEHUB_TEST_VALUE", "fallback"))
	assert.Equal(t, "fallback", getEnv("COURSEHUB_TEST_MISSING", "fallback"))
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{name: "valid integer", value: "7", want: 7},
		{name: "empty uses default", value: "", want: 5},
		{name: "garbage uses default", value: "seven", want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("COURSEHUB_TEST_INT", tt.value)
			assert.Equal(t, tt.want, getEnvInt("COURSEHUB_TEST_INT", 5))
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PAYMENT_MODE", "")
	t.Setenv("EMAIL_MAX_ATTEMPTS", "")
	t.Setenv("MAIL_PROVIDER", "")

	LoadConfig()

	assert.Equal(t, "mock", AppConfig.PaymentMode)
	assert.Equal(t, 5, AppConfig.EmailMaxAttempts)
	assert.Equal(t, "smtp", AppConfig.MailProvider)
}
