package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_AssistConfig(t *testing.T) {
	os.Setenv("ASSIST_BASE_URL", "http://assist.internal:5050/")
	os.Setenv("ASSIST_TIMEOUT", "45s")
	defer func() {
		os.Unsetenv("ASSIST_BASE_URL")
		os.Unsetenv("ASSIST_TIMEOUT")
	}()

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://assist.internal:5050", cfg.Assist.BaseURL)
	assert.Equal(t, 45*time.Second, cfg.Assist.Timeout)
}

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("ASSIST_BASE_URL")
	os.Unsetenv("ASSIST_TIMEOUT")
	os.Unsetenv("PATIENT_ID")
	os.Unsetenv("ALLOWED_ORIGINS")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5050", cfg.Assist.BaseURL)
	assert.Zero(t, cfg.Assist.Timeout)
	assert.Equal(t, "1", cfg.Session.DefaultPatientID)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.ServerAddr())
}

func TestLoad_AllowedOrigins(t *testing.T) {
	os.Setenv("ALLOWED_ORIGINS", "http://localhost:5173, https://care.example.org ,")
	defer os.Unsetenv("ALLOWED_ORIGINS")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"http://localhost:5173", "https://care.example.org"}, cfg.Server.AllowedOrigins)
}

func TestLoad_RejectsInvalidBaseURL(t *testing.T) {
	os.Setenv("ASSIST_BASE_URL", "not a url")
	defer os.Unsetenv("ASSIST_BASE_URL")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_RejectsUnknownLogLevel(t *testing.T) {
	os.Setenv("LOG_LEVEL", "verbose")
	defer os.Unsetenv("LOG_LEVEL")

	_, err := Load()
	assert.Error(t, err)
}
