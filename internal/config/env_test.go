// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"CONFIG": "/path/to/config.json",

		"SERVER_ADDRESS":           "localhost:8080",
		"SERVER_REQUEST_TIMEOUT":   "30s",
		"SERVER_SUBMIT_TIMEOUT":    "45s",
		"SERVER_UPLOAD_RATE_LIMIT": "1.5",
		"SERVER_UPLOAD_RATE_BURST": "4",
		"SERVER_ALLOWED_ORIGIN":    "https://forms.example.com",

		"EMAIL_HOST":           "smtp.example.com",
		"EMAIL_PORT":           "465",
		"EMAIL_USER":           "intake@example.com",
		"EMAIL_PASS":           "app-password",
		"RECIPIENT_EMAIL":      "crew@example.com",
		"EMAIL_TEST_RECIPIENT": "qa@example.com",
		"EMAIL_ATTACH_SUMMARY": "true",
		"EMAIL_TIMEOUT":        "10s",

		"STORAGE_BACKEND":              "remote",
		"STORAGE_FILES_DIR":            "/var/data",
		"STORAGE_BLOB_BASE_URL":        "https://blob.example.com",
		"STORAGE_BLOB_TOKEN":           "blob-token",
		"STORAGE_BLOB_REQUEST_TIMEOUT": "5s",

		"CLEANUP_KEY":            "sweep-secret",
		"WORKERS_SWEEP_INTERVAL": "1h",
		"LOG_LEVEL":              "warn",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)

	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 45*time.Second, cfg.Server.SubmitTimeout)
	assert.Equal(t, 1.5, cfg.Server.UploadRateLimit)
	assert.Equal(t, 4, cfg.Server.UploadRateBurst)
	assert.Equal(t, "https://forms.example.com", cfg.Server.AllowedOrigin)

	assert.Equal(t, "smtp.example.com", cfg.Mail.Host)
	assert.Equal(t, 465, cfg.Mail.Port)
	assert.Equal(t, "intake@example.com", cfg.Mail.Username)
	assert.Equal(t, "app-password", cfg.Mail.Password)
	assert.Equal(t, "crew@example.com", cfg.Mail.Recipient)
	assert.Equal(t, "qa@example.com", cfg.Mail.TestRecipient)
	assert.True(t, cfg.Mail.AttachSummary)
	assert.Equal(t, 10*time.Second, cfg.Mail.Timeout)

	assert.Equal(t, "remote", cfg.Storage.Backend)
	assert.Equal(t, "/var/data", cfg.Storage.Files.Dir)
	assert.Equal(t, "https://blob.example.com", cfg.Storage.Blob.BaseURL)
	assert.Equal(t, "blob-token", cfg.Storage.Blob.Token)
	assert.Equal(t, 5*time.Second, cfg.Storage.Blob.RequestTimeout)

	assert.Equal(t, "sweep-secret", cfg.Cleanup.Key)
	assert.Equal(t, time.Hour, cfg.Workers.SweepInterval)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestParseEnv_PartialFields(t *testing.T) {
	envVars := map[string]string{
		"EMAIL_USER":     "intake@example.com",
		"SERVER_ADDRESS": "localhost:8080",
	}
	setEnvVars(t, envVars)

	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	require.NoError(t, err)

	assert.Equal(t, "intake@example.com", cfg.Mail.Username)
	assert.Empty(t, cfg.Mail.Password)
	assert.Empty(t, cfg.Mail.Recipient)

	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
	assert.Zero(t, cfg.Server.RequestTimeout)

	assert.Empty(t, cfg.Storage.Backend)
	assert.Empty(t, cfg.Cleanup.Key)
	assert.Empty(t, cfg.JSONFilePath)
}

func TestParseEnv_EmptyEnv(t *testing.T) {
	clearEnvVars(t)

	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestParseEnv_BlankValuesAreIgnored(t *testing.T) {
	setEnvVars(t, map[string]string{
		"RECIPIENT_EMAIL": "   ",
		"CLEANUP_KEY":     "",
	})

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Empty(t, cfg.Mail.Recipient)
	assert.Empty(t, cfg.Cleanup.Key)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	setEnvVars(t, map[string]string{
		"SERVER_SUBMIT_TIMEOUT": "invalid_duration",
	})

	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "env")
}

func TestParseEnv_DurationFormats(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		expected time.Duration
	}{
		{"hours", "2h", 2 * time.Hour},
		{"minutes", "45m", 45 * time.Minute},
		{"seconds", "30s", 30 * time.Second},
		{"combined", "1h30m", 90 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setEnvVars(t, map[string]string{
				"SERVER_REQUEST_TIMEOUT": tt.envValue,
			})

			cfg := &StructuredConfig{}
			err := parseEnv(cfg)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, cfg.Server.RequestTimeout)
		})
	}
}

// Helpers

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	clearEnvVars(t)
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func clearEnvVars(t *testing.T) {
	t.Helper()
	keys := []string{
		"CONFIG",

		"SERVER_ADDRESS",
		"SERVER_REQUEST_TIMEOUT",
		"SERVER_SUBMIT_TIMEOUT",
		"SERVER_UPLOAD_RATE_LIMIT",
		"SERVER_UPLOAD_RATE_BURST",
		"SERVER_ALLOWED_ORIGIN",

		"EMAIL_HOST",
		"EMAIL_PORT",
		"EMAIL_USER",
		"EMAIL_PASS",
		"RECIPIENT_EMAIL",
		"EMAIL_TEST_RECIPIENT",
		"EMAIL_ATTACH_SUMMARY",
		"EMAIL_TIMEOUT",

		"STORAGE_BACKEND",
		"STORAGE_FILES_DIR",
		"STORAGE_BLOB_BASE_URL",
		"STORAGE_BLOB_TOKEN",
		"STORAGE_BLOB_REQUEST_TIMEOUT",

		"CLEANUP_KEY",
		"WORKERS_SWEEP_INTERVAL",
		"LOG_LEVEL",
	}
	for _, k := range keys {
		// t.Setenv registers the restore; Unsetenv then hides the variable
		t.Setenv(k, "")
		_ = os.Unsetenv(k)
	}
}
