// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// Storage backends accepted by [Storage.Backend].
const (
	StorageBackendLocal  = "local"
	StorageBackendRemote = "remote"
)

// StructuredConfig is the top-level configuration container for the
// pilot-docs intake service. It is populated by merging values from
// environment variables, command-line flags, and an optional JSON file, and
// then injected into each component at construction time.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Server holds the listen address and per-request limits of the HTTP
	// server.
	Server Server `envPrefix:"SERVER_"`

	// Mail holds the outbound mail account and recipient routing.
	// The variable names match the ones the form handlers have always used
	// (EMAIL_USER, EMAIL_PASS, RECIPIENT_EMAIL), hence no prefix.
	Mail Mail

	// Storage selects and configures the blob store for uploaded documents.
	Storage Storage `envPrefix:"STORAGE_"`

	// Cleanup holds the shared secret for the expiry sweeper.
	Cleanup Cleanup

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// LogLevel is the minimum zerolog level emitted (debug, info, warn...).
	LogLevel string `env:"LOG_LEVEL"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address the HTTP server listens on.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds reading and writing a single request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// SubmitTimeout is the deadline for assembling and delivering one form
	// submission. Exceeding it yields HTTP 408.
	// Env: SERVER_SUBMIT_TIMEOUT
	SubmitTimeout time.Duration `env:"SUBMIT_TIMEOUT"`

	// UploadRateLimit is the sustained number of uploads per second allowed
	// for a single client IP.
	// Env: SERVER_UPLOAD_RATE_LIMIT
	UploadRateLimit float64 `env:"UPLOAD_RATE_LIMIT"`

	// UploadRateBurst is the burst size paired with UploadRateLimit.
	// Env: SERVER_UPLOAD_RATE_BURST
	UploadRateBurst int `env:"UPLOAD_RATE_BURST"`

	// AllowedOrigin is sent in Access-Control-Allow-Origin.
	// Env: SERVER_ALLOWED_ORIGIN
	AllowedOrigin string `env:"ALLOWED_ORIGIN"`
}

// Mail holds the SMTP account used to deliver submissions.
type Mail struct {
	// Host and Port of the SMTP submission server.
	Host string `env:"EMAIL_HOST"`
	Port int    `env:"EMAIL_PORT"`

	// Username is also the sender address and the mailbox that receives
	// backup deliveries.
	Username string `env:"EMAIL_USER"`
	Password string `env:"EMAIL_PASS"`

	// Recipient is the production mailbox for submissions.
	Recipient string `env:"RECIPIENT_EMAIL"`

	// TestRecipient receives submissions whose declared name marks them as
	// test traffic.
	TestRecipient string `env:"EMAIL_TEST_RECIPIENT"`

	// AttachSummary adds a generated PDF summary to the document archive.
	AttachSummary bool `env:"EMAIL_ATTACH_SUMMARY"`

	// Timeout bounds dialing and talking to the SMTP server.
	Timeout time.Duration `env:"EMAIL_TIMEOUT"`
}

// Storage groups the configuration for the blob store.
type Storage struct {
	// Backend is either "local" (files on disk) or "remote" (HTTP blob API).
	// Env: STORAGE_BACKEND
	Backend string `env:"BACKEND"`

	// Files configures the local backend.
	Files Files `envPrefix:"FILES_"`

	// Blob configures the remote backend.
	Blob Blob `envPrefix:"BLOB_"`
}

// Files holds file-system settings for the local blob backend.
type Files struct {
	// Dir is the root directory uploads are written under.
	// Env: STORAGE_FILES_DIR
	Dir string `env:"DIR"`
}

// Blob holds settings for the remote HTTP blob API.
type Blob struct {
	// BaseURL of the blob API.
	// Env: STORAGE_BLOB_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// Token is the read-write bearer token.
	// Env: STORAGE_BLOB_TOKEN
	Token string `env:"TOKEN"`

	// RequestTimeout bounds a single blob API call.
	// Env: STORAGE_BLOB_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Cleanup holds the expiry sweeper settings.
type Cleanup struct {
	// Key is the shared secret callers must present.
	// Env: CLEANUP_KEY
	Key string `env:"CLEANUP_KEY"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// SweepInterval runs the expiry sweeper in-process at this interval.
	// Zero leaves sweeping to an external scheduler.
	// Env: WORKERS_SWEEP_INTERVAL
	SweepInterval time.Duration `env:"SWEEP_INTERVAL"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources. Later sources override earlier
// non-zero fields:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Fields still empty afterwards are filled from [Defaults].
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(args).
		withJSON().
		build()
}

// Defaults returns the values used for every field no source has set.
func Defaults() *StructuredConfig {
	return &StructuredConfig{
		Server: Server{
			HTTPAddress:     ":8080",
			RequestTimeout:  30 * time.Second,
			SubmitTimeout:   60 * time.Second,
			UploadRateLimit: 2,
			UploadRateBurst: 12,
			AllowedOrigin:   "*",
		},
		Mail: Mail{
			Host:          "smtp.gmail.com",
			Port:          587,
			TestRecipient: "pilot-docs-test@example.com",
			Timeout:       20 * time.Second,
		},
		Storage: Storage{
			Backend: StorageBackendLocal,
			Files:   Files{Dir: "./data/blobs"},
			Blob: Blob{
				BaseURL:        "https://blob.vercel-storage.com",
				RequestTimeout: 30 * time.Second,
			},
		},
		LogLevel: "info",
	}
}
