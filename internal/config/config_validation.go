// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// validate checks that the final merged [StructuredConfig] can be used to
// start the server. Settings that only a single handler needs (mail account,
// cleanup key) are not checked here; see [Mail.Ready] and [Cleanup.Ready].
func (cfg *StructuredConfig) validate() error {
	switch cfg.Storage.Backend {
	case StorageBackendLocal:
		if cfg.Storage.Files.Dir == "" {
			return fmt.Errorf("%w: empty files directory", ErrInvalidStorageConfigs)
		}
	case StorageBackendRemote:
		if cfg.Storage.Blob.BaseURL == "" {
			return fmt.Errorf("%w: empty blob base url", ErrInvalidStorageConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidStorageConfigs, cfg.Storage.Backend)
	}

	if cfg.Server.RequestTimeout < 0 || cfg.Server.SubmitTimeout < 0 ||
		cfg.Server.UploadRateLimit < 0 || cfg.Server.UploadRateBurst < 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.Workers.SweepInterval < 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

// Ready reports whether the mail account and production recipient are set.
func (m Mail) Ready() error {
	if m.Username == "" || m.Password == "" {
		return ErrMailCredentialsMissing
	}
	if m.Recipient == "" {
		return ErrMailRecipientMissing
	}
	return nil
}

// Ready reports whether the cleanup shared secret is set.
func (c Cleanup) Ready() error {
	if c.Key == "" {
		return ErrCleanupKeyMissing
	}
	return nil
}
