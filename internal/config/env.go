// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
)

// parseEnv populates cfg from the process environment using the caarlos0/env
// library. Struct fields are mapped via their `env` and `envPrefix` tags
// defined on [StructuredConfig] and its nested types.
//
// Variables that are present but blank are ignored, so an empty
// RECIPIENT_EMAIL= line in a deployment file reads as "unset".
func parseEnv(cfg *StructuredConfig) error {
	opts := env.Options{
		Environment: nonBlankEnvironment(os.Environ()),
	}

	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	return nil
}

func nonBlankEnvironment(environ []string) map[string]string {
	vars := env.ToMap(environ)
	for k, v := range vars {
		if strings.TrimSpace(v) == "" {
			delete(vars, k)
		}
	}
	return vars
}
