// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import "errors"

var (
	// errNoHandlersAreCreated is returned by NewHandlers when no HTTP address
	// is configured. This is a fatal misconfiguration at startup.
	errNoHandlersAreCreated = errors.New("no handlers are created")

	// errNoMetricsRegistry is returned when NewHandlers gets a nil registry;
	// the /metrics route and request instrumentation need one.
	errNoMetricsRegistry = errors.New("metrics registry is required")
)
