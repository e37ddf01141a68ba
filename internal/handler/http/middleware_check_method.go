// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"maps"
	"net/http"
	"slices"
	"strings"

	"github.com/MKhiriev/pilot-docs-intake/internal/utils"
	"github.com/MKhiriev/pilot-docs-intake/models"
	"github.com/go-chi/chi/v5"
)

// methodNotAllowedMessage is the body every endpoint has always returned for
// an unsupported method.
const methodNotAllowedMessage = "Method not allowed"

// CheckHTTPMethod returns an [http.HandlerFunc] that is intended to be
// registered as the router's MethodNotAllowed handler via
// [chi.Mux.MethodNotAllowed].
//
// It answers with HTTP 405 and the JSON body {"error":"Method not allowed"}.
// The Allow header lists the methods registered for the requested path,
// found by comparing each route pattern of router with the raw request path.
// Only exact pattern matches are considered.
//
// Usage:
//
//	router := chi.NewRouter()
//	// ... register routes ...
//	router.MethodNotAllowed(CheckHTTPMethod(router))
func CheckHTTPMethod(router *chi.Mux) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		for _, route := range router.Routes() {
			if route.Pattern != r.URL.Path {
				continue
			}
			methods := slices.Sorted(maps.Keys(route.Handlers))
			w.Header().Set("Allow", strings.Join(methods, ", "))
			break
		}

		utils.WriteJSON(w, models.ErrorResponse{Error: methodNotAllowedMessage}, http.StatusMethodNotAllowed)
	}
}
