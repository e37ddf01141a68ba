// Package utils provides general-purpose helper utilities used across
// different parts of the service: HTTP response writing, client IP
// extraction, data URL decoding, constant-time secret comparison, id
// generation and HTTP client initialization.
package utils
