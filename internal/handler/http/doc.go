// Package http implements the HTTP surface of the intake service.
//
// It wires the upload, submission and sweep endpoints onto a chi router and
// carries the cross-cutting middleware: request tracing, access logging,
// CORS for the browser form, per-client upload rate limiting, request body
// limits, gzip and Prometheus instrumentation. Handlers decode the request,
// delegate to the service layer and translate service errors into fixed
// caller-facing messages.
package http
