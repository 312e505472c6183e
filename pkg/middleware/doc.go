// Package middleware provides the portal's HTTP telemetry middleware.
//
// This package includes:
//   - Prometheus metrics for requests, navigations and WebSocket sessions
//   - OpenTelemetry request spans
//   - slog request logging
//
// # Prometheus Metrics
//
//	m := middleware.NewMetrics(middleware.WithRegistry(reg))
//	r.Use(m.Handler)
//	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
//
// Metrics collected (namespace "portal" by default):
//   - portal_http_requests_total: requests by route pattern, method and status
//   - portal_http_request_duration_seconds: request duration by route and method
//   - portal_navigations_total: resolved navigations by state
//   - portal_navigation_errors_total: failed navigations by error code
//   - portal_websocket_sessions: open navigation sessions
//   - portal_websocket_errors_total: WebSocket errors by type
//
// A nil *Metrics is valid and records nothing.
//
// # OpenTelemetry
//
//	r.Use(middleware.OpenTelemetry(middleware.WithTracerName("portal")))
//
// The tracer comes from the global provider, so spans are dropped until
// main installs one with otel.SetTracerProvider.
//
// # Request Logging
//
//	r.Use(middleware.RequestLogger(logger))
package middleware
