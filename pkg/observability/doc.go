/*
Package observability provides lifecycle hooks for monitoring carousels.

Metrics binds Prometheus collectors to domain.LifecycleHooks (transitions by
source and direction, rejected intents, autoplay and index gauges). LoggingHooks
writes the same events as structured log lines.
*/
package observability
