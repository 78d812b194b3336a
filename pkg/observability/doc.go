/*
Package observability provides tools for monitoring the conform engine.

It turns validation events into Prometheus metrics and structured log lines.
Both are delivered as domain.ValidationHooks and can be combined with
ChainHooks before being passed to conform.WithHooks.
*/
package observability
