/*
Package observability provides tools for monitoring structure registries.

NewMetrics creates Prometheus collectors for registrations and construction
attempts; its Hooks method returns registry hooks that feed them and emit
structured log events:

	promReg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(promReg, observability.WithLogger(logger))
	reg := class.NewRegistry(class.WithHooks(metrics.Hooks()))

Construction attempts are labelled by structure and result (see Result).
*/
package observability
