/*
Package observability exposes recorder and merge activity as Prometheus metrics.

Metrics bind to the domain hook structs, so any recorder or unified tree can be
instrumented without knowing about Prometheus:

	m := observability.NewMetrics(prometheus.DefaultRegisterer)
	rec := memory.NewGraph(memory.WithHooks(m.RecorderHooks()))
	tree := unified.New(unified.WithHooks(m.MergeHooks()))
*/
package observability
