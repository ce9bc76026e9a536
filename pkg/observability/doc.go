/*
Package observability turns pipeline hooks into logs and Prometheus metrics.

Both NewMetrics and LogHooks return domain.Hooks; combine them with domain.Join and pass
the result to the pipeline and the kanji client.
*/
package observability
