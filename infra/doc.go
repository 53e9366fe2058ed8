// Package infra contains technical adapters such as the Postgres stores,
// the MQTT ingest bridge and metrics exporters. These packages should
// depend only on the interfaces defined in the core packages.
package infra
