// Package memory provides in-memory implementations of driven ports.
// They back dry runs (nothing is persisted) and tests.
package memory
