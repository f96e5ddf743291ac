// Package watch observes the source directory for newly uploaded exports.
//
// Every arrival is logged. With auto-consolidation enabled, arrivals also
// trigger a consolidation run once uploads have had time to settle, never
// more often than the configured minimum interval.
package watch
