// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - SalesStore: Consolidated table, schema and processed-file ledger
//   - FileSource: Lists and fingerprints files in a staging directory
//   - Archiver: Relocates source files into the backup directory
//   - SalesParser: Turns a tabular export into sales records
//   - SchedulerStore: Scheduler execution history
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
