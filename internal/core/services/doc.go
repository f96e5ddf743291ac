// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// ConsolidationService and ArchiveService share one PipelineLock so a
// consolidation run and an archival run never see the same source
// directory at the same time.
package services
