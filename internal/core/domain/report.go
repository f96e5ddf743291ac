package domain

import "time"

// RunStatus summarises the outcome of a consolidation or move run.
type RunStatus string

// Run statuses.
const (
	// RunStatusEmpty means no qualifying files were found.
	RunStatusEmpty RunStatus = "empty"

	// RunStatusSuccess means every file succeeded (or was skipped).
	RunStatusSuccess RunStatus = "success"

	// RunStatusPartial means some files failed and some succeeded.
	RunStatusPartial RunStatus = "partial"

	// RunStatusFailed means every file failed, or the run was aborted.
	RunStatusFailed RunStatus = "failed"
)

// String returns the string representation.
func (s RunStatus) String() string {
	return string(s)
}

// FileOutcome records what happened to one file during a run.
type FileOutcome struct {
	// FileName identifies the source file.
	FileName string

	// Branch is the branch resolved for the file (consolidation only).
	Branch Branch

	// Rows is the number of rows appended (consolidation only).
	Rows int

	// Destination is the final backup path (move only).
	Destination string

	// Skipped is set when the file was intentionally not processed.
	Skipped bool

	// Err is the cause of a file-level failure.
	Err error
}

// Succeeded reports whether the file was processed without error.
func (o FileOutcome) Succeeded() bool {
	return o.Err == nil
}

// outcomeStatus derives a run status from per-file outcomes.
func outcomeStatus(files []FileOutcome, completed bool) RunStatus {
	if !completed {
		return RunStatusFailed
	}
	if len(files) == 0 {
		return RunStatusEmpty
	}
	switch countFailed(files) {
	case 0:
		return RunStatusSuccess
	case len(files):
		return RunStatusFailed
	default:
		return RunStatusPartial
	}
}

func countFailed(files []FileOutcome) int {
	n := 0
	for i := range files {
		if !files[i].Succeeded() {
			n++
		}
	}
	return n
}

// ConsolidationReport is the result of one consolidation run.
type ConsolidationReport struct {
	RunID     string
	StartedAt time.Time
	EndedAt   time.Time

	// Files holds one outcome per qualifying file, in processing order.
	Files []FileOutcome

	// Completed is false when a resource-level error aborted the run.
	Completed bool
}

// Status summarises the run.
func (r *ConsolidationReport) Status() RunStatus {
	return outcomeStatus(r.Files, r.Completed)
}

// Failed returns the number of files that failed.
func (r *ConsolidationReport) Failed() int {
	return countFailed(r.Files)
}

// RowsAppended returns the total rows written across all files.
func (r *ConsolidationReport) RowsAppended() int {
	total := 0
	for i := range r.Files {
		total += r.Files[i].Rows
	}
	return total
}

// MoveReport is the result of one archival run.
type MoveReport struct {
	RunID     string
	StartedAt time.Time
	EndedAt   time.Time

	// Files holds one outcome per qualifying file, in processing order.
	Files []FileOutcome

	// Completed is false when a resource-level error aborted the run.
	Completed bool
}

// Status summarises the run.
func (r *MoveReport) Status() RunStatus {
	return outcomeStatus(r.Files, r.Completed)
}

// Failed returns the number of files that failed.
func (r *MoveReport) Failed() int {
	return countFailed(r.Files)
}

// Moved returns the number of files relocated.
func (r *MoveReport) Moved() int {
	return len(r.Files) - r.Failed()
}
