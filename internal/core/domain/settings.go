package domain

import "time"

const unknownDescription = "Unknown"

// CollisionPolicy decides what happens when a same-named file already exists
// in the backup directory.
type CollisionPolicy string

// Available collision policies.
const (
	// CollisionOverwrite replaces the existing backup file.
	CollisionOverwrite CollisionPolicy = "overwrite"

	// CollisionRename stores the new file under a numbered name.
	CollisionRename CollisionPolicy = "rename"

	// CollisionReject leaves the file in the source directory and reports an error.
	CollisionReject CollisionPolicy = "reject"
)

// IsValid returns true if the policy is recognised.
func (p CollisionPolicy) IsValid() bool {
	switch p {
	case CollisionOverwrite, CollisionRename, CollisionReject:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (p CollisionPolicy) String() string {
	return string(p)
}

// Description returns a human-readable description of the policy.
func (p CollisionPolicy) Description() string {
	switch p {
	case CollisionOverwrite:
		return "Overwrite (replace the existing backup)"
	case CollisionRename:
		return "Rename (keep both, number the new file)"
	case CollisionReject:
		return "Reject (leave the file in the source directory)"
	default:
		return unknownDescription
	}
}

// AllCollisionPolicies returns every policy.
func AllCollisionPolicies() []CollisionPolicy {
	return []CollisionPolicy{CollisionOverwrite, CollisionRename, CollisionReject}
}

// PathSettings locates the staging directories and the sales database.
type PathSettings struct {
	Source   string `validate:"required"`
	Backup   string `validate:"required,nefield=Source"`
	Database string `validate:"required"`
}

// ConsolidationSettings controls which files are consolidated and how.
type ConsolidationSettings struct {
	// Extensions are the recognised tabular suffixes, matched case-insensitively.
	Extensions []string `validate:"required,min=1,dive,required,startswith=."`

	// SkipDuplicates skips files whose checksum is already in the ledger.
	SkipDuplicates bool
}

// ArchiveSettings controls the archival mover.
type ArchiveSettings struct {
	Collision CollisionPolicy `validate:"required,oneof=overwrite rename reject"`
}

// ScheduleSettings controls the daily archival timer.
type ScheduleSettings struct {
	// FireTime is the daily "HH:MM" local time archival runs.
	FireTime string `validate:"required"`

	// CheckInterval is how often the loop polls the clock.
	CheckInterval time.Duration `validate:"gte=1s"`
}

// WatchSettings controls the upload watcher used by `serve`.
type WatchSettings struct {
	Enabled         bool
	AutoConsolidate bool

	// MinInterval is the minimum gap between automatic consolidations.
	MinInterval time.Duration `validate:"gte=0"`
}

// Settings is the complete application configuration.
type Settings struct {
	Paths         PathSettings
	Consolidation ConsolidationSettings
	Archive       ArchiveSettings
	Schedule      ScheduleSettings
	Watch         WatchSettings
}

// DefaultSettings returns the defaults matching the original deployment layout.
func DefaultSettings() Settings {
	return Settings{
		Paths: PathSettings{
			Source:   "Origen",
			Backup:   "Respaldo",
			Database: "ventas.db",
		},
		Consolidation: ConsolidationSettings{
			Extensions:     []string{".csv", ".xlsx"},
			SkipDuplicates: false,
		},
		Archive: ArchiveSettings{
			Collision: CollisionOverwrite,
		},
		Schedule: ScheduleSettings{
			FireTime:      "00:00",
			CheckInterval: time.Second,
		},
		Watch: WatchSettings{
			Enabled:         false,
			AutoConsolidate: false,
			MinInterval:     30 * time.Second,
		},
	}
}
