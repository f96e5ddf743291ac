package domain

import "errors"

// Domain errors represent business logic failures.
// Resource-level errors abort a run; file-level errors are recorded in the
// run's report and the run continues with the next file.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Resource errors.

	// ErrDirectoryMissing indicates the source directory does not exist.
	ErrDirectoryMissing = errors.New("directory missing")

	// ErrStorageUnavailable indicates the sales store cannot be opened or reached.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// File errors.

	// ErrFileParse indicates a source file could not be read or parsed.
	ErrFileParse = errors.New("file parse error")

	// ErrStorageWrite indicates a single file's rows could not be written.
	ErrStorageWrite = errors.New("storage write error")

	// ErrFileMove indicates a source file could not be relocated to the backup directory.
	ErrFileMove = errors.New("file move error")

	// ErrBackupCollision indicates a same-named file already exists in the backup
	// directory and the collision policy rejects the move.
	ErrBackupCollision = errors.New("backup file already exists")
)

// IsFatal reports whether err must abort the current batch rather than be
// recorded against a single file.
func IsFatal(err error) bool {
	return errors.Is(err, ErrDirectoryMissing) || errors.Is(err, ErrStorageUnavailable)
}
