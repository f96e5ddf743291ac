// Package staging provides the filesystem side of the pipeline: listing
// uploaded exports in a staging directory and relocating them into the backup
// directory once consolidated.
//
// Files are matched by extension, case-insensitively. Only regular files at
// the top level of a directory are considered; subdirectories are ignored.
package staging
