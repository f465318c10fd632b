// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package process

import "errors"

// One error category per pipeline stage that can fail. Every failure
// returned by File wraps exactly one of these, so callers can classify
// with errors.Is. All are per-file: the batch driver never aborts on
// any of them.
var (
	// ErrNotFound reports a path that does not resolve to a regular file.
	ErrNotFound = errors.New("file not found")

	// ErrUnsupportedType reports an extension outside the supported set.
	ErrUnsupportedType = errors.New("unsupported file type")

	// ErrBackup reports a backup copy that could not be written.
	ErrBackup = errors.New("cannot create backup")

	// ErrRead reports content that could not be read or decoded.
	ErrRead = errors.New("cannot read file")

	// ErrWrite reports transformed content that could not be written back.
	ErrWrite = errors.New("cannot write file")
)
