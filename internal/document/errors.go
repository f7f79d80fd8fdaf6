package document

import "errors"

var (
	// ErrRead is wrapped by Load when an existing source cannot be read.
	ErrRead = errors.New("read failed")
	// ErrWrite is wrapped by Save when the sink cannot be written.
	ErrWrite = errors.New("write failed")
	// ErrNoPath is returned when saving a document that has never had a path.
	ErrNoPath = errors.New("no file path specified for saving")
)
