package dirbuild

import "errors"

var (
	// ErrPath is returned when a directory cannot be listed.
	ErrPath = errors.New("path error")
	// ErrClassify is returned when an entry cannot be stat'ed.
	ErrClassify = errors.New("classification error")
	// ErrResolve is returned when the resolver fails on a selected file.
	ErrResolve = errors.New("resolution error")
)
