package db

import "errors"

var (
	// ErrKeyNotFound is returned by Get for an absent or expired key.
	ErrKeyNotFound = errors.New("db: key not found")
	// ErrTooManyResults is returned by ListAll when the match count exceeds its cap.
	ErrTooManyResults = errors.New("db: too many results")
	// ErrIndexExists is returned by CreateIndex when the index is already there.
	ErrIndexExists = errors.New("db: index already exists")
)

// Command names recorded in Error.Op.
const (
	OpCreateIndex = "FT.CREATE"
	OpIndexInfo   = "FT.INFO"
	OpSearch      = "FT.SEARCH"
	OpHGetAll     = "HGETALL"
	OpHSet        = "HSET"
	OpGet         = "GET"
	OpSet         = "SET"
)

// Error wraps a driver error with the command that failed.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
