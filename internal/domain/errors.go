package domain

import "errors"

var (
	// ErrTableNotFound indicates the named point table could not be loaded.
	ErrTableNotFound = errors.New("point table not found")
	// ErrInvalidTable is returned when a loaded table fails validation.
	ErrInvalidTable = errors.New("invalid point table")
	// ErrEmptyTableName is returned when no table name was given.
	ErrEmptyTableName = errors.New("point table name is empty")
)
