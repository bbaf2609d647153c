package storage

import "errors"

var (
	ErrNoFreeName  = errors.New("no free artifact name")
	ErrBadFileName = errors.New("unrecognised artifact file name")
)
