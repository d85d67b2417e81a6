package repository

import "errors"

// Sentinel kinds for data source errors.
var (
	ErrLoad   = errors.New("load data file")
	ErrDecode = errors.New("decode data file")
	ErrSave   = errors.New("save data file")
	ErrStore  = errors.New("snapshot store")
	ErrClosed = errors.New("snapshot store closed")
)
