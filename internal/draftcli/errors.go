package draftcli

import "errors"

// Error constants.
var (
	ErrNoInput = errors.New("input closed before the draft was entered")
	ErrRemote  = errors.New("remote request failed")
)

// remoteError carries the server's message and the local kind it maps to.
type remoteError struct {
	kind error
	msg  string
}

func (e *remoteError) Error() string { return e.msg }

func (e *remoteError) Unwrap() error { return e.kind }
