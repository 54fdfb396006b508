package server

import "errors"

// Sentinel errors for the server package.
var (
	ErrShuttingDown = errors.New("server: shutting down")
	ErrListen       = errors.New("server: failed to listen")
)
