package prodingest

import "errors"

// ErrMissingParams indicates the invocation parameter list does not carry a
// target file path.
var ErrMissingParams = errors.New("missing invocation parameters: a target file path is required")

// ErrNoOSDUConnection indicates submission was requested but the destination
// descriptor carries no ingestion API connection.
var ErrNoOSDUConnection = errors.New("destination descriptor has no osdu connection")
