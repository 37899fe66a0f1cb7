package library

import "errors"

var (
	ErrInvalidBatchSize = errors.New("batch size must be a positive integer")
	ErrSelectBatch      = errors.New("failed to select work items")
	ErrQueryRows        = errors.New("failed to query rows")
	ErrUnknownJob       = errors.New("unknown sync job")
	ErrUnknownSource    = errors.New("unknown query source")
)
