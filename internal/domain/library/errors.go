package library

import "errors"

var (
	ErrItemNotFound = errors.New("work item not found")
	ErrEmptyValue   = errors.New("fetched value is empty")
)
