package model

import "errors"

// Sentinel errors for transfer and tracking operations
var (
	// ErrInvalidLocalState indicates an integration error between the UI and
	// the core, such as a progress tick for a file that was never registered
	ErrInvalidLocalState = errors.New("invalid local state")

	// ErrEmptySelection indicates a file-set submission without files
	ErrEmptySelection = errors.New("no files selected")

	// ErrEmptyURL indicates a URL submission with a blank URL
	ErrEmptyURL = errors.New("url is empty")
)
