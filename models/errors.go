package models

import "errors"

// Error message constants, shared by the HTTP layer and tests.
const (
	ErrMsgCatalogLoad   = "failed to load plant catalog"
	ErrMsgNotFound      = "not found"
	ErrMsgInvalidInput  = "invalid input"
	ErrMsgUnauthorized  = "invalid username or password"
	ErrMsgConflict      = "already exists"
	ErrMsgNoPlantsFound = "no plants found"
)

// Domain errors. Wrap them with fmt.Errorf("%w: ...", ErrXxx) to add context
// and test with errors.Is.
var (
	// ErrCatalogLoad means the catalog source was unreachable or malformed.
	ErrCatalogLoad = errors.New(ErrMsgCatalogLoad)
	// ErrNotFound means a plant or record id is absent.
	ErrNotFound = errors.New(ErrMsgNotFound)
	// ErrInvalidInput covers non-numeric values and out-of-domain months.
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)

	ErrUnauthorized = errors.New(ErrMsgUnauthorized)
	ErrConflict     = errors.New(ErrMsgConflict)
)
