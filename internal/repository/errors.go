// Package repository holds the authoritative in-memory collections for every
// entity type.  Each repository guards its map with a sync.RWMutex and hands
// out deep copies, so callers can never corrupt stored rosters or slices.
// Persistence is a best-effort mirror layered on top by the service layer;
// these collections are the source of truth.
package repository

import "errors"

// ErrNotFound is returned when no entity exists for the requested id.
// Handlers translate it into HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrDuplicateID is returned when adding an entity whose id is already
// stored.  It signals an id-generation bug rather than a user error.
var ErrDuplicateID = errors.New("duplicate id")

// ErrEmailExists is returned when creating an account or profile with an
// email already in use.  Handlers translate it into HTTP 409.
var ErrEmailExists = errors.New("email already exists")
