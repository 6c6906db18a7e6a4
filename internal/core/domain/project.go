package domain

import "time"

// Project groups documents. Deleting a project either deletes its documents
// or unlinks them first; the choice belongs to the caller (see the Library
// service).
type Project struct {
	// ID is the unique identifier for the project.
	ID string

	// Name is the display name.
	Name string

	// CreatedAt is when the project was created.
	CreatedAt time.Time
}
