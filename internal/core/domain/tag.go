package domain

// DefaultTagColor is the mid-gray hex color assigned to new tags.
const DefaultTagColor = "#808080"

// Tag labels documents. Tags and documents are associated many-to-many; the
// association is removed automatically when either side is deleted.
type Tag struct {
	// ID is the unique identifier for the tag.
	ID string

	// Name is the display name.
	Name string

	// Color is a hex color string like "#808080".
	Color string
}
