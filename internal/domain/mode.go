package domain

// Mode tells the form controller whether a submission creates a new journey
// or updates an existing one. The zero value is the creating mode.
type Mode struct {
	editingID string
}

// Creating returns the mode used for new journeys.
func Creating() Mode {
	return Mode{}
}

// Editing returns the mode used while the journey with the given id is edited.
// An empty id yields the creating mode.
func Editing(id string) Mode {
	return Mode{editingID: id}
}

// IsEditing reports whether the mode targets an existing journey.
func (m Mode) IsEditing() bool {
	return m.editingID != ""
}

// EditingID returns the id under edit, or "" when creating.
func (m Mode) EditingID() string {
	return m.editingID
}
