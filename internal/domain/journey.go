// Package domain contains the core data types for the photo journal.
// This package has zero external dependencies and is imported by every other
// internal package (store, repo, service, render, handler).
package domain

// Journey is one travel entry: where, when, what happened, and a photo.
// The JSON field names are the persisted layout of the collection slot and
// must not change.
type Journey struct {
	ID          string `json:"id"`
	Destination string `json:"destination"`
	Date        string `json:"date"` // raw form value, normally "2006-01-02"
	Description string `json:"description"`
	Image       string `json:"image"` // data URI
}

// HasID reports whether the journey has been assigned an identity.
func (j Journey) HasID() bool {
	return j.ID != ""
}
