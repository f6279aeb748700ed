package domain

import "errors"

// Notice identifies a short-lived message shown to the user after an action.
// The string value is stable and safe to carry in a query parameter.
type Notice string

const (
	NoticeNone          Notice = ""
	NoticeMissingFields Notice = "missing_fields"
	NoticeMissingPhoto  Notice = "missing_photo"
	NoticeInvalidPhoto  Notice = "invalid_photo"
	NoticeDeleted       Notice = "deleted"
	NoticeCreated       Notice = "created"
	NoticeUpdated       Notice = "updated"
	NoticeStoreFailed   Notice = "store_failed"
)

var noticeText = map[Notice]string{
	NoticeMissingFields: "⚠️ Please fill out all fields.",
	NoticeMissingPhoto:  "⚠️ Please select a photo.",
	NoticeInvalidPhoto:  "⚠️ The selected file is not an image.",
	NoticeDeleted:       "🗑️ Journey deleted!",
	NoticeCreated:       "✅ Your journey has been added!",
	NoticeUpdated:       "✏️ Journey updated!",
	NoticeStoreFailed:   "⚠️ Your journeys could not be saved right now. Please try again.",
}

// Text returns the human-readable message, or "" for unknown notices.
func (n Notice) Text() string {
	return noticeText[n]
}

// ParseNotice converts a query-string value into a known Notice.
// Unknown values yield NoticeNone so arbitrary text is never echoed back.
func ParseNotice(s string) Notice {
	n := Notice(s)
	if _, ok := noticeText[n]; ok {
		return n
	}
	return NoticeNone
}

// NoticeFor maps a validation error to the notice shown to the user.
// Errors that are not validation failures yield NoticeNone.
func NoticeFor(err error) Notice {
	switch {
	case errors.Is(err, ErrMissingPhoto):
		return NoticeMissingPhoto
	case errors.Is(err, ErrInvalidPhoto):
		return NoticeInvalidPhoto
	case errors.Is(err, ErrValidation):
		return NoticeMissingFields
	default:
		return NoticeNone
	}
}
