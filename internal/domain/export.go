package domain

// ExportRow is a single row in the full-collection export.
// DisplayDate is the long human-readable form shown on the card; Date keeps
// the raw stored value.
type ExportRow struct {
	ID          string
	Destination string
	Date        string
	DisplayDate string
	Description string

	// ImageBytes is the decoded size of the photo, 0 when the image is not a
	// base64 data URI. The image itself is omitted from CSV exports.
	ImageBytes int
	Image      string
}
