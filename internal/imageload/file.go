package imageload

import (
	"bytes"
	"io"
	"mime/multipart"
)

// File is a user-selected photo that has not been read yet.
type File struct {
	Name        string
	ContentType string // as declared by the client; may be empty
	Size        int64  // -1 when unknown

	open func() (io.ReadCloser, error)
}

// FromMultipart wraps an uploaded form file. A nil header or an empty
// upload (no file chosen in the browser) yields nil, meaning "no photo".
func FromMultipart(fh *multipart.FileHeader) *File {
	if fh == nil || (fh.Filename == "" && fh.Size == 0) {
		return nil
	}
	return &File{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

// FromBytes wraps an in-memory photo.
func FromBytes(name, contentType string, b []byte) *File {
	return &File{
		Name:        name,
		ContentType: contentType,
		Size:        int64(len(b)),
		open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(b)), nil
		},
	}
}

// FromReader wraps a stream of unknown length. The reader is consumed by the
// first load only.
func FromReader(name, contentType string, r io.Reader) *File {
	return &File{
		Name:        name,
		ContentType: contentType,
		Size:        -1,
		open: func() (io.ReadCloser, error) {
			return io.NopCloser(r), nil
		},
	}
}
