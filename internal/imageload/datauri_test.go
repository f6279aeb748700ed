package imageload_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/photo-journal/internal/imageload"
)

func TestDataURI(t *testing.T) {
	assert.Equal(t, "data:image/gif;base64,R0lG", imageload.DataURI("image/gif", []byte("GIF")))
}

func TestIsImageDataURI(t *testing.T) {
	cases := map[string]bool{
		"data:image/png;base64,iVBORw0KGgo=": true,
		"data:image/svg+xml;base64,PHN2Zz4=": true,
		"data:text/html;base64,PGI+":         false,
		"javascript:alert(1)":                false,
		"data:image/png,raw":                 false,
		`data:image/p"ng;base64,AAAA`:        false,
		"":                                   false,
	}
	for in, want := range cases {
		assert.Equal(t, want, imageload.IsImageDataURI(in), in)
	}
}

func TestDecodedLen(t *testing.T) {
	assert.Equal(t, 3, imageload.DecodedLen(imageload.DataURI("image/gif", []byte("GIF"))))
	assert.Zero(t, imageload.DecodedLen("https://example.com/a.png"))
	assert.Zero(t, imageload.DecodedLen("data:image/png;base64,!!!"))
}
