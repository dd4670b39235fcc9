package sniffer

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectHead(t *testing.T) {
	cases := []struct {
		name string
		head []byte
		want MediaType
		mime string
	}{
		{"jpeg", []byte{0xff, 0xd8, 0xff, 0xe0}, TypeJPEG, "image/jpeg"},
		{"png", []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0}, TypePNG, "image/png"},
		{"gif87a", []byte("GIF87a...."), TypeGIF, "image/gif"},
		{"gif89a", []byte("GIF89a...."), TypeGIF, "image/gif"},
		{"webp", []byte("RIFF\x00\x00\x00\x00WEBPVP8 "), TypeWEBP, "image/webp"},
		{"svg", []byte("<svg xmlns=\"http://www.w3.org/2000/svg\">"), TypeSVG, "image/svg+xml"},
		{"svg with xml decl", []byte("  <?xml version=\"1.0\"?><svg>"), TypeSVG, "image/svg+xml"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DetectHead(tc.head)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.Type)
			assert.Equal(t, tc.mime, got.MIME)
		})
	}

	t.Run("unknown bytes", func(t *testing.T) {
		_, err := DetectHead([]byte("MZ\x90\x00"))
		assert.ErrorIs(t, err, ErrUnknownType)
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := DetectHead(nil)
		assert.ErrorIs(t, err, ErrUnknownType)
	})
}

func TestMimeTypeFromHTTP(t *testing.T) {
	h := http.Header{}
	assert.Equal(t, "", MimeTypeFromHTTP(h))

	h.Set("Content-Type", "image/png")
	assert.Equal(t, "image/png", MimeTypeFromHTTP(h))

	h.Set("Content-Type", "image/svg+xml; charset=utf-8")
	assert.Equal(t, "image/svg+xml", MimeTypeFromHTTP(h))
}
