package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectPathFromURL(t *testing.T) {
	url := PublicURL("clips", "videos/u1/abc.mp4")
	assert.Equal(t, "https://storage.googleapis.com/clips/videos/u1/abc.mp4", url)
	assert.Equal(t, "videos/u1/abc.mp4", ObjectPathFromURL("clips", url))

	assert.Empty(t, ObjectPathFromURL("other-bucket", url))
	assert.Empty(t, ObjectPathFromURL("clips", "https://example.com/x"))
}
