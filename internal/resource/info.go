package resource

import (
	"os"

	"github.com/dhowden/tag"
)

// probeTitle reads the embedded title from a media file's metadata.
// Returns "" when the file has no readable tags or no title.
func probeTitle(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return ""
	}
	return m.Title()
}
