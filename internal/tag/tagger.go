// Package tag writes ID3 metadata to downloaded mp3 files.
package tag

import (
	"github.com/bogem/id3v2"
)

// WriteID3 sets the title (TIT2) and artist (TPE1) frames on an mp3 file,
// preserving any frames the encoder already wrote.
func WriteID3(path, title, artist string) error {
	t, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return err
	}
	defer t.Close()

	if title != "" {
		t.SetTitle(title)
	}
	if artist != "" {
		t.SetArtist(artist)
	}
	return t.Save()
}
