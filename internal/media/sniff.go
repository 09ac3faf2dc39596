package media

import (
	"io"
	"os"

	"github.com/h2non/filetype"
)

// IsImage reports whether the file at path is a still image. Only the header
// bytes are read; an unreadable file reports false and the error surfaces
// later when the asset is probed.
func IsImage(path string) bool {
	file, err := os.Open(path)
	if err != nil {
		return false
	}
	defer file.Close()

	head := make([]byte, 261)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.ErrUnexpectedEOF {
		return false
	}
	return filetype.IsImage(head[:n])
}
