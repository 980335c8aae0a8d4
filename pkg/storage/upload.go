package storage

import (
	"io"
)

// Upload is one uploaded file as the handlers hand it to the services: the
// client-supplied original filename plus seekable content, so the image
// sniffer can read a header and rewind before the file is stored.
type Upload struct {
	Filename string
	Content  io.ReadSeeker
}
