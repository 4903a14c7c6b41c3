package endpoint

//
// File downloads
//

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/rogpeppe/go-internal/lockedfile"
)

// FileDestination is the Identity of descriptors created by
// [NewFileDownloadDescriptor].
type FileDestination string

// NewFileDownloadDescriptor creates a descriptor that writes the
// validated body to destination, creating the parent directories, and
// yields destination as the payload. Paging is disabled.
//
// The accepted media types keep the default; set AcceptedMimeTypes
// to, e.g., "*/*" for binary downloads.
func NewFileDownloadDescriptor(serverBase, pathPrefix, destination string) *Descriptor[string] {
	d := NewDescriptor[string](serverBase, pathPrefix)
	d.DisablePaging = true
	d.Identity = FileDestination(destination)
	d.Decode = func(data []byte) (string, error) {
		return writeDownload(destination, data)
	}
	return d
}

// writeDownload writes data to destination while holding the file lock.
func writeDownload(destination string, data []byte) (string, error) {
	if err := os.MkdirAll(filepath.Dir(destination), 0700); err != nil {
		return "", err
	}
	if err := lockedfile.Write(destination, bytes.NewReader(data), 0600); err != nil {
		return "", err
	}
	return destination, nil
}
