// Package recorder saves raw response bodies to disk for debugging.
//
// Each response is written to its own file named after the host, port and
// path of the request URL. When a file with the same name already exists we
// append a numeric suffix, so that repeated calls to the same endpoint are
// all preserved.
package recorder

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/rogpeppe/go-internal/lockedfile"
)

// Extension is the extension of recorded files.
const Extension = ".response"

// maxAttempts bounds the search for a free file name.
const maxAttempts = 10000

// ErrNoFreeName indicates that we could not find an unused file name.
var ErrNoFreeName = errors.New("recorder: no free file name")

// Recorder writes response bodies into a directory.
type Recorder struct {
	dir string
}

// New creates the directory if needed and returns a new [*Recorder].
func New(dir string) (*Recorder, error) {
	return newRecorder(dir, os.MkdirAll)
}

// osMkdirAll is the type of os.MkdirAll.
type osMkdirAll func(path string, perm fs.FileMode) error

func newRecorder(dir string, mkdir osMkdirAll) (*Recorder, error) {
	if err := mkdir(dir, 0700); err != nil {
		return nil, err
	}
	return &Recorder{dir: dir}, nil
}

// Dir returns the directory in which we write.
func (r *Recorder) Dir() string {
	return r.dir
}

// Record writes body to a new file and returns its path.
func (r *Recorder) Record(u *url.URL, body []byte) (string, error) {
	base := BaseName(u)
	for idx := 0; idx < maxAttempts; idx++ {
		name := base + Extension
		if idx > 0 {
			name = fmt.Sprintf("%s-%d%s", base, idx, Extension)
		}
		fullpath := filepath.Join(r.dir, name)
		fp, err := lockedfile.OpenFile(fullpath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", err
		}
		if _, err := fp.Write(body); err != nil {
			fp.Close()
			return "", err
		}
		return fullpath, fp.Close()
	}
	return "", ErrNoFreeName
}

// BaseName returns the file name, without extension and suffix, used for u.
func BaseName(u *url.URL) string {
	port := u.Port()
	if port == "" {
		switch u.Scheme {
		case "https":
			port = "443"
		case "http":
			port = "80"
		default:
			port = "0"
		}
	}
	parts := []string{u.Hostname(), port}
	for _, segment := range strings.Split(u.Path, "/") {
		if segment != "" {
			parts = append(parts, segment)
		}
	}
	return sanitize(strings.Join(parts, "_"))
}

// sanitize replaces characters that are unsafe in file names.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z', '0' <= r && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		}
		return '_'
	}, s)
}
