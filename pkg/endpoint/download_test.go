package endpoint

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/endpointkit/endpoint/internal/netprobe"
	"github.com/endpointkit/endpoint/internal/testingx"
)

func TestNewFileDownloadDescriptor(t *testing.T) {
	t.Run("the descriptor does not page and includes the destination in equality", func(t *testing.T) {
		d := NewFileDownloadDescriptor("https://x/", "files/report.pdf", "/tmp/a")
		d.Paging = &PagePolicy{}
		if len(d.QueryParameters(1)) != 0 {
			t.Fatal("expected no paging parameters")
		}
		other := NewFileDownloadDescriptor("https://x/", "files/report.pdf", "/tmp/b")
		other.Paging = &PagePolicy{}
		if d.Equal(other) {
			t.Fatal("expected not equal")
		}
	})

	t.Run("loading writes the body to the destination", func(t *testing.T) {
		txp, _ := newTestTransport([]byte("%PDF-1.4"), newTestResponse(200, "application/pdf"), nil)
		env := newTestEnv(txp, true)
		destination := filepath.Join(t.TempDir(), "nested", "dir", "report.pdf")
		d := NewFileDownloadDescriptor("", "files/report.pdf", destination)
		d.AcceptedMimeTypes = []string{"*/*"}
		path, err := Fetch(context.Background(), env.c, d)
		if err != nil {
			t.Fatal(err)
		}
		if path != destination {
			t.Fatal("unexpected path", path)
		}
		data, err := os.ReadFile(destination)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "%PDF-1.4" {
			t.Fatal("unexpected content", string(data))
		}
	})

	t.Run("write failures are parse failures", func(t *testing.T) {
		txp, _ := newTestTransport([]byte("x"), newTestResponse(200, "application/json"), nil)
		env := newTestEnv(txp, true)
		file := filepath.Join(t.TempDir(), "file")
		if err := os.WriteFile(file, []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}
		d := NewFileDownloadDescriptor("", "f", filepath.Join(file, "sub", "out"))
		if _, err := Fetch(context.Background(), env.c, d); err == nil {
			t.Fatal("expected an error")
		}
	})

	t.Run("a body larger than the transport limit is not written", func(t *testing.T) {
		served := bytes.Repeat([]byte("A"), DefaultMaxBodySize+1<<20)
		server := testingx.MustNewHTTPServer(testingx.HTTPHandlerStatus(200, "application/octet-stream", served))
		defer server.Close()
		c := NewController(&Config{
			DefaultServerBase: server.URL,
			Transport:         DefaultTransport(),
			Probe:             netprobe.Always(true),
			Logger:            &testingx.Logger{},
			Dispatcher:        InlineDispatcher{},
		})
		destination := filepath.Join(t.TempDir(), "large.bin")
		d := NewFileDownloadDescriptor("", "files/large.bin", destination)
		d.AcceptedMimeTypes = []string{"*/*"}
		path, err := Fetch(context.Background(), c, d)
		if !errors.Is(err, ErrResponseTooLarge) || !errors.Is(err, ErrBodyTooLarge) {
			t.Fatal("unexpected error", err)
		}
		if path != "" {
			t.Fatal("unexpected path", path)
		}
		if _, err := os.Stat(destination); !errors.Is(err, os.ErrNotExist) {
			t.Fatal("expected no file", err)
		}
	})
}
