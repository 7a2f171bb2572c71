// Package output persists fetched documents to disk.
package output

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/afero"

	"github.com/sells-group/parcel-cli/internal/failure"
)

// DefaultPath is where parcel responses are written when no path is configured.
const DefaultPath = "parcels.geojson"

// Writer stores a response body at a path.
type Writer interface {
	Write(path string, body []byte) error
}

// FileWriter writes bodies to an afero filesystem, replacing any existing file.
type FileWriter struct {
	fs afero.Fs
}

// NewFileWriter creates a FileWriter on fs. A nil fs means the OS filesystem.
func NewFileWriter(fs afero.Fs) *FileWriter {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &FileWriter{fs: fs}
}

// Write creates or truncates path and writes body byte for byte.
func (w *FileWriter) Write(path string, body []byte) error {
	if err := afero.WriteFile(w.fs, path, body, 0o644); err != nil {
		return failure.New(failure.KindWrite, "output", eris.Wrapf(err, "write %s", path))
	}
	return nil
}
