// Where: internal/infra/archive/zip.go
// What: Zip encoding for Pack.
// Why: Keep format specifics out of the traversal logic.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/klauspost/compress/flate"
)

func writeZip(out io.Writer, entries []entry, modTime time.Time) error {
	zw := zip.NewWriter(out)
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, flate.DefaultCompression)
	})
	for _, e := range entries {
		header := &zip.FileHeader{
			Name:     e.name,
			Modified: modTime,
		}
		switch {
		case e.dir:
			header.Method = zip.Store
			header.SetMode(fs.ModeDir | 0o755)
		case e.isLink():
			header.Method = zip.Store
			header.SetMode(fs.ModeSymlink | 0o777)
		default:
			header.Method = zip.Deflate
			header.SetMode(e.mode)
		}
		w, err := zw.CreateHeader(header)
		if err != nil {
			return fmt.Errorf("zip entry %s: %w", e.name, err)
		}
		if e.dir {
			continue
		}
		if e.isLink() {
			if _, err := io.WriteString(w, e.target); err != nil {
				return fmt.Errorf("zip entry %s: %w", e.name, err)
			}
			continue
		}
		if err := copyContent(w, e); err != nil {
			return fmt.Errorf("zip entry %s: %w", e.name, err)
		}
	}
	return zw.Close()
}
