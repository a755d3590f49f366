// Where: internal/infra/archive/tar.go
// What: Tar encoding for Pack with optional gzip or zstd compression.
// Why: Keep format specifics out of the traversal logic.
package archive

import (
	"archive/tar"
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

func writeTar(out io.Writer, entries []entry, compression string, modTime time.Time) error {
	sink, closeSink, err := compressor(out, compression, modTime)
	if err != nil {
		return err
	}
	tw := tar.NewWriter(sink)
	for _, e := range entries {
		header := &tar.Header{
			Name:    e.name,
			Mode:    int64(e.mode.Perm()),
			ModTime: modTime,
		}
		switch {
		case e.dir:
			header.Typeflag = tar.TypeDir
		case e.isLink():
			header.Typeflag = tar.TypeSymlink
			header.Linkname = e.target
		default:
			header.Typeflag = tar.TypeReg
			header.Size = e.size
		}
		if err := tw.WriteHeader(header); err != nil {
			return fmt.Errorf("tar entry %s: %w", e.name, err)
		}
		if e.dir || e.isLink() {
			continue
		}
		if err := copyContent(tw, e); err != nil {
			return fmt.Errorf("tar entry %s: %w", e.name, err)
		}
	}
	if err := tw.Close(); err != nil {
		return err
	}
	return closeSink()
}

func compressor(out io.Writer, compression string, modTime time.Time) (io.Writer, func() error, error) {
	switch compression {
	case "gzip":
		gw, err := gzip.NewWriterLevel(out, gzip.BestCompression)
		if err != nil {
			return nil, nil, err
		}
		gw.ModTime = modTime
		return gw, gw.Close, nil
	case "zstd":
		zw, err := zstd.NewWriter(out, zstd.WithEncoderConcurrency(1))
		if err != nil {
			return nil, nil, err
		}
		return zw, zw.Close, nil
	default:
		return out, func() error { return nil }, nil
	}
}
