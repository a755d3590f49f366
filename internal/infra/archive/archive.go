// Where: internal/infra/archive/archive.go
// What: Deterministic archive writer for assembled images.
// Why: Unchanged inputs and a fixed timestamp must yield byte-identical archives.
package archive

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/poruru-code/jlinkasm/internal/domain/assemble"
)

var (
	errSourceRequired      = errors.New("archive source directory is required")
	errDestinationRequired = errors.New("archive destination is required")
	errUnsupportedFileType = errors.New("unsupported file type")
)

// entry is one file, directory or symbolic link placed in an archive.
type entry struct {
	name   string // slash separated, directories end with "/"
	path   string
	mode   fs.FileMode
	size   int64
	dir    bool
	target string // link target, set for symbolic links only
}

func (e entry) isLink() bool {
	return e.target != ""
}

// Pack archives the contents of srcDir (not srcDir itself) into dst.
// Entries are sorted, every timestamp is set to modTime and ownership is
// dropped, so the output only depends on file names, contents and the
// executable bit.
func Pack(srcDir, dst string, format assemble.ArchiveFormat, modTime time.Time) (err error) {
	if srcDir == "" {
		return errSourceRequired
	}
	if dst == "" {
		return errDestinationRequired
	}
	entries, err := collect(srcDir)
	if err != nil {
		return fmt.Errorf("scan %s: %w", srcDir, err)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create archive dir: %w", err)
	}

	out, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}
	tmp := out.Name()
	defer func() {
		if err != nil {
			_ = out.Close()
			_ = os.Remove(tmp)
		}
	}()

	modTime = modTime.UTC().Truncate(time.Second)
	if format.IsZip() {
		err = writeZip(out, entries, modTime)
	} else {
		err = writeTar(out, entries, format.Compression(), modTime)
	}
	if err != nil {
		return err
	}
	if err = out.Chmod(0o644); err != nil {
		return fmt.Errorf("chmod archive: %w", err)
	}
	if err = out.Close(); err != nil {
		return fmt.Errorf("close archive: %w", err)
	}
	if err = os.Rename(tmp, dst); err != nil {
		return fmt.Errorf("publish archive: %w", err)
	}
	return nil
}

func collect(srcDir string) ([]entry, error) {
	var entries []entry
	err := filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		name := filepath.ToSlash(rel)
		if d.IsDir() {
			entries = append(entries, entry{name: name + "/", path: path, mode: 0o755, dir: true})
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if info.Mode()&fs.ModeSymlink != 0 {
			target, err := os.Readlink(path)
			if err != nil {
				return err
			}
			entries = append(entries, entry{name: name, path: path, mode: 0o777, target: filepath.ToSlash(target)})
			return nil
		}
		if !info.Mode().IsRegular() {
			return fmt.Errorf("%s: %w (%s)", name, errUnsupportedFileType, info.Mode().Type())
		}
		entries = append(entries, entry{
			name: name,
			path: path,
			mode: normalizeMode(info.Mode()),
			size: info.Size(),
		})
		return nil
	})
	return entries, err
}

func normalizeMode(mode fs.FileMode) fs.FileMode {
	if mode.Perm()&0o111 != 0 {
		return 0o755
	}
	return 0o644
}

func copyContent(w io.Writer, e entry) error {
	in, err := os.Open(e.path)
	if err != nil {
		return err
	}
	defer in.Close()
	_, err = io.Copy(w, in)
	return err
}
