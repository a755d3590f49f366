// Where: internal/infra/fileops/file_ops.go
// What: Shared filesystem operations for staging, linking and packaging.
// Why: Keep copy semantics consistent and avoid duplicated I/O helper implementations.
package fileops

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// Filter decides whether a file is copied. rel is slash separated and
// relative to the copy source. CopyTree also offers directories; rejecting
// one skips its whole subtree.
type Filter func(rel string, entry fs.DirEntry) bool

func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}

func RemoveDir(path string) error {
	if path == "" {
		return nil
	}
	if err := os.RemoveAll(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func WriteFile(path string, content []byte, mode fs.FileMode) error {
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	if err := os.WriteFile(path, content, mode); err != nil {
		return err
	}
	return os.Chmod(path, mode)
}

func CopyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	return copyFileWithMode(src, dst, info.Mode())
}

func copyFileWithMode(src, dst string, mode fs.FileMode) error {
	if err := EnsureDir(filepath.Dir(dst)); err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Chmod(dst, mode.Perm())
}

// CopyDir copies the tree rooted at src into dst.
func CopyDir(src, dst string) error {
	return CopyTree(src, dst, nil)
}

// CopyTree copies the tree rooted at src into dst, skipping files rejected by
// filter. Directories are created lazily so filtered-out subtrees leave no
// empty directories behind.
func CopyTree(src, dst string, filter Filter) error {
	return filepath.WalkDir(src, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		if entry.IsDir() {
			if rel != "." && filter != nil && !filter(filepath.ToSlash(rel), entry) {
				return filepath.SkipDir
			}
			return nil
		}
		if filter != nil && !filter(filepath.ToSlash(rel), entry) {
			return nil
		}
		info, err := entry.Info()
		if err != nil {
			return err
		}
		return copyFileWithMode(path, filepath.Join(dst, rel), info.Mode())
	})
}

// CopyFiles copies the regular files directly inside src (not recursive)
// into dst. A missing src copies nothing.
func CopyFiles(src, dst string, filter Filter) ([]string, error) {
	entries, err := ListFiles(src)
	if err != nil {
		return nil, err
	}
	var copied []string
	for _, entry := range entries {
		name := filepath.Base(entry)
		if filter != nil {
			info, statErr := os.Lstat(entry)
			if statErr != nil {
				return copied, statErr
			}
			if !filter(name, fs.FileInfoToDirEntry(info)) {
				continue
			}
		}
		target := filepath.Join(dst, name)
		if err := CopyFile(entry, target); err != nil {
			return copied, err
		}
		copied = append(copied, target)
	}
	return copied, nil
}

// ListFiles returns the sorted paths of the regular files directly inside
// dir. A missing directory lists as empty.
func ListFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// GrantExecutable adds execute permission wherever read permission is set.
func GrantExecutable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	mode := info.Mode().Perm()
	mode |= (mode & 0o444) >> 2
	mode |= 0o100
	return os.Chmod(path, mode)
}

func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

func FileOrDirExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
