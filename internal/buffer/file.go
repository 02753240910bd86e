package buffer

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"unicode/utf8"
)

// Load reads a file into a new document. A missing file yields an empty
// document and exists == false; it is created on the first save.
func Load(path string) (b *Buffer, exists bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return New(), false, nil
		}
		return nil, false, err
	}
	b, err = decode(data)
	if err != nil {
		return nil, true, fmt.Errorf("%s: %w", path, err)
	}
	return b, true, nil
}

// Read reads r to EOF into a new document.
func Read(r io.Reader) (*Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return decode(data)
}

func decode(data []byte) (*Buffer, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: content is not valid UTF-8", ErrMalformedInput)
	}
	return Parse(string(data)), nil
}

// FilePersister writes serialised documents to a file. When Path is empty a
// temporary file named after TempPattern is created on the first save and
// reused for later ones.
type FilePersister struct {
	Path        string
	TempPattern string
}

// Persist writes text and returns the path it was written to.
func (p *FilePersister) Persist(text string) (string, error) {
	if p.Path == "" {
		if p.TempPattern == "" {
			return "", &PersistError{Err: errors.New("no file name")}
		}
		f, err := os.CreateTemp("", p.TempPattern)
		if err != nil {
			return "", &PersistError{Path: p.TempPattern, Err: err}
		}
		if err := f.Close(); err != nil {
			return "", &PersistError{Path: f.Name(), Err: err}
		}
		p.Path = f.Name()
	}
	if err := writeFileAtomic(p.Path, []byte(text)); err != nil {
		return p.Path, &PersistError{Path: p.Path, Err: err}
	}
	return p.Path, nil
}

// writeFileAtomic replaces path with data through a temporary file in the same
// directory, keeping the permissions of an existing file.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	perm := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
