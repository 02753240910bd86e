// Package state remembers per-file editor state between sessions.
package state

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"
)

const bucketCursor = "cursor"

// ErrNoPosition is returned by (*Store).Cursor when nothing is stored for a file.
var ErrNoPosition = errors.New("no stored position")

var initDB = map[string]func(*bolt.Tx) error{
	"initialize cursor bucket": func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketCursor))
		return err
	},
}

// Store is a bbolt database of editor state keyed by absolute file path.
type Store struct {
	db *bolt.DB
}

// DefaultPath returns $XDG_STATE_HOME/textedit/state.db, falling back to
// ~/.local/state.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_STATE_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(dir, "textedit", "state.db"), nil
}

// Open opens or creates the database at path. It gives up after a second if
// another editor holds the database.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open state %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for name, fn := range initDB {
			if err := fn(tx); err != nil {
				return fmt.Errorf("failed to %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

func key(file string) ([]byte, error) {
	abs, err := filepath.Abs(file)
	if err != nil {
		return nil, err
	}
	return []byte(abs), nil
}

// Cursor returns the stored cursor position of a file.
func (s *Store) Cursor(file string) (line, col int, err error) {
	k, err := key(file)
	if err != nil {
		return 0, 0, err
	}
	err = s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketCursor)).Get(k)
		if v == nil {
			return ErrNoPosition
		}
		line, col, err = parsePosition(string(v))
		return err
	})
	return line, col, err
}

// SetCursor stores the cursor position of a file.
func (s *Store) SetCursor(file string, line, col int) error {
	k, err := key(file)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketCursor)).Put(k, []byte(formatPosition(line, col)))
	})
}

// ForgetCursor deletes the stored cursor position of a file.
func (s *Store) ForgetCursor(file string) error {
	k, err := key(file)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketCursor)).Delete(k)
	})
}

func formatPosition(line, col int) string {
	return strconv.Itoa(line) + "," + strconv.Itoa(col)
}

func parsePosition(s string) (line, col int, err error) {
	ls, cs, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("malformed position %q", s)
	}
	if line, err = strconv.Atoi(ls); err != nil {
		return 0, 0, fmt.Errorf("malformed position %q", s)
	}
	if col, err = strconv.Atoi(cs); err != nil {
		return 0, 0, fmt.Errorf("malformed position %q", s)
	}
	return line, col, nil
}
