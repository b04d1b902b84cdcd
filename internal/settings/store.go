// Package settings persists viewer preferences between runs: the theme, the
// last opened thread and the current post of every thread.
package settings

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	bucketSettings  = "settings"
	bucketPositions = "positions"

	keyTheme      = "theme"
	keyLastThread = "last_thread"
)

var initDB = map[string]func(*bolt.Tx) error{
	"initialize settings table": func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketSettings))
		return err
	},
	"initialize positions table": func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketPositions))
		return err
	},
}

// Store is a settings database. It is safe for concurrent use.
type Store struct {
	db *bolt.DB
}

// Open opens the database at path, creating it and its parent directory when
// needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create settings dir: %w", err)
	}
	db, err := bolt.Open(path, 0o644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open settings %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for name, fn := range initDB {
			if err := fn(tx); err != nil {
				return fmt.Errorf("%s: %w", name, err)
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

// Close releases the database file.
func (s *Store) Close() error {
	return s.db.Close()
}

// Theme returns the saved theme name, or "" if none was saved.
func (s *Store) Theme() (string, error) {
	return s.get(keyTheme)
}

// SetTheme saves the theme name.
func (s *Store) SetTheme(name string) error {
	return s.put(keyTheme, name)
}

// LastThread returns the name of the thread opened last, or "".
func (s *Store) LastThread() (string, error) {
	return s.get(keyLastThread)
}

// SetLastThread saves the name of the thread being viewed.
func (s *Store) SetLastThread(name string) error {
	return s.put(keyLastThread, name)
}

// Position returns the post id saved for thread. ok is false when nothing was
// saved.
func (s *Store) Position(thread string) (postID int64, ok bool, err error) {
	err = s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketPositions)).Get([]byte(thread))
		if len(v) != 8 {
			return nil
		}
		postID, ok = int64(binary.BigEndian.Uint64(v)), true
		return nil
	})
	return postID, ok, err
}

// SetPosition saves the current post of thread.
func (s *Store) SetPosition(thread string, postID int64) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		var buf [8]byte
		binary.BigEndian.PutUint64(buf[:], uint64(postID))
		return tx.Bucket([]byte(bucketPositions)).Put([]byte(thread), buf[:])
	})
}

func (s *Store) get(key string) (string, error) {
	var value string
	err := s.db.View(func(tx *bolt.Tx) error {
		value = string(tx.Bucket([]byte(bucketSettings)).Get([]byte(key)))
		return nil
	})
	return value, err
}

func (s *Store) put(key, value string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketSettings)).Put([]byte(key), []byte(value))
	})
}
