// Package local provides id sequences that persist across process runs. The
// counters live in a bbolt database file, so several runs and several
// generator instances never hand out the same id twice.
package local

import (
	"encoding/binary"
	"slices"

	"github.com/cockroachdb/errors"
	bolt "go.etcd.io/bbolt"
)

var counterBucket = []byte("sequences")

// A Store keeps named counters. It is safe for concurrent use.
type Store struct {
	db *bolt.DB
}

// OpenStore opens or creates the store at path.
func OpenStore(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "open sequence store %s", path)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(counterBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create sequence bucket")
	}

	return &Store{db: db}, nil
}

// Path returns the database file.
func (s *Store) Path() string {
	return s.db.Path()
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Reserve hands out count consecutive ids of the named counter and returns
// the first one. A counter that does not exist yet starts at start.
func (s *Store) Reserve(name string, start, count int64) (int64, error) {
	if count < 1 {
		return 0, errors.Newf("cannot reserve %d ids", count)
	}

	var first int64

	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(counterBucket)

		first = start
		if v := b.Get([]byte(name)); v != nil {
			first = decode(v)
		}

		return b.Put([]byte(name), encode(first+count))
	})

	return first, errors.Wrapf(err, "reserve ids of %s", name)
}

// Release returns the unused ids [next, end) of the last reservation. It only
// takes effect if nobody reserved ids after it.
func (s *Store) Release(name string, next, end int64) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(counterBucket)

		v := b.Get([]byte(name))
		if v == nil || decode(v) != end {
			return nil
		}

		return b.Put([]byte(name), encode(next))
	})

	return errors.Wrapf(err, "release ids of %s", name)
}

// Peek returns the next id of the named counter and whether it exists.
func (s *Store) Peek(name string) (int64, bool, error) {
	var (
		next  int64
		found bool
	)

	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(counterBucket).Get([]byte(name)); v != nil {
			next = decode(v)
			found = true
		}

		return nil
	})

	return next, found, errors.Wrapf(err, "read counter %s", name)
}

// Set overwrites the next id of the named counter.
func (s *Store) Set(name string, next int64) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(counterBucket).Put([]byte(name), encode(next))
	})

	return errors.Wrapf(err, "write counter %s", name)
}

// Names lists the counters in alphabetical order.
func (s *Store) Names() ([]string, error) {
	var names []string

	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(counterBucket).ForEach(func(k, _ []byte) error {
			names = append(names, string(k))
			return nil
		})
	})

	slices.Sort(names)

	return names, errors.Wrap(err, "list counters")
}

func encode(v int64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(v))

	return buf
}

func decode(buf []byte) int64 {
	return int64(binary.BigEndian.Uint64(buf))
}
