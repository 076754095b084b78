package syncclient

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/shiftcheck/backend/domain"
)

const tasksBucket = "tasks"

// SnapshotStore keeps the last known server state of every task on disk.
// It is the rollback source when an optimistic toggle fails.
type SnapshotStore struct {
	db     *bolt.DB
	bucket []byte
}

// OpenSnapshot initializes the Bolt file and ensures the task bucket exists.
func OpenSnapshot(path string) (*SnapshotStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(tasksBucket))
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &SnapshotStore{
		db:     db,
		bucket: []byte(tasksBucket),
	}, nil
}

// Save stores a single task snapshot keyed by its id.
func (s *SnapshotStore) Save(task domain.Task) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	payload, err := json.Marshal(task)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Put([]byte(task.ID), payload)
	})
}

// Get returns the stored snapshot for a task, or nil when none exists.
func (s *SnapshotStore) Get(id string) (*domain.Task, error) {
	if s == nil || s.db == nil {
		return nil, bolt.ErrDatabaseNotOpen
	}
	var task *domain.Task
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(s.bucket).Get([]byte(id))
		if raw == nil {
			return nil
		}
		var t domain.Task
		if err := json.Unmarshal(raw, &t); err != nil {
			return err
		}
		task = &t
		return nil
	})
	return task, err
}

// All returns every stored snapshot in key order.
func (s *SnapshotStore) All() ([]domain.Task, error) {
	if s == nil || s.db == nil {
		return nil, bolt.ErrDatabaseNotOpen
	}
	var tasks []domain.Task
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(s.bucket).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var t domain.Task
			if err := json.Unmarshal(v, &t); err != nil {
				continue
			}
			tasks = append(tasks, t)
		}
		return nil
	})
	return tasks, err
}

// ReplaceAll swaps the whole snapshot set for the authoritative server list.
func (s *SnapshotStore) ReplaceAll(tasks []domain.Task) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(s.bucket); err != nil {
			return err
		}
		b, err := tx.CreateBucket(s.bucket)
		if err != nil {
			return err
		}
		for i := range tasks {
			payload, err := json.Marshal(tasks[i])
			if err != nil {
				return err
			}
			if err := b.Put([]byte(tasks[i].ID), payload); err != nil {
				return err
			}
		}
		return nil
	})
}

// Close closes the Bolt database.
func (s *SnapshotStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
