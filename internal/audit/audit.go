// Package audit keeps an append-only log of operator write actions in an
// embedded bolt database, so the trail survives even when the backing
// document store is unreachable.
package audit

import (
	"encoding/binary"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"
)

var bucketOplog = []byte("oplog")

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Entry is one recorded operator action.
type Entry struct {
	Action string    `json:"action"`
	Target string    `json:"target"`
	Detail string    `json:"detail,omitempty"`
	Time   time.Time `json:"time"`
}

// Logger appends operator actions to a bolt bucket.
type Logger struct {
	db *bolt.DB
}

// Open opens or creates the audit database at path.
func Open(path string) (*Logger, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrap(err, "open audit db")
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketOplog)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "create audit bucket")
	}
	return &Logger{db: db}, nil
}

// Record appends one action. Failures are logged, never propagated; an
// audit miss must not fail the write it describes.
func (l *Logger) Record(action, target, detail string) {
	if l == nil {
		return
	}
	entry := Entry{Action: action, Target: target, Detail: detail, Time: time.Now()}
	data, err := json.Marshal(entry)
	if err != nil {
		zap.L().Error("audit encode failed", zap.Error(err))
		return
	}
	err = l.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketOplog)
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(itob(seq), data)
	})
	if err != nil {
		zap.L().Error("audit write failed", zap.Error(err))
	}
}

// Recent returns up to limit entries, newest first.
func (l *Logger) Recent(limit int) ([]Entry, error) {
	if l == nil {
		return nil, nil
	}
	entries := make([]Entry, 0, limit)
	err := l.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketOplog).Cursor()
		for k, v := c.Last(); k != nil && len(entries) < limit; k, v = c.Prev() {
			var e Entry
			if err := json.Unmarshal(v, &e); err != nil {
				continue
			}
			entries = append(entries, e)
		}
		return nil
	})
	return entries, err
}

// Prune drops entries older than the retention window.
func (l *Logger) Prune(retention time.Duration) error {
	if l == nil {
		return nil
	}
	cutoff := time.Now().Add(-retention)
	return l.db.Update(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketOplog).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var e Entry
			if err := json.Unmarshal(v, &e); err != nil || e.Time.Before(cutoff) {
				if err := c.Delete(); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// Close closes the underlying database.
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	return l.db.Close()
}

func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}
