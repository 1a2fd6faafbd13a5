// Package inmemdb stores every collection in memory, optionally snapshotted
// to a single JSON file. The snapshot mirrors the original deployment's
// keyed-blob storage: each append re-serializes the whole collection set
// (read-modify-write, not a true append). Within one process the DB lock
// makes that safe; concurrent processes sharing a snapshot file clobber each
// other last-write-wins. That is an accepted limitation, not a bug to fix
// here; deployments needing real multi-writer storage use the sqlx or
// redis backends.
package inmemdb

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"sync"

	"github.com/pkg/errors"

	"github.com/kingsolomonjunior/admissions/core/enrollment"
	"github.com/kingsolomonjunior/admissions/core/notification"
)

// snapshot is the on-disk layout. Key names are part of the external
// contract and must not change.
type snapshot struct {
	Applications       []enrollment.Application         `json:"schoolApplications"`
	AdminNotifications []notification.AdminNotification `json:"adminNotifications"`
	EmailNotifications []notification.EmailNotification `json:"emailNotifications"`
	SMSNotifications   []notification.SMSNotification   `json:"smsNotifications"`
}

type DB struct {
	mu   sync.RWMutex
	path string // "" disables persistence
	data snapshot
}

// Open returns a DB backed by the snapshot file at path, creating state from
// the file when it exists. An empty path keeps everything in memory.
func Open(path string) (*DB, error) {
	db := &DB{path: path}
	if path == "" {
		return db, nil
	}

	raw, err := ioutil.ReadFile(path)
	if os.IsNotExist(err) {
		return db, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading snapshot")
	}
	if err := json.Unmarshal(raw, &db.data); err != nil {
		return nil, errors.Wrap(err, "decoding snapshot")
	}
	return db, nil
}

// save rewrites the entire snapshot. Caller must hold the write lock.
func (db *DB) save() error {
	if db.path == "" {
		return nil
	}
	raw, err := json.Marshal(db.data)
	if err != nil {
		return errors.Wrap(err, "encoding snapshot")
	}
	return errors.Wrap(ioutil.WriteFile(db.path, raw, 0o644), "writing snapshot")
}
