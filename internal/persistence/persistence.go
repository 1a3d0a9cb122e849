package persistence

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/acroloop/acroloop/internal/pid"
	"github.com/acroloop/acroloop/internal/ui"
	bolt "go.etcd.io/bbolt"
)

const (
	BucketProfiles         = "profiles"
	BucketBlackboxSessions = "blackboxSessions"
)

// BlackboxFrame is one recorded control cycle.
type BlackboxFrame struct {
	// time since arming in microseconds
	TimeUs   int64                        `json:"timeUs"`
	Command  [pid.AxisCount]int           `json:"command"`
	GyroRaw  [pid.AxisCount]int32         `json:"gyroRaw"`
	Attitude [pid.AxisCount]int           `json:"attitude"`
	Terms    [pid.AxisCount]pid.AxisTerms `json:"terms"`
	Demand   [pid.AxisCount]int32         `json:"demand"`
}

// BlackboxSession is the flight log of one armed period.
type BlackboxSession struct {
	ID         string          `json:"id"`
	StartedAt  time.Time       `json:"startedAt"`
	Controller string          `json:"controller"`
	Frames     []BlackboxFrame `json:"frames"`
}

type Persistence interface {
	Init() error

	SaveProfile(name string, profile pid.TuningProfile) (err error)
	LoadProfile(name string) (*pid.TuningProfile, error)
	DeleteProfile(name string) (err error)
	ListProfiles() ([]string, error)

	SaveBlackboxSession(session BlackboxSession) (err error)
	LoadBlackboxSession(id string) (*BlackboxSession, error)
	DeleteBlackboxSession(id string) (err error)
	ListBlackboxSessions() ([]string, error)
}

type persistence struct {
	dbPath string
}

func NewPersistence(dbPath string) Persistence {
	p := &persistence{
		dbPath: dbPath,
	}
	return p
}

func (p persistence) Init() (err error) {
	// get parent path of dbPath
	parentDir := filepath.Dir(p.dbPath)
	_, err = os.Stat(parentDir)
	if errors.Is(err, os.ErrNotExist) {
		// create directory
		ui.Info("Creating directory for db: %s", parentDir)
		err = os.MkdirAll(parentDir, 0755)
		if err != nil {
			return err
		}
	}
	return nil
}

func (p persistence) openPersistence() (db *bolt.DB, err error) {
	db, err = bolt.Open(p.dbPath, 0600, &bolt.Options{Timeout: 1 * time.Minute})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// SaveProfile stores a named snapshot of a tuning profile
func (p persistence) SaveProfile(name string, profile pid.TuningProfile) (err error) {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	data, err := json.Marshal(profile)
	if err != nil {
		return err
	}

	return db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(BucketProfiles))
		if err != nil {
			return fmt.Errorf("create bucket: %s", err)
		}
		err = b.Put([]byte(name), data)
		return err
	})
}

// LoadProfile loads a previously stored tuning profile snapshot
func (p persistence) LoadProfile(name string) (*pid.TuningProfile, error) {
	db, err := p.openPersistence()
	if err != nil {
		return nil, err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	var profile *pid.TuningProfile
	err = db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketProfiles))
		if b == nil {
			return os.ErrNotExist
		}
		v := b.Get([]byte(name))
		if v == nil {
			return os.ErrNotExist
		}

		err := json.Unmarshal(v, &profile)
		if err != nil {
			// if we cannot read the saved data, delete it
			ui.Warning("Unable to unmarshal saved profile %s: %v", name, err)
			err := b.Delete([]byte(name))
			if err != nil {
				ui.Error("Unable to delete corrupt data key %s: %v", name, err)
			}
			return nil
		}

		return err
	})

	return profile, err
}

func (p persistence) DeleteProfile(name string) error {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	return db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketProfiles))
		if b == nil {
			// no profile bucket yet
			return nil
		}
		v := b.Get([]byte(name))
		if v == nil {
			// no data for given key
			return nil
		}

		return b.Delete([]byte(name))
	})
}

// ListProfiles returns the names of all stored profile snapshots
func (p persistence) ListProfiles() ([]string, error) {
	return p.listKeys(BucketProfiles)
}

// SaveBlackboxSession stores the flight log of one armed period
func (p persistence) SaveBlackboxSession(session BlackboxSession) (err error) {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	return db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(BucketBlackboxSessions))
		if err != nil {
			return fmt.Errorf("create bucket: %s", err)
		}
		err = b.Put([]byte(session.ID), data)
		return err
	})
}

// LoadBlackboxSession loads a stored flight log
func (p persistence) LoadBlackboxSession(id string) (*BlackboxSession, error) {
	db, err := p.openPersistence()
	if err != nil {
		return nil, err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	var session *BlackboxSession
	err = db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketBlackboxSessions))
		if b == nil {
			return os.ErrNotExist
		}
		v := b.Get([]byte(id))
		if v == nil {
			return os.ErrNotExist
		}

		err := json.Unmarshal(v, &session)
		if err != nil {
			// if we cannot read the saved data, delete it
			ui.Warning("Unable to unmarshal saved blackbox session %s: %v", id, err)
			err := b.Delete([]byte(id))
			if err != nil {
				ui.Error("Unable to delete corrupt data key %s: %v", id, err)
			}
			return nil
		}

		return err
	})

	return session, err
}

func (p persistence) DeleteBlackboxSession(id string) error {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	return db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketBlackboxSessions))
		if b == nil {
			// no session bucket yet
			return nil
		}
		v := b.Get([]byte(id))
		if v == nil {
			// no data for given key
			return nil
		}

		return b.Delete([]byte(id))
	})
}

// ListBlackboxSessions returns the ids of all stored flight logs
func (p persistence) ListBlackboxSessions() ([]string, error) {
	return p.listKeys(BucketBlackboxSessions)
}

func (p persistence) listKeys(bucket string) ([]string, error) {
	db, err := p.openPersistence()
	if err != nil {
		return nil, err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	var keys []string
	err = db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})

	return keys, err
}
