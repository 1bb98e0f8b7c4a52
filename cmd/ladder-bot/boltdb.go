package main

import (
	"encoding/json"
	"sort"

	"github.com/boltdb/bolt"
	"github.com/pkg/errors"
)

type boltdb struct {
	db *bolt.DB
}

func NewBoltDB(filename string) (DB, error) {
	db, err := bolt.Open(filename, 0600, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open %s", filename)
	}

	return &boltdb{db: db}, nil
}

func (b *boltdb) Close() error {
	return errors.Wrap(b.db.Close(), "unable to close database")
}

// buckets are created per channel on first write
func (b *boltdb) createLadderTable() error {
	return nil
}

func (b *boltdb) getPlayer(userID, channelID string) (*ladder, error) {
	var l ladder
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(channelID))
		if bucket == nil {
			return errors.Wrap(errNotFound{}, "bucket does not exist yet")
		}

		u := bucket.Get([]byte(userID))
		if len(u) == 0 {
			return errors.Wrap(errNotFound{}, "unable to get player")
		}

		return errors.Wrap(json.Unmarshal(u, &l), "unable to unmarshal player")
	})
	if err != nil {
		return nil, err
	}

	return &l, nil
}

func (b *boltdb) getLadders() ([]string, error) {
	var channels []string
	err := b.db.View(func(tx *bolt.Tx) error {
		return tx.ForEach(func(name []byte, _ *bolt.Bucket) error {
			channels = append(channels, string(name))
			return nil
		})
	})

	return channels, errors.Wrap(err, "unable to list ladders")
}

func (b *boltdb) getLadder(channelID string) ([]ladder, error) {
	l := make([]ladder, 0)
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(channelID))
		if bucket == nil {
			return nil
		}

		return errors.Wrap(bucket.ForEach(func(k, v []byte) error {
			var u ladder
			if err := json.Unmarshal(v, &u); err != nil {
				return errors.Wrap(err, "unable to unmarshal player")
			}
			l = append(l, u)
			return nil
		}), "unable to get bucket contents")
	})
	if err != nil {
		return nil, err
	}

	sort.Sort(ladders(l))
	return l, nil
}

func (b *boltdb) clearLadder(channelID string) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket([]byte(channelID)) != nil {
			return errors.Wrap(tx.DeleteBucket([]byte(channelID)), "unable to delete bucket")
		}

		return nil
	})

	return errors.Wrap(err, "unable to clear the ladder")
}

func (b *boltdb) removePlayer(l ladder) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(l.ChannelID))
		if bucket == nil {
			return nil
		}
		return errors.Wrap(bucket.Delete([]byte(l.UserID)), "unable to delete player")
	})

	return errors.Wrap(err, "unable to remove player")
}

func (b *boltdb) insert(l ladder) func(*bolt.Tx) error {
	return func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists([]byte(l.ChannelID))
		if err != nil {
			return errors.Wrap(err, "unable to create bucket")
		}

		if l.ID == 0 {
			id, err := bucket.NextSequence()
			if err != nil {
				return errors.Wrap(err, "unable to get next id")
			}
			l.ID = int64(id)
		}

		data, err := json.Marshal(l)
		if err != nil {
			return errors.Wrap(err, "unable to marshal player into json")
		}

		return errors.Wrap(bucket.Put([]byte(l.UserID), data), "error putting player")
	}
}

func (b *boltdb) insertOrUpdate(l ladder) error {
	err := b.db.Update(b.insert(l))
	return errors.Wrap(err, "unable to insert player")
}

func (b *boltdb) updateLadder(l []ladder) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		for _, u := range l {
			if err := b.insert(u)(tx); err != nil {
				return err
			}
		}

		return nil
	})

	return errors.Wrap(err, "unable to update ladder")
}
