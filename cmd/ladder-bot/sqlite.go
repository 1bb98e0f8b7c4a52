package main

import (
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

const (
	// cgo driver
	sqliteDriver = "sqlite3"
	// pure Go driver
	sqlitePureDriver = "sqlite"
)

func init() {
	sqlx.BindDriver(sqlitePureDriver, sqlx.QUESTION)
}

type sqlite struct {
	db *sqlx.DB
}

func NewSqlite(driver, filename string) (DB, error) {
	db, err := sqlx.Connect(driver, filename)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open %s with %s", filename, driver)
	}

	s := sqlite{db: db}

	if err := s.createLadderTable(); err != nil {
		return nil, err
	}

	return &s, nil
}

func (s *sqlite) Close() error {
	return errors.Wrap(s.db.Close(), "unable to close database")
}

func (s *sqlite) createLadderTable() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS ladder (
		id INTEGER NOT NULL PRIMARY KEY,
		channel_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		system TEXT NOT NULL,
		rating REAL NOT NULL,
		rd REAL NOT NULL DEFAULT 0,
		volatility REAL NOT NULL DEFAULT 0,
		k REAL NOT NULL DEFAULT 0,
		games INTEGER NOT NULL DEFAULT 0,
		UNIQUE (channel_id, user_id)
	)`)

	return errors.Wrap(err, "unable to create table ladder")
}

const selectLadder = `SELECT id, channel_id, user_id, system, rating, rd, volatility, k, games FROM ladder`

func (s *sqlite) getPlayer(userID, channelID string) (*ladder, error) {
	l := []ladder{}
	err := s.db.Select(&l, selectLadder+` WHERE user_id=? AND channel_id=?`, userID, channelID)
	if err != nil {
		return nil, errors.Wrap(err, "unable to select from ladder")
	}

	if len(l) == 0 {
		return nil, errors.Wrap(errNotFound{}, "unable to get player")
	}

	return &l[0], nil
}

func (s *sqlite) getLadders() ([]string, error) {
	channels := []string{}
	err := s.db.Select(&channels, `SELECT DISTINCT channel_id FROM ladder ORDER BY channel_id`)
	return channels, errors.Wrap(err, "unable to list ladders")
}

func (s *sqlite) getLadder(channelID string) ([]ladder, error) {
	l := []ladder{}
	err := s.db.Select(&l, selectLadder+` WHERE channel_id=? ORDER BY rating DESC, user_id`, channelID)
	if err != nil {
		return nil, errors.Wrap(err, "unable to get ladder")
	}

	return l, nil
}

func (s *sqlite) clearLadder(channelID string) error {
	_, err := s.db.Exec(`DELETE FROM ladder WHERE channel_id=?`, channelID)
	return errors.Wrap(err, "unable to delete ladder group")
}

func (s *sqlite) removePlayer(l ladder) error {
	_, err := s.db.Exec(`DELETE FROM ladder WHERE channel_id=? AND user_id=?`, l.ChannelID, l.UserID)
	return errors.Wrap(err, "unable to delete player from ladder")
}

const upsertLadder = `INSERT INTO ladder (channel_id, user_id, system, rating, rd, volatility, k, games)
	VALUES (:channel_id, :user_id, :system, :rating, :rd, :volatility, :k, :games)
	ON CONFLICT (channel_id, user_id) DO UPDATE SET
		system=excluded.system,
		rating=excluded.rating,
		rd=excluded.rd,
		volatility=excluded.volatility,
		k=excluded.k,
		games=excluded.games`

func (s *sqlite) insertOrUpdate(l ladder) error {
	_, err := s.db.NamedExec(upsertLadder, &l)
	return errors.Wrap(err, "unable to insert/update into ladder")
}

func (s *sqlite) updateLadder(l []ladder) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return errors.Wrap(err, "unable to begin transaction")
	}

	for _, u := range l {
		if _, err := tx.NamedExec(upsertLadder, &u); err != nil {
			_ = tx.Rollback()
			return errors.Wrap(err, "unable to update ladder")
		}
	}

	return errors.Wrap(tx.Commit(), "unable to commit transaction")
}
