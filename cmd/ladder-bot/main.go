package main

import (
	"flag"
	"log"
	"os"

	"github.com/pkg/errors"
)

func transferData(input, output DB) error {
	Debug("transfering data")
	channels, err := input.getLadders()
	if err != nil {
		return err
	}

	Debugf("Got ladders: %#v", channels)
	for _, channel := range channels {
		players, err := input.getLadder(channel)
		if err != nil {
			return err
		}

		Debugf("Got players: %#v", players)
		if err := output.updateLadder(players); err != nil {
			return err
		}
	}

	return nil
}

func openDatabase(database, filename string) (DB, error) {
	switch database {
	case "sqlite":
		return NewSqlite(sqliteDriver, filename)
	case "sqlite-pure":
		return NewSqlite(sqlitePureDriver, filename)
	case "boltdb":
		return NewBoltDB(filename)
	}

	return nil, errors.Errorf("invalid database argument %q", database)
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	debug := flag.Bool("debug", cfg.Debug, "enable debugging")
	database := flag.String("database", cfg.Database, "[sqlite, sqlite-pure, boltdb]")
	filename := flag.String("filename", cfg.Filename, "filename for file based databases")
	transfer := flag.String("transfer", "", "[sqlite, sqlite-pure, boltdb] database to transfer to")
	output := flag.String("output", "database.db", "filename for transfer to")
	systemName := flag.String("system", cfg.System, "[elo, glicko, glicko2]")
	flag.Parse()

	setDebug(*debug)

	db, err := openDatabase(*database, *filename)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("%+v", err)
		}
	}()

	if *transfer != "" {
		out, err := openDatabase(*transfer, *output)
		if err != nil {
			return err
		}
		defer func() {
			if err := out.Close(); err != nil {
				log.Printf("%+v", err)
			}
		}()

		return transferData(db, out)
	}

	sys, err := newSystem(*systemName, cfg.eloConfig())
	if err != nil {
		return err
	}

	token, err := cfg.token()
	if err != nil {
		return err
	}

	log.Println("started ", os.Args[0])
	log.Println("using", *database, "for a database")
	log.Println("rating players with", sys.name())

	b := &bot{db: db, system: sys}
	switch cfg.Transport {
	case "discord":
		return runDiscord(token, b)
	default:
		return runSlack(token, b)
	}
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("%+v", err)
	}
}
