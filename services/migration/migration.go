package migration

import (
	"github.com/go-pg/migrations/v8"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	services "github.com/webtor-io/common-services"
)

const sqlDir = "migrations"

type PGMigration struct {
	db  *services.PG
	col *migrations.Collection
}

func NewPGMigration(db *services.PG, col *migrations.Collection) *PGMigration {
	return &PGMigration{
		db:  db,
		col: col,
	}
}

func (s *PGMigration) Run(a ...string) error {
	db := s.db.Get()
	if db == nil {
		log.Infof("db not initialized, skipping migration")
		return nil
	}
	if err := s.col.DiscoverSQLMigrations(sqlDir); err != nil {
		return errors.Wrap(err, "failed to discover sql migrations")
	}
	_, _, err := s.col.Run(db, "init")
	if err != nil {
		return errors.Wrap(err, "failed to init migrations table")
	}
	oldVersion, newVersion, err := s.col.Run(db, a...)
	if err != nil {
		return errors.Wrapf(err, "failed to migrate from %v to %v", oldVersion, newVersion)
	}
	if newVersion != oldVersion {
		log.Infof("db migrated from version %d to %d", oldVersion, newVersion)
	} else {
		log.Infof("db version is %d", oldVersion)
	}
	return nil
}
