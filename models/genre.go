package models

import (
	"context"
	"time"

	"github.com/go-pg/pg/v10"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
)

type Genre struct {
	tableName struct{} `pg:"genre"`

	GenreID   uuid.UUID `pg:"genre_id,pk,type:uuid,default:uuid_generate_v4()"`
	Name      string    `pg:"name,unique"`
	CreatedAt time.Time `pg:"created_at,default:now()"`
}

func GetAllGenres(ctx context.Context, db *pg.DB) ([]*Genre, error) {
	var list []*Genre
	err := db.Model(&list).
		Context(ctx).
		Order("name ASC").
		Select()
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch genres")
	}
	return list, nil
}

func GetGenreByName(ctx context.Context, db *pg.DB, name string) (*Genre, error) {
	var g Genre
	err := db.Model(&g).
		Context(ctx).
		Where("name = ?", name).
		Limit(1).
		Select()
	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch genre by name")
	}
	return &g, nil
}

func CreateGenre(ctx context.Context, db *pg.DB, name string) (*Genre, error) {
	g := &Genre{
		Name: name,
	}
	_, err := db.Model(g).
		Context(ctx).
		OnConflict("(name) DO NOTHING").
		Returning("genre_id").
		Insert()
	if err != nil {
		return nil, errors.Wrap(err, "failed to insert genre")
	}
	if uuid.Equal(g.GenreID, uuid.Nil) {
		return GetGenreByName(ctx, db, name)
	}
	return g, nil
}

func DeleteGenre(ctx context.Context, db *pg.DB, genreID uuid.UUID) error {
	_, err := db.Model((*Genre)(nil)).
		Context(ctx).
		Where("genre_id = ?", genreID).
		Delete()
	if err != nil {
		return errors.Wrap(err, "failed to delete genre")
	}
	return nil
}
