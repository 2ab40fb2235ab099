package models

import (
	"context"
	"time"

	"github.com/go-pg/pg/v10"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
)

type Title struct {
	tableName struct{} `pg:"title"`

	TitleID     uuid.UUID   `pg:"title_id,pk,type:uuid,default:uuid_generate_v4()"`
	Type        ContentType `pg:"type"`
	Name        string      `pg:"name"`
	Description string      `pg:"description"`
	PosterURL   string      `pg:"poster_url"`
	TrailerURL  string      `pg:"trailer_url"`
	Rating      *float64    `pg:"rating"`
	Year        *int16      `pg:"year"`
	GenreIDs    []uuid.UUID `pg:"genre_ids,array"`
	CreatedAt   time.Time   `pg:"created_at,default:now()"`
	UpdatedAt   time.Time   `pg:"updated_at,default:now()"`
}

func (t *Title) HasGenre(genreID uuid.UUID) bool {
	for _, id := range t.GenreIDs {
		if id == genreID {
			return true
		}
	}
	return false
}

func GetAllTitles(ctx context.Context, db *pg.DB) ([]*Title, error) {
	var list []*Title
	err := db.Model(&list).
		Context(ctx).
		Order("name ASC").
		Select()
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch titles")
	}
	return list, nil
}

func GetTitleByID(ctx context.Context, db *pg.DB, titleID uuid.UUID) (*Title, error) {
	var t Title
	err := db.Model(&t).
		Context(ctx).
		Where("title_id = ?", titleID).
		Limit(1).
		Select()
	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch title")
	}
	return &t, nil
}

func GetTitlesByIDs(ctx context.Context, db *pg.DB, titleIDs []uuid.UUID) ([]*Title, error) {
	if len(titleIDs) == 0 {
		return nil, nil
	}
	var list []*Title
	err := db.Model(&list).
		Context(ctx).
		Where("title_id IN (?)", pg.In(titleIDs)).
		Select()
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch titles by ids")
	}
	return list, nil
}

func CreateTitle(ctx context.Context, db *pg.DB, t *Title) error {
	_, err := db.Model(t).
		Context(ctx).
		Insert()
	if err != nil {
		return errors.Wrap(err, "failed to insert title")
	}
	return nil
}

func UpdateTitle(ctx context.Context, db *pg.DB, t *Title) error {
	t.UpdatedAt = time.Now()
	_, err := db.Model(t).
		Context(ctx).
		WherePK().
		Update()
	if err != nil {
		return errors.Wrap(err, "failed to update title")
	}
	return nil
}

func DeleteTitle(ctx context.Context, db *pg.DB, titleID uuid.UUID) error {
	_, err := db.Model((*Title)(nil)).
		Context(ctx).
		Where("title_id = ?", titleID).
		Delete()
	if err != nil {
		return errors.Wrap(err, "failed to delete title")
	}
	return nil
}

// GetTitlesWithoutMetadata returns titles missing rating, year or trailer,
// candidates for oracle backfill.
func GetTitlesWithoutMetadata(ctx context.Context, db *pg.DB) ([]*Title, error) {
	var list []*Title
	err := db.Model(&list).
		Context(ctx).
		WhereGroup(func(q *pg.Query) (*pg.Query, error) {
			q = q.WhereOr("rating IS NULL").
				WhereOr("year IS NULL").
				WhereOr("trailer_url = ''")
			return q, nil
		}).
		Order("name ASC").
		Select()
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch titles without metadata")
	}
	return list, nil
}
