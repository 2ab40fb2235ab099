package models

import (
	"context"
	"time"

	"github.com/go-pg/pg/v10"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
)

// UserTitle is a user's relation to a catalog title. A row exists only while
// at least one of WantToWatch/Watched is true; the (user_id, title_id)
// primary key keeps it to one row per pair.
type UserTitle struct {
	tableName struct{} `pg:"user_title"`

	UserID      uuid.UUID `pg:"user_id,pk,type:uuid"`
	TitleID     uuid.UUID `pg:"title_id,pk,type:uuid"`
	WantToWatch bool      `pg:"want_to_watch,use_zero"`
	Watched     bool      `pg:"watched,use_zero"`
	Category    string    `pg:"category"`
	CreatedAt   time.Time `pg:"created_at,default:now()"`
	UpdatedAt   time.Time `pg:"updated_at,default:now()"`

	Title *Title `pg:"rel:has-one,fk:title_id"`
}

type RelationFlag string

const (
	RelationFlagAny         RelationFlag = ""
	RelationFlagWantToWatch RelationFlag = "want_to_watch"
	RelationFlagWatched     RelationFlag = "watched"
)

func GetUserTitle(ctx context.Context, db ORM, uID, titleID uuid.UUID) (*UserTitle, error) {
	var ut UserTitle
	err := db.ModelContext(ctx, &ut).
		Where("user_id = ? AND title_id = ?", uID, titleID).
		Limit(1).
		Select()
	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch user title relation")
	}
	return &ut, nil
}

// GetUserTitles returns the user's relations, optionally restricted to those
// with a given flag set.
func GetUserTitles(ctx context.Context, db *pg.DB, uID uuid.UUID, flag RelationFlag) ([]*UserTitle, error) {
	var list []*UserTitle
	q := db.Model(&list).
		Context(ctx).
		Where("user_id = ?", uID)
	switch flag {
	case RelationFlagWantToWatch:
		q = q.Where("want_to_watch = true")
	case RelationFlagWatched:
		q = q.Where("watched = true")
	}
	err := q.Order("created_at DESC").Select()
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch user title relations")
	}
	return list, nil
}

func UpsertUserTitle(ctx context.Context, db ORM, ut *UserTitle) error {
	ut.UpdatedAt = time.Now()
	_, err := db.ModelContext(ctx, ut).
		OnConflict("(user_id, title_id) DO UPDATE").
		Set(`
			want_to_watch = EXCLUDED.want_to_watch,
			watched = EXCLUDED.watched,
			category = EXCLUDED.category,
			updated_at = EXCLUDED.updated_at
		`).
		Insert()
	if err != nil {
		return errors.Wrap(err, "failed to upsert user title relation")
	}
	return nil
}

func DeleteUserTitle(ctx context.Context, db ORM, uID, titleID uuid.UUID) error {
	_, err := db.ModelContext(ctx, (*UserTitle)(nil)).
		Where("user_id = ? AND title_id = ?", uID, titleID).
		Delete()
	if err != nil {
		return errors.Wrap(err, "failed to delete user title relation")
	}
	return nil
}

func DeleteUserTitlesByTitle(ctx context.Context, db *pg.DB, titleID uuid.UUID) error {
	_, err := db.Model((*UserTitle)(nil)).
		Context(ctx).
		Where("title_id = ?", titleID).
		Delete()
	if err != nil {
		return errors.Wrap(err, "failed to delete relations for title")
	}
	return nil
}
