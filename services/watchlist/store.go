package watchlist

import (
	"context"

	"github.com/go-pg/pg/v10"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
	cs "github.com/webtor-io/common-services"

	"github.com/watchdeck/web-ui/models"
)

// Store applies reconciliation decisions to the relation table. Each toggle
// runs in a transaction so the decision is made against the row it mutates,
// and the confirmation message is produced only after the write succeeded.
type Store struct {
	pg    *cs.PG
	guard *Guard
}

func NewStore(pg *cs.PG, guard *Guard) *Store {
	return &Store{
		pg:    pg,
		guard: guard,
	}
}

func (s *Store) ToggleWantToWatch(ctx context.Context, uID uuid.UUID, title *models.Title, category string) (*Decision, error) {
	return s.toggle(ctx, uID, title, func(current *models.UserTitle) (*Decision, error) {
		return ToggleWantToWatch(current, category, title.Name)
	})
}

func (s *Store) ToggleWatched(ctx context.Context, uID uuid.UUID, title *models.Title) (*Decision, error) {
	return s.toggle(ctx, uID, title, func(current *models.UserTitle) (*Decision, error) {
		return ToggleWatched(current, title.Name), nil
	})
}

func (s *Store) toggle(ctx context.Context, uID uuid.UUID, title *models.Title, decide func(*models.UserTitle) (*Decision, error)) (*Decision, error) {
	db := s.pg.Get()
	if db == nil {
		return nil, errors.New("no db")
	}

	acquired, err := s.guard.Acquire(ctx, uID, title.TitleID)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, ErrToggleInFlight
	}
	defer s.guard.Release(ctx, uID, title.TitleID)

	var d *Decision
	err = db.RunInTransaction(ctx, func(tx *pg.Tx) error {
		current, err := models.GetUserTitle(ctx, tx, uID, title.TitleID)
		if err != nil {
			return err
		}
		d, err = decide(current)
		if err != nil {
			return err
		}
		return s.apply(ctx, tx, uID, title.TitleID, d)
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Store) apply(ctx context.Context, tx *pg.Tx, uID, titleID uuid.UUID, d *Decision) error {
	switch d.Action {
	case ActionCreate, ActionUpdate:
		if !d.Next.WantToWatch && !d.Next.Watched {
			return errors.Errorf("refusing to persist relation with both flags false for title %v", titleID)
		}
		return models.UpsertUserTitle(ctx, tx, &models.UserTitle{
			UserID:      uID,
			TitleID:     titleID,
			WantToWatch: d.Next.WantToWatch,
			Watched:     d.Next.Watched,
			Category:    d.Category,
		})
	case ActionDelete:
		return models.DeleteUserTitle(ctx, tx, uID, titleID)
	default:
		return nil
	}
}
