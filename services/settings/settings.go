package settings

import (
	"context"

	"github.com/pkg/errors"
	cs "github.com/webtor-io/common-services"

	"github.com/watchdeck/web-ui/models"
)

// Settings reads and updates the app-settings record.
type Settings struct {
	pg *cs.PG
}

func New(pg *cs.PG) *Settings {
	return &Settings{
		pg: pg,
	}
}

func (s *Settings) Get(ctx context.Context) (*models.AppSettings, error) {
	db := s.pg.Get()
	if db == nil {
		return nil, errors.New("no db")
	}
	return models.GetAppSettings(ctx, db)
}

func (s *Settings) SignupEnabled(ctx context.Context) bool {
	as, err := s.Get(ctx)
	if err != nil {
		return false
	}
	return as.SignupEnabled
}

func (s *Settings) SetSignupEnabled(ctx context.Context, enabled bool) error {
	db := s.pg.Get()
	if db == nil {
		return errors.New("no db")
	}
	return models.SetSignupEnabled(ctx, db, enabled)
}
