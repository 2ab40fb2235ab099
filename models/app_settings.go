package models

import (
	"context"
	"time"

	"github.com/go-pg/pg/v10"
	"github.com/pkg/errors"
)

// AppSettings is a single-row table. GetAppSettings returns defaults when the
// row is missing.
type AppSettings struct {
	tableName struct{} `pg:"app_settings"`

	ID            int       `pg:"id,pk"`
	SignupEnabled bool      `pg:"signup_enabled,use_zero"`
	UpdatedAt     time.Time `pg:"updated_at,default:now()"`
}

const appSettingsID = 1

func GetAppSettings(ctx context.Context, db *pg.DB) (*AppSettings, error) {
	s := &AppSettings{}
	err := db.Model(s).
		Context(ctx).
		Where("id = ?", appSettingsID).
		Limit(1).
		Select()
	if errors.Is(err, pg.ErrNoRows) {
		return &AppSettings{ID: appSettingsID, SignupEnabled: true}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch app settings")
	}
	return s, nil
}

func SetSignupEnabled(ctx context.Context, db *pg.DB, enabled bool) error {
	s := &AppSettings{
		ID:            appSettingsID,
		SignupEnabled: enabled,
		UpdatedAt:     time.Now(),
	}
	_, err := db.Model(s).
		Context(ctx).
		OnConflict("(id) DO UPDATE").
		Set("signup_enabled = EXCLUDED.signup_enabled, updated_at = EXCLUDED.updated_at").
		Insert()
	if err != nil {
		return errors.Wrap(err, "failed to update app settings")
	}
	return nil
}
