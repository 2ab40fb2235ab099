package models

import (
	"context"
	"time"

	"github.com/go-pg/pg/v10"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
)

type Role string

const (
	RoleUser       Role = "USER"
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleSuperAdmin
}

type User struct {
	tableName struct{} `pg:"user"`

	UserID    uuid.UUID `pg:"user_id,pk,type:uuid,default:uuid_generate_v4()"`
	Email     string    `pg:"email,unique"`
	Role      Role      `pg:"role,default:'USER'"`
	CreatedAt time.Time `pg:"created_at,default:now()"`
	UpdatedAt time.Time `pg:"updated_at,default:now()"`
}

func (u *User) IsSuperAdmin() bool {
	return u != nil && u.Role == RoleSuperAdmin
}

// GetOrCreateUser finds a user by email, creating a USER-role record on first
// login.
func GetOrCreateUser(ctx context.Context, db *pg.DB, email string) (*User, bool, error) {
	user := &User{}
	err := db.Model(user).
		Context(ctx).
		Where("email = ?", email).
		Limit(1).
		Select()
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, pg.ErrNoRows) {
		return nil, false, errors.Wrap(err, "failed to fetch user")
	}

	user.Email = email
	user.Role = RoleUser
	_, err = db.Model(user).
		Context(ctx).
		OnConflict("(email) DO UPDATE SET updated_at = now()").
		Returning("*").
		Insert()
	if err != nil {
		return nil, false, errors.Wrap(err, "failed to insert user")
	}
	return user, true, nil
}

func GetAllUsers(ctx context.Context, db *pg.DB) ([]*User, error) {
	var list []*User
	err := db.Model(&list).
		Context(ctx).
		Order("email ASC").
		Select()
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch users")
	}
	return list, nil
}

func UpdateUserRole(ctx context.Context, db *pg.DB, userID uuid.UUID, role Role) error {
	_, err := db.Model(&User{UserID: userID, Role: role, UpdatedAt: time.Now()}).
		Context(ctx).
		WherePK().
		Column("role", "updated_at").
		Update()
	if err != nil {
		return errors.Wrap(err, "failed to update user role")
	}
	return nil
}
