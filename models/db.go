package models

import (
	"context"

	"github.com/go-pg/pg/v10/orm"
)

// ORM is the subset of go-pg shared by *pg.DB and *pg.Tx, so relation writes
// can run inside a transaction.
type ORM interface {
	ModelContext(ctx context.Context, model ...interface{}) *orm.Query
}
