package migrations

import (
	"github.com/go-pg/migrations/v8"
	"github.com/go-pg/pg/v10"
)

var defaultGenres = []string{
	"Action",
	"Adventure",
	"Animation",
	"Biography",
	"Comedy",
	"Crime",
	"Documentary",
	"Drama",
	"Family",
	"Fantasy",
	"History",
	"Horror",
	"Music",
	"Musical",
	"Mystery",
	"Romance",
	"Sci-Fi",
	"Sport",
	"Thriller",
	"War",
	"Western",
}

func SeedGenres(col *migrations.Collection) {
	col.MustRegisterTx(func(db migrations.DB) error {
		for _, name := range defaultGenres {
			_, err := db.Exec("INSERT INTO genre (name) VALUES (?) ON CONFLICT (name) DO NOTHING", name)
			if err != nil {
				return err
			}
		}
		return nil
	}, func(db migrations.DB) error {
		_, err := db.Exec("DELETE FROM genre WHERE name IN (?)", pg.In(defaultGenres))
		return err
	})
}
