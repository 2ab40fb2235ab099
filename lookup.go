package main

import (
	"context"

	"github.com/go-pg/pg/v10"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	cs "github.com/webtor-io/common-services"

	"github.com/watchdeck/web-ui/models"
	"github.com/watchdeck/web-ui/services/oracle"
)

func makeLookupCMD() cli.Command {
	lookupCMD := cli.Command{
		Name:    "lookup",
		Aliases: []string{"l"},
		Usage:   "Backfills title metadata",
		Action:  lookup,
	}
	configureLookup(&lookupCMD)
	return lookupCMD
}

func configureLookup(c *cli.Command) {
	c.Flags = append(c.Flags,
		cli.BoolFlag{
			Name:  "apply",
			Usage: "write looked up metadata to db",
		},
		cli.BoolFlag{
			Name:  "force",
			Usage: "lookup all titles, not only incomplete ones",
		},
		cli.StringFlag{
			Name:  "id",
			Usage: "title id for lookup",
		},
	)
	c.Flags = cs.RegisterPGFlags(c.Flags)
	c.Flags = oracle.RegisterFlags(c.Flags)
}

func lookup(c *cli.Context) error {
	apply := c.Bool("apply")
	force := c.Bool("force")
	id := c.String("id")

	// Setting DB
	pgs := cs.NewPG(c)
	defer pgs.Close()

	// Setting Migrations
	err := pgMigrate(c, "up")
	if err != nil {
		return err
	}
	db := pgs.Get()
	if db == nil {
		return errors.New("db is nil")
	}

	// Setting Oracle
	o := oracle.New(c)
	if o == nil {
		return errors.New("lookup is not configured")
	}

	ctx := context.Background()
	var titles []*models.Title
	if id != "" {
		tID, err := uuid.FromString(id)
		if err != nil {
			return errors.Wrap(err, "failed to parse title id")
		}
		t, err := models.GetTitleByID(ctx, db, tID)
		if err != nil {
			return err
		}
		if t == nil {
			return errors.Errorf("title %v not found", id)
		}
		titles = append(titles, t)
	} else if force {
		titles, err = models.GetAllTitles(ctx, db)
		if err != nil {
			return err
		}
	} else {
		titles, err = models.GetTitlesWithoutMetadata(ctx, db)
		if err != nil {
			return err
		}
	}

	for _, t := range titles {
		err = lookupTitle(ctx, db, o, t, apply)
		if err != nil {
			log.WithError(err).WithField("name", t.Name).Error("failed to lookup title")
		}
	}
	return nil
}

func lookupTitle(ctx context.Context, db *pg.DB, o *oracle.Oracle, t *models.Title, apply bool) error {
	d, err := o.LookupTitle(ctx, t.Name, t.Type)
	if err != nil {
		return err
	}
	l := log.WithField("name", t.Name)
	l.Infof("got metadata %+v", d)
	if d.TrailerURL == "" && t.TrailerURL == "" {
		tu, err := o.FindTrailer(ctx, t.Name)
		if err != nil {
			return err
		}
		d.TrailerURL = tu
	}
	if !apply {
		return nil
	}
	if t.Description == "" && d.Description != "" {
		t.Description = d.Description
	}
	if t.PosterURL == "" && d.PosterURL != "" {
		t.PosterURL = d.PosterURL
	}
	if t.TrailerURL == "" && d.TrailerURL != "" {
		t.TrailerURL = d.TrailerURL
	}
	if t.Rating == nil && d.Rating != nil {
		t.Rating = d.Rating
	}
	if t.Year == nil && d.Year != nil {
		t.Year = d.Year
	}
	if len(t.GenreIDs) == 0 {
		for _, name := range d.Genres {
			g, err := models.CreateGenre(ctx, db, name)
			if err != nil {
				return err
			}
			t.GenreIDs = append(t.GenreIDs, g.GenreID)
		}
	}
	err = models.UpdateTitle(ctx, db, t)
	if err != nil {
		return err
	}
	l.Info("title updated")
	return nil
}
