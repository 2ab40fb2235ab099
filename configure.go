package main

import (
	"github.com/urfave/cli"
)

func configure(app *cli.App) {
	serveCMD := makeServeCMD()
	migrationCMD := makePGMigrationCMD()
	lookupCMD := makeLookupCMD()
	app.Commands = []cli.Command{serveCMD, migrationCMD, lookupCMD}
}
