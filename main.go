package main

import (
	"os"

	"github.com/achilleasa/vincent/cmd"
	"github.com/achilleasa/vincent/log"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cmd.NewApp()
	if err := app.Run(os.Args); err != nil {
		log.New("vincent").Error(err)
		os.Exit(1)
	}
}
