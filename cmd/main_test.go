package cmd

import (
	"os"
	"testing"

	"github.com/urfave/cli"
)

// Mirror the global cli setup performed by main so that the default
// "version, v" flag does not clash with the app's "v" flag.
func TestMain(m *testing.M) {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}
	os.Exit(m.Run())
}
