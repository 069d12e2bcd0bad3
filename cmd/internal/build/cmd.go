package build

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

// Set with -ldflags "-X github.com/staymithra/resetserver/cmd/internal/build.Version=...".
var (
	Branch    string
	Version   string
	Revision  string
	BuildUser string
	BuildDate string
)

func Command() *cli.Command {
	return &cli.Command{
		Name:  "info",
		Usage: "info displays build information of this binary",
		Action: func(c *cli.Context) error {
			_, err := fmt.Fprintf(c.App.Writer, `Branch:		%s
Version:	%s
Revision:	%s
BuildUser:	%s
BuildDate:	%s
`, orUnknown(Branch), orUnknown(Version), orUnknown(Revision), orUnknown(BuildUser), orUnknown(BuildDate))
			return err
		},
	}
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
