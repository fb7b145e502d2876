package command

import (
	"fmt"
	"io"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/hublink-go/internal/infra/buildinfo"
)

// VersionCommand prints client build information and, with --server-side,
// the server version too.
func VersionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Show version information",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "server-side",
				Usage: "Also query the server version",
			},
		},
		Action: showVersion,
	}
}

type versionInfo struct {
	Client buildinfo.Info `json:"client"`
	Server string         `json:"server,omitempty"`
}

func showVersion(c *cli.Context) error {
	info := versionInfo{Client: buildinfo.Get()}

	if c.Bool("server-side") {
		client, err := EnsureConnected(c)
		if err != nil {
			return err
		}
		ctx, cancel := requestContext(c)
		defer cancel()

		status, err := client.Status(ctx)
		if err != nil {
			return fmt.Errorf("query server version: %w", err)
		}
		info.Server = status.Version
	}

	return render(c, info, func(w io.Writer) {
		fmt.Fprintf(w, "hublink-cli %s\n", info.Client)
		if info.Server != "" {
			fmt.Fprintf(w, "server      %s\n", info.Server)
		}
	})
}
