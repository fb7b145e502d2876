package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/hublink-go/internal/cli/connection"
	"github.com/yndnr/hublink-go/internal/cli/output"
	"github.com/yndnr/hublink-go/internal/infra/buildinfo"
	"github.com/yndnr/hublink-go/internal/infra/tlsroots"
)

const defaultServer = "localhost:5080"

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "hublink-cli",
		Usage:   "Issue and verify hublink account links",
		Version: buildinfo.Get().String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			LinkCommand(),
			SystemCommand(),
			VersionCommand(),
		},
		Before: func(c *cli.Context) error {
			_, err := output.ParseFormat(c.String("output"))
			return err
		},
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "hublink server address (e.g. localhost:5080 or https://hub.example.com)",
			EnvVars: []string{"HUBLINK_SERVER"},
			Value:   defaultServer,
		},
		&cli.StringFlag{
			Name:    "api-key",
			Aliases: []string{"K"},
			Usage:   "API key for /api and /admin endpoints",
			EnvVars: []string{"HUBLINK_API_KEY"},
		},
		&cli.StringFlag{
			Name:    "ca-file",
			Usage:   "PEM bundle trusted in addition to system roots",
			EnvVars: []string{"HUBLINK_CA_FILE"},
		},
		&cli.BoolFlag{
			Name:  "insecure",
			Usage: "Skip TLS certificate verification",
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "Request timeout",
			Value: 30 * time.Second,
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
			Value:   string(output.FormatTable),
		},
	}
}

// GlobalFlags defines flags available to all commands.
type GlobalFlags struct {
	Server   string
	APIKey   string
	CAFile   string
	Insecure bool
	Timeout  time.Duration
	Output   output.Format
}

// ParseGlobalFlags extracts global flags from context.
func ParseGlobalFlags(c *cli.Context) *GlobalFlags {
	format, err := output.ParseFormat(c.String("output"))
	if err != nil {
		format = output.FormatTable
	}
	return &GlobalFlags{
		Server:   c.String("server"),
		APIKey:   c.String("api-key"),
		CAFile:   c.String("ca-file"),
		Insecure: c.Bool("insecure"),
		Timeout:  c.Duration("timeout"),
		Output:   format,
	}
}

// EnsureConnected returns an HTTP client for the configured server.
func EnsureConnected(c *cli.Context) (*connection.HTTPClient, error) {
	flags := ParseGlobalFlags(c)

	var opts []connection.Option
	if flags.Timeout > 0 {
		opts = append(opts, connection.WithTimeout(flags.Timeout))
	}
	if flags.CAFile != "" || flags.Insecure || strings.HasPrefix(flags.Server, "https://") {
		tlsCfg, err := tlsroots.ClientConfig(flags.CAFile, flags.Insecure)
		if err != nil {
			return nil, fmt.Errorf("tls config: %w", err)
		}
		opts = append(opts, connection.WithTLSConfig(tlsCfg))
	}
	return connection.NewHTTPClient(flags.Server, flags.APIKey, opts...), nil
}

func requestContext(c *cli.Context) (context.Context, context.CancelFunc) {
	parent := c.Context
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, ParseGlobalFlags(c).Timeout+time.Second)
}

func stdout(c *cli.Context) io.Writer {
	if c.App != nil && c.App.Writer != nil {
		return c.App.Writer
	}
	return os.Stdout
}

// render writes data with the selected formatter. human handles table
// output when set.
func render(c *cli.Context, data any, human func(w io.Writer)) error {
	w := stdout(c)
	format := ParseGlobalFlags(c).Output
	if format == output.FormatTable && human != nil {
		human(w)
		return nil
	}
	return output.NewFormatter(format).Format(w, data)
}

// PrintError prints an error message to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
