package command

import (
	"fmt"
	"io"
	"time"

	"github.com/urfave/cli/v2"
)

// SystemCommand returns the system subcommand group.
func SystemCommand() *cli.Command {
	return &cli.Command{
		Name:    "system",
		Aliases: []string{"sys"},
		Usage:   "System management commands",
		Subcommands: []*cli.Command{
			{
				Name:   "status",
				Usage:  "Show system status summary",
				Action: systemStatus,
			},
			{
				Name:   "health",
				Usage:  "Check server health",
				Action: systemHealth,
			},
			{
				Name:   "gc",
				Usage:  "Sweep expired link tokens now",
				Action: systemGC,
			},
		},
	}
}

func systemStatus(c *cli.Context) error {
	client, err := EnsureConnected(c)
	if err != nil {
		return err
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	result, err := client.Status(ctx)
	if err != nil {
		return err
	}

	return render(c, result, func(w io.Writer) {
		fmt.Fprintf(w, "System Status\n")
		fmt.Fprintf(w, "=============\n\n")
		fmt.Fprintf(w, "Status:         %s\n", result.Status)
		fmt.Fprintf(w, "Version:        %s\n", result.Version)
		fmt.Fprintf(w, "Uptime:         %s\n", time.Duration(result.UptimeSeconds)*time.Second)
		fmt.Fprintf(w, "Stored tokens:  %d\n", result.StoredTokens)
		fmt.Fprintf(w, "Token TTL:      %s\n", time.Duration(result.TokenTTL)*time.Second)
		fmt.Fprintf(w, "Sweep interval: %s\n", time.Duration(result.SweepInterval)*time.Second)
	})
}

func systemHealth(c *cli.Context) error {
	client, err := EnsureConnected(c)
	if err != nil {
		return err
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	result, err := client.Health(ctx)
	if err != nil {
		PrintError("health check failed: %v", err)
		return fmt.Errorf("server unhealthy")
	}

	return render(c, result, func(w io.Writer) {
		if result["status"] == "healthy" {
			fmt.Fprintf(w, "✓ Server is healthy\n")
			fmt.Fprintf(w, "  Target: %s\n", client.BaseURL())
		} else {
			fmt.Fprintf(w, "✗ Server is unhealthy: %s\n", result["status"])
		}
	})
}

func systemGC(c *cli.Context) error {
	client, err := EnsureConnected(c)
	if err != nil {
		return err
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	result, err := client.TriggerGC(ctx)
	if err != nil {
		return err
	}

	return render(c, result, func(w io.Writer) {
		fmt.Fprintf(w, "Sweep completed:\n")
		fmt.Fprintf(w, "  Expired tokens removed: %d\n", result.CleanedCount)
		fmt.Fprintf(w, "  Tokens remaining:       %d\n", result.Remaining)
	})
}
