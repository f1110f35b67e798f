package cli

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"fastmatcher.dev/internal/toolchain"
)

// DoctorCmd builds the toolchain diagnostic command.
func DoctorCmd() *cli.Command {
	cmd := &cli.Command{
		Name:  "doctor",
		Usage: "check the local toolchain for building native extension wheels",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "exit non-zero when any check fails, not just unrecoverable ones",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return doctorMain(ctx, cmd)
		},
	}

	return cmd
}

func doctorMain(ctx context.Context, cmd *cli.Command) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})

	doctor := toolchain.NewDoctor()
	results := doctor.Run(ctx)

	for _, r := range results {
		if r.OK {
			logger.Info("ok", "check", r.Name, "detail", r.Detail)
			continue
		}

		logger.Error("missing", "check", r.Name, "detail", r.Detail)
		if r.Remedy != "" {
			logger.Warn("remedy", "check", r.Name, "try", r.Remedy)
		}
	}

	// An unsupported distribution is unrecoverable: no remediation
	// command can be suggested.
	if _, err := doctor.Distro(); err != nil {
		return cli.Exit("unsupported distribution", 1)
	}

	if cmd.Bool("strict") && toolchain.Failed(results) {
		return cli.Exit("toolchain check failed", 1)
	}

	return nil
}
