package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"fastmatcher.dev/internal/toolchain"
)

// BuildWheelCmd builds the wheel packaging command.
func BuildWheelCmd() *cli.Command {
	cmd := &cli.Command{
		Name:  "build-wheel",
		Usage: "build a Python native-extension wheel with maturin",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "dir",
				Usage: "extension project directory",
				Value: ".",
			},
			&cli.StringFlag{
				Name:  "target",
				Usage: "Rust target triple for cross-compilation",
			},
			&cli.StringSliceFlag{
				Name:  "arg",
				Usage: "extra argument passed to maturin, repeatable",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "print the full build output",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return buildWheelMain(ctx, cmd)
		},
	}

	return cmd
}

func buildWheelMain(ctx context.Context, cmd *cli.Command) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})

	builder := &toolchain.WheelBuilder{}
	dir := cmd.String("dir")

	if !builder.CanBuild(dir) {
		return fmt.Errorf("no Cargo.toml found in %s", dir)
	}

	config := toolchain.WheelBuildConfig{
		ProjectDir: dir,
		Target:     cmd.String("target"),
		Args:       cmd.StringSlice("arg"),
		Verbose:    cmd.Bool("verbose"),
	}

	result, err := builder.Build(ctx, config)
	if cmd.Bool("verbose") || err != nil {
		for _, line := range result.Output {
			fmt.Fprintln(os.Stderr, line)
		}
	}
	if err != nil {
		return err
	}

	for _, wheel := range result.Wheels {
		logger.Info("built wheel", "path", wheel)
	}

	return nil
}
