package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	fmcli "fastmatcher.dev/internal/cli"
)

func main() {
	cmd := &cli.Command{
		Name:    "fastmatcher",
		Usage:   "multi-keyword directory search and extension build helper",
		Version: "1.0.0",
		Commands: []*cli.Command{
			fmcli.ScanCmd(),
			fmcli.DoctorCmd(),
			fmcli.BuildWheelCmd(),
		},
	}

	err := cmd.Run(context.Background(), os.Args)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
