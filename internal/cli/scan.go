package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"

	"fastmatcher.dev/internal/matcher"
	"fastmatcher.dev/internal/models"
	"fastmatcher.dev/internal/scanner"
	"fastmatcher.dev/internal/utils"
)

// ScanCmd builds the synchronous directory scan command.
func ScanCmd() *cli.Command {
	cmd := &cli.Command{
		Name:  "scan",
		Usage: "scan a directory tree for keyword matches",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "dir",
				Usage:    "directory to scan",
				Required: true,
			},
			&cli.StringSliceFlag{
				Name:    "keyword",
				Aliases: []string{"k"},
				Usage:   "keyword to match, repeatable",
			},
			&cli.BoolFlag{
				Name:  "ignore-case",
				Usage: "ASCII case-insensitive matching",
				Value: true,
			},
			&cli.IntFlag{
				Name:  "context",
				Usage: "context lines around each match (0-10)",
				Value: models.DefaultContextLines,
			},
			&cli.IntFlag{
				Name:  "batch-size",
				Usage: "files per scan batch",
				Value: models.DefaultBatchSize,
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "concurrent file scanners (0 = NumCPU)",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "emit matches as JSON on stdout",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return scanMain(ctx, cmd)
		},
	}

	return cmd
}

func scanMain(ctx context.Context, cmd *cli.Command) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})

	dir := cmd.String("dir")
	if err := utils.ValidateDirectory(dir); err != nil {
		return err
	}

	keywords := utils.CleanKeywords(cmd.StringSlice("keyword"))
	if err := utils.ValidateKeywords(keywords); err != nil {
		return err
	}

	eng, err := matcher.New(keywords, matcher.Options{
		IgnoreCase: cmd.Bool("ignore-case"),
		Context:    int(cmd.Int("context")),
	})
	if err != nil {
		return err
	}

	start := time.Now()

	files, err := scanner.CollectFiles(ctx, dir)
	if err != nil {
		return fmt.Errorf("collecting files: %w", err)
	}
	logger.Info("collected files", "dir", dir, "count", len(files))

	var totalBytes uint64
	for _, f := range files {
		if info, err := os.Stat(f); err == nil {
			totalBytes += uint64(info.Size())
		}
	}

	s := scanner.New(eng, int(cmd.Int("workers")), slog.New(logger))

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetDescription("scanning"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	var matches []models.FileMatch
	for _, batch := range scanner.Batch(files, int(cmd.Int("batch-size"))) {
		batchMatches, err := s.ScanBatch(ctx, batch)
		if err != nil {
			return err
		}
		matches = append(matches, batchMatches...)
		_ = bar.Add(len(batch))
	}
	_ = bar.Finish()

	if cmd.Bool("json") {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(matches); err != nil {
			return err
		}
	} else {
		printMatches(matches)
	}

	logger.Info("scan finished",
		"files", len(files),
		"matching_lines", len(matches),
		"scanned", humanize.Bytes(totalBytes),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)

	return nil
}

func printMatches(matches []models.FileMatch) {
	for _, m := range matches {
		fmt.Printf("%s:%d [%s]\n", m.File, m.LineNo, strings.Join(m.Keywords, ", "))
		for _, line := range m.Lines {
			fmt.Printf("    %s\n", line)
		}
	}
}
