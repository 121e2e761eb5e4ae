package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gosuri/uiprogress"
	"golang.org/x/sync/errgroup"

	"improver/internal/pipeline"
)

type UI struct {
	Out io.Writer
	Err io.Writer
}

type Improver interface {
	Improve(ctx context.Context, text string) pipeline.Result
}

type BatchOptions struct {
	Workers  int
	OutDir   string // improved texts are written here when set
	JSON     bool   // one JSON result per line instead of the text report
	Progress bool
}

type fileResult struct {
	File string `json:"file"`
	pipeline.Result
}

// improveFiles improves every file with up to opts.Workers documents in
// flight. Results are reported in input order once all are done; a file
// that cannot be read or written fails the batch.
func improveFiles(ctx context.Context, im Improver, files []string, opts BatchOptions, ui UI) error {
	if opts.OutDir != "" {
		if err := os.MkdirAll(opts.OutDir, 0o750); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	var bar *uiprogress.Bar
	if opts.Progress {
		uiprogress.Start()
		defer uiprogress.Stop()
		bar = uiprogress.AddBar(len(files))
		bar.AppendCompleted()
		bar.PrependElapsed()
	}

	results := make([]fileResult, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Workers, 1))
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			res := im.Improve(ctx, string(data))
			if opts.OutDir != "" {
				dst := filepath.Join(opts.OutDir, filepath.Base(path))
				if err := os.WriteFile(dst, []byte(res.Improved), 0o640); err != nil {
					return fmt.Errorf("write %s: %w", dst, err)
				}
			}
			results[i] = fileResult{File: path, Result: res}
			if bar != nil {
				bar.Incr()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if opts.JSON {
		enc := json.NewEncoder(ui.Out)
		for _, r := range results {
			if err := enc.Encode(r); err != nil {
				return err
			}
		}
		return nil
	}
	for _, r := range results {
		report(ui.Out, r)
	}
	return nil
}

func report(w io.Writer, r fileResult) {
	fmt.Fprintf(w, "%s: %d suggestion(s)\n", r.File, len(r.Suggestions))
	for _, msg := range r.Messages() {
		fmt.Fprintf(w, "  - %s\n", msg)
	}
}

// readMessages reads one suggestion message per line, skipping blank lines.
func readMessages(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var msgs []string
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			msgs = append(msgs, line)
		}
	}
	return msgs, nil
}
