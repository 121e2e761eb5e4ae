package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"improver/internal/app"
	"improver/internal/config"
)

func main() {
	ui := UI{Out: os.Stdout, Err: os.Stderr}
	if err := newApp(ui).Run(os.Args); err != nil {
		fmt.Fprintf(ui.Err, "improve: %v\n", err)
		os.Exit(1)
	}
}

func newApp(ui UI) *cli.App {
	engineFlags := []cli.Flag{
		&cli.StringFlag{Name: "lexicon", Usage: "lexicon file (json or yaml)", EnvVars: []string{"IMPROVER_LEXICON"}},
		&cli.StringFlag{Name: "dictionary", Usage: "word frequency dictionary for spelling correction", EnvVars: []string{"IMPROVER_DICTIONARY"}},
		&cli.StringFlag{Name: "redis-addr", Usage: "Redis address of the custom dictionary", EnvVars: []string{"IMPROVER_REDIS_ADDR"}},
		&cli.StringFlag{Name: "languagetool-url", Usage: "LanguageTool server URL", EnvVars: []string{"IMPROVER_LANGUAGETOOL_URL"}},
		&cli.IntFlag{Name: "long-sentence-words", Value: 20, Usage: "sentences with more words are flagged"},
		&cli.StringSliceFlag{Name: "readability-metrics", Value: cli.NewStringSlice("ease", "complexity"), Usage: "ease, grade, fog, complexity"},
		&cli.BoolFlag{Name: "no-correction", Usage: "analyze the input as is"},
		&cli.StringFlag{Name: "log-level", Value: "warn", Usage: "debug, info, warn or error"},
	}

	return &cli.App{
		Name:      "improve",
		Usage:     "suggest and apply writing improvements to text files",
		ArgsUsage: "FILE...",
		Writer:    ui.Out,
		ErrWriter: ui.Err,
		Flags: append(engineFlags,
			&cli.IntFlag{Name: "workers", Aliases: []string{"w"}, Value: runtime.NumCPU(), Usage: "documents improved concurrently"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "write improved texts to this directory"},
			&cli.BoolFlag{Name: "json", Usage: "print one JSON result per file"},
			&cli.BoolFlag{Name: "progress", Usage: "show a progress bar"},
		),
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return errors.New("no input files")
			}
			a, logger, err := build(c)
			if err != nil {
				return err
			}
			defer a.Close()
			defer func() { _ = logger.Sync() }()

			return improveFiles(c.Context, a.Improver, c.Args().Slice(), BatchOptions{
				Workers:  c.Int("workers"),
				OutDir:   c.String("out"),
				JSON:     c.Bool("json"),
				Progress: c.Bool("progress"),
			}, ui)
		},
		Commands: []*cli.Command{
			{
				Name:      "apply",
				Usage:     "apply suggestion messages to a text file and print the result",
				ArgsUsage: "FILE",
				Flags: append(engineFlags,
					&cli.StringFlag{Name: "suggestions", Aliases: []string{"s"}, Required: true, Usage: "file with one suggestion message per line"},
				),
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return errors.New("expected exactly one input file")
					}
					text, err := os.ReadFile(c.Args().First())
					if err != nil {
						return err
					}
					msgs, err := readMessages(c.String("suggestions"))
					if err != nil {
						return err
					}
					a, logger, err := build(c)
					if err != nil {
						return err
					}
					defer a.Close()
					defer func() { _ = logger.Sync() }()

					_, err = fmt.Fprint(ui.Out, a.Improver.Apply(string(text), msgs))
					return err
				},
			},
		},
	}
}

// build maps the flags onto the service configuration and wires the
// components from it.
func build(c *cli.Context) (*app.App, *zap.Logger, error) {
	cfg := config.DefaultConfig()
	cfg.LexiconPath = c.String("lexicon")
	cfg.DictionaryPath = c.String("dictionary")
	cfg.RedisAddr = c.String("redis-addr")
	cfg.LanguageToolURL = c.String("languagetool-url")
	cfg.LongSentenceWords = c.Int("long-sentence-words")
	cfg.ReadabilityMetrics = c.StringSlice("readability-metrics")
	cfg.NoCorrection = c.Bool("no-correction")
	cfg.LogLevel = c.String("log-level")
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid flags: %w", err)
	}

	logger, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	a, err := app.New(c.Context, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return a, logger, nil
}
