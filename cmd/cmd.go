package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/chsjkfqwjk/pixel-image-generator/canvas"
	"github.com/chsjkfqwjk/pixel-image-generator/engine"
)

// Execute runs the pixgen CLI with the given version string.
func Execute(version string) {
	cmd := &cli.Command{
		Name:                   "pixgen",
		Usage:                  "Render pixel images from line-oriented description files",
		Version:                version,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (trace, debug, info, warn, error)",
				Value: "info",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Also write logs to this file",
			},
			&cli.BoolFlag{
				Name:    "no-color",
				Aliases: []string{"C"},
				Usage:   "Disable ANSI color output",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML config file",
			},
		},
		// Allow `pixgen image.pix` as shorthand for `pixgen render image.pix`
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() > 0 {
				return renderAction(ctx, cmd)
			}
			return cli.ShowAppHelp(cmd)
		},
		Commands: []*cli.Command{
			{
				Name:      "render",
				Usage:     "Render description files to PNG images",
				ArgsUsage: "<file.pix> [file.pix...]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output-dir",
						Aliases: []string{"o"},
						Usage:   "Directory for rendered PNGs",
					},
				},
				Action: renderAction,
			},
			{
				Name:      "check",
				Usage:     "Process description files without writing images",
				ArgsUsage: "<file.pix> [file.pix...]",
				Action:    checkAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// setup configures logging and loads the config file. It runs at the
// start of each command action so the global flags apply everywhere.
func setup(cmd *cli.Command) (engine.Config, error) {
	cfg := engine.DefaultConfig()
	if path := cmd.String("config"); path != "" {
		var err error
		cfg, err = engine.LoadConfig(path)
		if err != nil {
			return cfg, err
		}
	}

	levelName := cmd.String("log-level")
	if cfg.LogLevel != "" && !cmd.IsSet("log-level") {
		levelName = cfg.LogLevel
	}
	level, err := zerolog.ParseLevel(strings.ToLower(levelName))
	if err != nil {
		return cfg, fmt.Errorf("bad log level %q: %w", levelName, err)
	}

	noColor := cmd.Bool("no-color") || os.Getenv("NO_COLOR") != "" ||
		!term.IsTerminal(int(os.Stderr.Fd()))
	console := zerolog.ConsoleWriter{Out: os.Stderr, NoColor: noColor}

	var w io.Writer = console
	if path := cmd.String("log-file"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return cfg, fmt.Errorf("opening log file: %w", err)
		}
		w = zerolog.MultiLevelWriter(console, f)
	}
	log.Logger = zerolog.New(w).Level(level).With().Timestamp().Logger()
	return cfg, nil
}

func renderAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 1 {
		return fmt.Errorf("usage: pixgen render <file.pix> [file.pix...]")
	}
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}
	outDir := cfg.OutputDir
	if dir := cmd.String("output-dir"); dir != "" {
		outDir = dir
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	eng := newEngine(cfg)
	for _, path := range cmd.Args().Slice() {
		img, err := eng.ProcessFile(path)
		if err != nil {
			return err
		}
		out := filepath.Join(outDir, pngName(path))
		if err := writePNG(img, out); err != nil {
			return err
		}
		st := eng.Stats()
		log.Info().Str("output", out).
			Int("success", st.Success).Int("failed", st.Failed).
			Msg("image rendered")
	}
	return nil
}

func checkAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 1 {
		return fmt.Errorf("usage: pixgen check <file.pix> [file.pix...]")
	}
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}
	eng := newEngine(cfg)
	exitErr := false
	for _, path := range cmd.Args().Slice() {
		if _, err := eng.ProcessFile(path); err != nil {
			log.Error().Err(err).Str("file", path).Msg("check failed")
			exitErr = true
			continue
		}
		st := eng.Stats()
		for _, f := range st.Failures {
			fmt.Fprintf(os.Stderr, "%s:%d: %s (%s)\n", path, f.Line, f.Reason, f.Text)
		}
		if st.Failed > 0 {
			exitErr = true
		}
		fmt.Fprintf(os.Stderr, "%s: %d instructions, %d ok, %d failed\n",
			path, st.Valid, st.Success, st.Failed)
	}
	if exitErr {
		os.Exit(1)
	}
	return nil
}

func newEngine(cfg engine.Config) *engine.Engine {
	if cfg.Seed != 0 {
		return engine.NewSeeded(cfg.Seed)
	}
	return engine.New()
}

func pngName(path string) string {
	base := filepath.Base(path)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	return base + ".png"
}

func writePNG(img *canvas.Canvas, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := img.EncodePNG(f); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}
