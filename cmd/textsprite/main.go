package main

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/textsprite"
	"github.com/bodgit/textsprite/bundle"
	spriteimage "github.com/bodgit/textsprite/image"
	"github.com/bodgit/textsprite/internal/config"
	"github.com/bodgit/textsprite/internal/logger"
	"github.com/bodgit/textsprite/pattern"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/image/bmp"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

type env struct {
	cfg      *config.Config
	logger   *zap.Logger
	cache    *textsprite.Cache
	compiler *textsprite.Compiler
}

func (e *env) Close() {
	if e.cache != nil {
		e.cache.Close()
	}
	_ = e.logger.Sync()
}

// setup loads the config with command line overrides applied on top
func setup(c *cli.Context) (*env, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}

	if c.Bool("verbose") {
		cfg.Logging.Level = "debug"
	}
	if c.IsSet("log-file") {
		cfg.Logging.File = c.String("log-file")
	}
	if c.IsSet("cache") {
		cfg.Cache.Path = c.String("cache")
	}
	if c.IsSet("workers") {
		cfg.Compile.Workers = c.Int("workers")
	}

	e := &env{
		cfg: cfg,
		logger: logger.New(logger.Options{
			Level: cfg.Logging.Level,
			File:  cfg.Logging.File,
		}),
	}

	if cfg.Cache.Path != "" {
		if e.cache, err = textsprite.OpenCache(cfg.Cache.Path); err != nil {
			return nil, err
		}
	}

	e.compiler = textsprite.New(e.cache, e.logger)
	e.compiler.Workers = cfg.Compile.Workers
	e.compiler.Extension = cfg.Compile.Extension

	return e, nil
}

func create(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	return os.Create(path)
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

func scan(c *cli.Context, e *env) ([]textsprite.Result, error) {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}
	return e.compiler.Scan(c.Args().First())
}

func check(c *cli.Context, e *env) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	failed := 0
	for _, file := range c.Args().Slice() {
		src, err := textsprite.ReadSource(filepath.Dir(file), file)
		if err != nil {
			return err
		}

		l, err := pattern.Analyze(src.Text)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", file, err)
			failed++
			continue
		}

		glyphs := make([]string, len(l.Glyphs))
		for i, r := range l.Glyphs {
			glyphs[i] = fmt.Sprintf("%d=%q", i, r)
		}
		fmt.Printf("%s: %dx%d %s, %d bytes, glyphs %s\n", file, l.Width, l.Height, l.BPP, l.Capacity, strings.Join(glyphs, " "))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d sprites failed", failed, c.NArg())
	}
	return nil
}

func compile(c *cli.Context, e *env) error {
	results, err := scan(c, e)
	if err != nil {
		return err
	}

	pkg := e.cfg.Codegen.Package
	if c.IsSet("package") {
		pkg = c.String("package")
	}

	// Generate into memory first so a failure leaves no half written file
	var b bytes.Buffer
	if err := textsprite.Generate(&b, pkg, results); err != nil {
		return err
	}

	w, err := create(c.String("output"))
	if err != nil {
		return err
	}
	defer w.Close()

	_, err = w.Write(b.Bytes())
	return err
}

func bundleCmd(c *cli.Context, e *env) error {
	results, err := scan(c, e)
	if err != nil {
		return err
	}

	b, err := textsprite.Bundle(results)
	if err != nil {
		return err
	}

	output := c.String("output")
	if err := b.WriteFile(output); err != nil {
		return err
	}

	e.logger.Info("wrote bundle", zap.String("file", output), zap.Int("sprites", b.Length()))
	return nil
}

func render(c *cli.Context, e *env) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}
	file := c.Args().First()

	src, err := textsprite.ReadSource(filepath.Dir(file), file)
	if err != nil {
		return err
	}

	s, err := e.compiler.Compile(src)
	if err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}

	p, err := e.cfg.Render.Colors()
	if err != nil {
		return err
	}

	m, err := spriteimage.Decode(s, p)
	if err != nil {
		return err
	}

	scale := e.cfg.Render.Scale
	if c.IsSet("scale") {
		scale = c.Int("scale")
	}
	if m, err = spriteimage.Scale(m, scale); err != nil {
		return err
	}

	format := c.String("format")
	output := c.String("output")
	if output == "" {
		output = strings.TrimSuffix(file, filepath.Ext(file)) + "." + format
	}

	w, err := create(output)
	if err != nil {
		return err
	}
	defer w.Close()

	switch format {
	case "png":
		return png.Encode(w, m)
	case "bmp":
		return bmp.Encode(w, m)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func importCmd(c *cli.Context, e *env) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	f, err := os.Open(c.Args().First())
	if err != nil {
		return err
	}
	defer f.Close()

	m, _, err := image.Decode(f)
	if err != nil {
		return err
	}

	glyphs := e.cfg.Import.Glyphs
	if c.IsSet("glyphs") {
		glyphs = c.String("glyphs")
	}
	indent := e.cfg.Import.Indent
	if c.IsSet("indent") {
		indent = c.String("indent")
	}

	var b bytes.Buffer
	if err := spriteimage.Encode(&b, m, glyphs, indent); err != nil {
		return err
	}

	w, err := create(c.String("output"))
	if err != nil {
		return err
	}
	defer w.Close()

	// Files start directly with the first row
	_, err = w.Write(bytes.TrimPrefix(b.Bytes(), []byte("\n")))
	return err
}

func action(fn func(*cli.Context, *env) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		e, err := setup(c)
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		defer e.Close()

		if err := fn(c, e); err != nil {
			return cli.NewExitError(err, 1)
		}
		return nil
	}
}

func main() {
	app := cli.NewApp()

	app.Name = "textsprite"
	app.Usage = "WASM-4 text sprite compiler"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			EnvVars: []string{"TEXTSPRITE_CONFIG"},
			Usage:   "path to config file",
		},
		&cli.StringFlag{
			Name:    "cache",
			EnvVars: []string{"TEXTSPRITE_CACHE"},
			Usage:   "path to compile cache database",
		},
		&cli.IntFlag{
			Name:  "workers",
			Usage: "number of sprites compiled concurrently",
		},
		&cli.StringFlag{
			Name:  "log-file",
			Usage: "also log to this file",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:      "check",
			Usage:     "Validate sprite files and print their layout",
			ArgsUsage: "FILE...",
			Action:    action(check),
		},
		{
			Name:      "compile",
			Usage:     "Compile a directory of sprites to Go source",
			ArgsUsage: "DIRECTORY",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Usage:   "write source to `FILE` instead of stdout",
				},
				&cli.StringFlag{
					Name:  "package",
					Usage: "package name of the generated source",
				},
			},
			Action: action(compile),
		},
		{
			Name:      "bundle",
			Usage:     "Compile a directory of sprites to a binary bundle",
			ArgsUsage: "DIRECTORY",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Value:   bundle.Filename,
					Usage:   "write bundle to `FILE`",
				},
			},
			Action: action(bundleCmd),
		},
		{
			Name:      "render",
			Usage:     "Render a sprite to an image for previewing",
			ArgsUsage: "FILE",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Usage:   "write image to `FILE`",
				},
				&cli.StringFlag{
					Name:  "format",
					Value: "png",
					Usage: "image format, png or bmp",
				},
				&cli.IntFlag{
					Name:  "scale",
					Usage: "integer zoom factor",
				},
			},
			Action: action(render),
		},
		{
			Name:      "import",
			Usage:     "Convert an image to sprite text",
			ArgsUsage: "IMAGE",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Usage:   "write sprite text to `FILE` instead of stdout",
				},
				&cli.StringFlag{
					Name:  "glyphs",
					Usage: "glyphs to use, in palette index order",
				},
				&cli.StringFlag{
					Name:  "indent",
					Usage: "prefix for every row",
				},
			},
			Action: action(importCmd),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
