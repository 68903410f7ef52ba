package textsprite

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/bodgit/textsprite/bitmap"
	"github.com/bodgit/textsprite/bundle"
	"github.com/bodgit/textsprite/codegen"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Result is one successfully compiled source.
type Result struct {
	Source *Source
	Sprite *bitmap.Sprite
}

func (c *Compiler) findFiles(ctx context.Context, base string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, editors leave swap files and the like lying around
			if file != base && info.Name()[0] == '.' {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if !info.Mode().IsRegular() || filepath.Ext(file) != c.Extension {
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

type results struct {
	sync.Mutex
	list []Result
}

func (r *results) add(src *Source, s *bitmap.Sprite) {
	r.Lock()
	defer r.Unlock()
	r.list = append(r.list, Result{Source: src, Sprite: s})
}

func (c *Compiler) compileWorker(base string, in <-chan string, r *results) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)

		// Keep going after a bad sprite so every failure gets reported
		var errs error
		for file := range in {
			src, err := ReadSource(base, file)
			if err != nil {
				errs = multierr.Append(errs, err)
				continue
			}

			s, err := c.Compile(src)
			if err != nil {
				c.logger.Warn("failed", zap.String("file", file), zap.Error(err))
				errs = multierr.Append(errs, fmt.Errorf("%s: %w", file, err))
				continue
			}

			r.add(src, s)
		}
		errc <- errs
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	var err error
	for e := range mergeErrors(errs...) {
		err = multierr.Append(err, e)
	}
	return err
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Scan compiles every source under path concurrently. Results are sorted
// by name. If any source fails nothing is returned and the error lists
// every failure.
func (c *Compiler) Scan(path string) ([]Result, error) {
	dir, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	files, errc, err := c.findFiles(ctx, dir)
	if err != nil {
		return nil, err
	}
	errcList = append(errcList, errc)

	workers := c.Workers
	if workers < 1 {
		workers = 1
	}

	r := new(results)
	for i := 0; i < workers; i++ {
		errc, err := c.compileWorker(dir, files, r)
		if err != nil {
			return nil, err
		}
		errcList = append(errcList, errc)
	}

	if err := waitForPipeline(errcList...); err != nil {
		return nil, err
	}

	sort.Slice(r.list, func(i, j int) bool { return r.list[i].Source.Name < r.list[j].Source.Name })

	c.logger.Info("scan complete", zap.String("dir", dir), zap.Int("sprites", len(r.list)))

	return r.list, nil
}

// Bundle collects results into a bundle keyed by source name.
func Bundle(results []Result) (*bundle.Bundle, error) {
	b := bundle.New()
	for _, r := range results {
		if err := b.Set(r.Source.Name, r.Sprite); err != nil {
			return nil, fmt.Errorf("%s: %w", r.Source.Name, err)
		}
	}
	return b, nil
}

// Generate writes results to w as Go source in package pkg.
func Generate(w io.Writer, pkg string, results []Result) error {
	entries := make([]codegen.Entry, 0, len(results))
	for _, r := range results {
		entries = append(entries, codegen.Entry{
			Name:   r.Source.Name,
			Source: filepath.Base(r.Source.Path),
			Sprite: r.Sprite,
		})
	}
	return codegen.Generate(w, pkg, entries)
}
