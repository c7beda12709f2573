// Package commands implements command line actions on top of catalog
// loader.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"mcat/catalog"
	"mcat/index"
	"mcat/model"
	"mcat/state"
)

// load reads catalog from the first command argument.
func load(ctx context.Context, cmd *cli.Command, log *zap.Logger) (*catalog.Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	env := state.EnvFromContext(ctx)

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return nil, errors.New("no input source has been specified")
	}
	src, err := filepath.Abs(src)
	if err != nil {
		return nil, err
	}

	log.Info("Loading starting", zap.String("source", src))
	defer func(start time.Time) {
		log.Info("Loading completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	loader := catalog.NewLoader(&env.Cfg.Catalog, log, catalog.WithReport(env.Rpt), catalog.WithStrict(env.Strict))
	coll, err := loader.Load(ctx, src)
	if err != nil {
		if env.Strict || coll.Len() == 0 {
			return nil, err
		}
		// failures were already logged one by one
		log.Warn("Some documents were not loaded", zap.Int("loaded", coll.Len()))
	}
	return coll, nil
}

// output opens destination named by argument at position n or stdout.
func output(cmd *cli.Command, n int) (io.Writer, func() error, error) {
	fname := cmd.Args().Get(n)
	if len(fname) == 0 {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(fname)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to create destination file '%s': %w", fname, err)
	}
	return f, f.Close, nil
}

// Dump prints parsed tree of every loaded media.
func Dump(ctx context.Context, cmd *cli.Command) (err error) {
	log := state.EnvFromContext(ctx).Log.Named("dump")

	coll, err := load(ctx, cmd, log)
	if err != nil {
		return err
	}
	out, closer, err := output(cmd, 1)
	if err != nil {
		return err
	}
	defer func() {
		if er := closer(); er != nil && err == nil {
			err = er
		}
	}()

	for _, m := range coll.Media() {
		if _, err := io.WriteString(out, m.String()); err != nil {
			return fmt.Errorf("unable to write dump: %w", err)
		}
	}
	return nil
}

// List prints loaded contents in sort order as a table.
func List(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)
	log := env.Log.Named("list")

	coll, err := load(ctx, cmd, log)
	if err != nil {
		return err
	}
	out, closer, err := output(cmd, 1)
	if err != nil {
		return err
	}
	defer func() {
		if er := closer(); er != nil && err == nil {
			err = er
		}
	}()

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tKIND\tTITLE\tRUNTIME\tNAME")
	for _, e := range coll.Sorted() {
		name, err := e.Name(&env.Cfg.Catalog)
		if err != nil {
			return fmt.Errorf("unable to build name for %s: %w", e.Key(), err)
		}
		w := e.Content.Base()
		runtime := "-"
		if d := e.Content.Runtime(); d > 0 {
			runtime = model.FormatDuration(d)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", w.DisplayKey(), e.Content.Kind(), w.Title.Raw, runtime, name)
	}
	return tw.Flush()
}

// Index stores loaded contents in index database.
func Index(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	log := env.Log.Named("index")

	coll, err := load(ctx, cmd, log)
	if err != nil {
		return err
	}

	path := cmd.Args().Get(1)
	if len(path) == 0 {
		path = env.Cfg.Catalog.Index.Path
	}
	store, err := index.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Replace(index.Records(coll)); err != nil {
		return fmt.Errorf("unable to update index: %w", err)
	}
	counts, err := store.Count()
	if err != nil {
		return err
	}
	log.Info("Index updated", zap.String("path", path),
		zap.Int("movies", counts[model.KindMovie]), zap.Int("albums", counts[model.KindAlbum]))
	return nil
}
