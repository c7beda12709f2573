package catalog

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"mcat/archive"
	"mcat/config"
	"mcat/model"
)

// MaxDocumentSize limits size of a single catalog document.
const MaxDocumentSize = 32 << 20

// ErrNotFound is returned when source path does not exist.
var ErrNotFound = errors.New("input source was not found")

// Loader builds collection from catalog documents. Every document is parsed
// independently, a document which fails to build is logged and skipped
// unless loader is strict.
type Loader struct {
	cfg    *config.CatalogConfig
	log    *zap.Logger
	rpt    *config.Report
	strict bool

	coll *Collection
	errs error
}

type Option func(*Loader)

// WithReport makes loader store copies of failed documents in debug report.
func WithReport(rpt *config.Report) Option {
	return func(l *Loader) {
		l.rpt = rpt
	}
}

// WithStrict makes loader stop on the first failed document.
func WithStrict(strict bool) Option {
	return func(l *Loader) {
		l.strict = strict
	}
}

func NewLoader(cfg *config.CatalogConfig, log *zap.Logger, options ...Option) *Loader {
	l := &Loader{cfg: cfg, log: log}
	for _, opt := range options {
		opt(l)
	}
	return l
}

// Load is shortcut for NewLoader(cfg, log).Load(ctx, src).
func Load(ctx context.Context, src string, cfg *config.CatalogConfig, log *zap.Logger) (*Collection, error) {
	return NewLoader(cfg, log).Load(ctx, src)
}

// Load reads catalog documents from src which could be a file, a directory
// (processed recursively, symbolic links are not followed), a zip archive or
// a path inside zip archive ("archive.zip/dir/file.xml"). Returned
// collection has everything which was loaded successfully, returned error
// combines all per-document failures.
func (l *Loader) Load(ctx context.Context, src string) (*Collection, error) {
	l.coll, l.errs = NewCollection(), nil

	src = filepath.Clean(src)
	l.log.Debug("Loading catalog", zap.String("source", src))
	defer func(start time.Time) {
		l.log.Debug("Loading completed", zap.Int("contents", l.coll.Len()), zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	if err := l.process(ctx, src); err != nil && !errors.Is(err, errStop) {
		return l.coll, multierr.Append(l.errs, err)
	}
	return l.coll, l.errs
}

// process finds longest existing prefix of src and dispatches on its kind,
// anything left after it is treated as path inside archive.
func (l *Loader) process(ctx context.Context, src string) error {
	var head, tail string
	for head = src; len(head) != 0; head, tail = filepath.Split(head) {
		if err := ctx.Err(); err != nil {
			return err
		}
		head = strings.TrimSuffix(head, string(filepath.Separator))
		if len(head) == 0 {
			break
		}

		fi, err := os.Stat(head)
		if err != nil {
			// does not exist - probably path in archive
			continue
		}

		if fi.Mode().IsDir() {
			if len(tail) != 0 {
				return fmt.Errorf("%w: (%s) => (%s)", ErrNotFound, head, strings.TrimPrefix(src, head))
			}
			return l.processDir(ctx, head)
		}
		if !fi.Mode().IsRegular() {
			return fmt.Errorf("unexpected path mode for (%s)", head)
		}

		isArchive, err := isArchiveFile(head)
		if err != nil {
			return fmt.Errorf("unable to check archive type: %w", err)
		}
		if isArchive {
			inner := filepath.ToSlash(strings.TrimPrefix(strings.TrimPrefix(src, head), string(filepath.Separator)))
			return l.processArchive(ctx, head, inner)
		}
		if len(tail) != 0 {
			return fmt.Errorf("%w: (%s) is not an archive", ErrNotFound, head)
		}

		isCatalog, err := isCatalogFile(head)
		if err != nil {
			return fmt.Errorf("unable to check file type: %w", err)
		}
		if !isCatalog {
			return fmt.Errorf("input was not recognized as catalog document (%s)", head)
		}
		return l.processFile(head)
	}
	return fmt.Errorf("%w (%s)", ErrNotFound, src)
}

var errStop = errors.New("stop requested")

func (l *Loader) processDir(ctx context.Context, dir string) error {
	count := 0
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err != nil {
			l.log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		isArchive, err := isArchiveFile(path)
		if err != nil {
			l.log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			return nil
		}
		if isArchive {
			count++
			return l.processArchive(ctx, path, "")
		}

		if !l.cfg.HasExtension(path) {
			return nil
		}
		isCatalog, err := isCatalogFile(path)
		if err != nil {
			l.log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			return nil
		}
		if !isCatalog {
			l.log.Debug("Skipping file, not recognized as catalog document", zap.String("file", path))
			return nil
		}
		count++
		return l.processFile(path)
	})
	if err == nil && count == 0 {
		l.log.Debug("Nothing to process", zap.String("dir", dir))
	}
	return err
}

func (l *Loader) processArchive(ctx context.Context, path, prefix string) error {
	count := 0
	err := archive.Walk(path, prefix, func(arc string, f *zip.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !l.cfg.HasExtension(f.Name) {
			return nil
		}
		source := arc + "/" + f.Name

		data, err := archive.ReadEntry(f, MaxDocumentSize)
		if err != nil {
			return l.failed(source, nil, fmt.Errorf("unable to read from archive: %w", err))
		}
		if !isCatalogData(data) {
			l.log.Debug("Skipping file, not recognized as catalog document", zap.String("archive", arc), zap.String("file", f.Name))
			return nil
		}
		count++
		return l.processData(data, source)
	})
	switch {
	case err == nil:
	case errors.Is(err, errStop), ctx.Err() != nil:
		return err
	default:
		// unreadable archive is one more failed source, loading goes on
		return l.failed(path, nil, fmt.Errorf("unable to process archive: %w", err))
	}
	if count == 0 {
		l.log.Debug("Nothing to process", zap.String("archive", path), zap.String("prefix", prefix))
	}
	return nil
}

func (l *Loader) processFile(path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		return l.failed(path, nil, err)
	}
	if fi.Size() > MaxDocumentSize {
		return l.failed(path, nil, fmt.Errorf("document is too large (%d bytes)", fi.Size()))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return l.failed(path, nil, err)
	}
	return l.processData(data, path)
}

// processData builds single document and adds its contents to collection.
func (l *Loader) processData(data []byte, source string) (rerr error) {
	log := l.log.With(zap.String("source", source))
	defer func() {
		if r := recover(); r != nil {
			log.Error("Document processing ended with panic", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
			rerr = l.failed(source, data, fmt.Errorf("panic: %v", r))
		}
	}()

	doc, err := model.ReadDocument(data)
	if err != nil {
		return l.failed(source, data, err)
	}
	lib, err := model.ParseXML(doc, log)
	if err != nil {
		return l.failed(source, data, err)
	}

	if errs := l.coll.AddLibrary(lib, source); len(errs) > 0 {
		return l.failed(source, nil, multierr.Combine(errs...))
	}
	log.Debug("Document loaded", zap.Int("media", len(lib.Media)), zap.Int("contents", len(lib.Contents())))
	return nil
}

// failed records document failure. It returns non nil only when loading
// must stop.
func (l *Loader) failed(source string, data []byte, err error) error {
	err = fmt.Errorf("%s: %w", source, err)
	l.log.Error("Unable to load document", zap.String("source", source), zap.Error(err))
	l.errs = multierr.Append(l.errs, err)

	if l.rpt != nil {
		name := "failed/" + filepath.ToSlash(strings.TrimLeft(source, `/\`))
		if data != nil {
			l.rpt.StoreData(name, data)
		} else if er := l.rpt.StoreCopy(name, source); er != nil {
			l.log.Debug("Unable to store failed document in report", zap.String("source", source), zap.Error(er))
		}
	}
	if l.strict {
		return errStop
	}
	return nil
}
