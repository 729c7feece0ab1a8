package convert

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/encoding/ianaindex"

	"fx2tw/state"
)

// DocumentResult is outcome of a single document conversion. Path is
// relative to the processed root.
type DocumentResult struct {
	Path  string
	Stats Stats
	Err   error
}

// job is a single document to convert: read from src, write to dst.
type job struct {
	rel, src, dst string
}

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("convert")

	args := cmd.Args().Slice()
	src := cmd.String("source")
	if len(src) == 0 && len(args) > 0 {
		src, args = args[0], args[1:]
	}
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	if src, err = filepath.Abs(src); err != nil {
		return err
	}

	dst := cmd.String("output")
	if len(dst) == 0 && len(args) > 0 {
		dst, args = args[0], args[1:]
	}
	if len(dst) > 0 {
		if dst, err = filepath.Abs(dst); err != nil {
			return err
		}
	}
	if len(args) > 0 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", args))
	}

	env.Overwrite, env.DryRun = cmd.Bool("overwrite"), cmd.Bool("dry-run")
	env.Workers = int(cmd.Int("workers"))

	if cp := cmd.String("encoding"); len(cp) > 0 {
		env.Encoding, err = ianaindex.IANA.Encoding(cp)
		if err != nil || env.Encoding == nil {
			log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", cp), zap.Error(err))
			env.Encoding = nil
		} else {
			n, _ := ianaindex.IANA.Name(env.Encoding)
			log.Debug("Forcing input encoding", zap.String("charset", n))
		}
	}
	if err := env.Prepare(&env.Cfg.Conversion, cmd.String("scope")); err != nil {
		return err
	}

	log.Info("Processing starting",
		zap.String("source", src), zap.String("destination", dst),
		zap.Stringer("scope", env.Registry.Scope()), zap.Int("workers", env.Workers), zap.Bool("dry-run", env.DryRun))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	_, _, err = process(ctx, src, dst, log)
	return err
}

// process handles the core conversion logic independently of CLI framework.
// Source may be a single file or a directory tree. When destination is given
// directory tree is copied there first and converted in place, a single file
// is written to destination. Without destination source is converted in
// place.
func process(ctx context.Context, src, dst string, log *zap.Logger) (Stats, []DocumentResult, error) {
	env := state.EnvFromContext(ctx)

	fi, err := os.Stat(src)
	if err != nil {
		return Stats{}, nil, fmt.Errorf("input source was not found (%s): %w", src, err)
	}

	var jobs []job
	switch {
	case fi.Mode().IsRegular():
		j := job{rel: filepath.Base(src), src: src, dst: src}
		if len(dst) > 0 {
			if j.dst, err = fileDestination(src, dst, env.Overwrite || env.DryRun); err != nil {
				return Stats{}, nil, err
			}
		}
		jobs = append(jobs, j)

	case fi.IsDir():
		root := src
		if len(dst) > 0 && !env.DryRun {
			if err := prepareDestination(src, dst, env.Overwrite, log); err != nil {
				return Stats{}, nil, err
			}
			root = dst
		}
		conv := env.Cfg.Conversion
		names, err := discover(root, conv.Include, conv.Exclude, log)
		if err != nil {
			return Stats{}, nil, err
		}
		if len(names) == 0 {
			log.Info("Nothing to process", zap.String("dir", root))
		}
		for _, name := range names {
			p := relPath(root, name)
			jobs = append(jobs, job{rel: name, src: p, dst: p})
		}

	default:
		return Stats{}, nil, fmt.Errorf("unexpected path mode for (%s)", src)
	}

	return processFiles(ctx, jobs, log)
}

// fileDestination returns output path for a single converted file. Directory
// destination receives file under its original name.
func fileDestination(src, dst string, overwrite bool) (string, error) {
	if fi, err := os.Stat(dst); err == nil && fi.IsDir() {
		dst = filepath.Join(dst, filepath.Base(src))
	}
	if dst == src {
		return dst, nil
	}
	if _, err := os.Stat(dst); err == nil {
		if !overwrite {
			return "", fmt.Errorf("output file already exists: %s", dst)
		}
	} else if !os.IsNotExist(err) {
		return "", err
	}
	return dst, nil
}

// processFiles converts documents concurrently. Failure of a single document
// does not stop the batch, all failures are reported together.
func processFiles(ctx context.Context, jobs []job, log *zap.Logger) (Stats, []DocumentResult, error) {
	env := state.EnvFromContext(ctx)

	var (
		total   counters
		results = make([]DocumentResult, len(jobs))
	)

	g := new(errgroup.Group)
	g.SetLimit(max(env.Workers, 1))
	for i, j := range jobs {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			st, err := processDocument(ctx, j, log)
			switch {
			case err != nil:
				st.Failed = 1
				log.Error("Unable to process file", zap.String("file", j.src), zap.Error(err))
			case st.Usages == 0:
				st.Skipped = 1
			default:
				st.Files = 1
			}
			results[i] = DocumentResult{Path: j.rel, Stats: st, Err: err}
			total.add(st)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return total.snapshot(), results, err
	}
	if err := ctx.Err(); err != nil {
		return total.snapshot(), results, err
	}

	st := total.snapshot()
	log.Info("Conversion summary", st.zap())

	var errs error
	for _, r := range results {
		if r.Err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", r.Path, r.Err))
		}
	}
	if errs != nil {
		return st, results, fmt.Errorf("%d of %d document(s) failed: %w", st.Failed, len(jobs), errs)
	}
	return st, results, nil
}

// processDocument converts single markup file. Panics are recovered so one
// broken document does not take the whole run down.
func processDocument(ctx context.Context, j job, log *zap.Logger) (st Stats, rerr error) {
	env := state.EnvFromContext(ctx)

	log.Debug("Conversion starting", zap.String("from", j.rel))
	defer func(start time.Time) {
		if r := recover(); r != nil {
			log.Error("Conversion ended with panic",
				zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.String("file", j.rel), zap.ByteString("stack", debug.Stack()))
			st, rerr = Stats{}, fmt.Errorf("conversion panic: %v", r)
		} else if rerr == nil {
			log.Debug("Conversion completed", zap.Duration("elapsed", time.Since(start)), zap.String("to", j.dst), st.zap())
		}
	}(time.Now())

	fi, err := os.Stat(j.src)
	if err != nil {
		return Stats{}, err
	}
	raw, err := os.ReadFile(j.src)
	if err != nil {
		return Stats{}, fmt.Errorf("unable to read document: %w", err)
	}

	out, st, err := ConvertDocument(raw, DocumentOptions{
		Registry:    env.Registry,
		Encoding:    env.Encoding,
		RestoreCase: env.Cfg.Conversion.RestoreCase,
	})
	if err != nil {
		return Stats{}, fmt.Errorf("unable to convert document: %w", err)
	}
	if st.Usages == 0 && j.src == j.dst {
		return st, nil
	}
	if st.Usages > 0 {
		env.Rpt.StoreData("original/"+j.rel, raw)
	}

	if env.DryRun {
		if st.Usages > 0 {
			log.Info("Document would be converted", zap.String("file", j.rel), st.zap())
		}
		return st, nil
	}
	if err := os.MkdirAll(filepath.Dir(j.dst), 0755); err != nil {
		return Stats{}, fmt.Errorf("unable to create output directory: %w", err)
	}
	if err := os.WriteFile(j.dst, out, fi.Mode().Perm()); err != nil {
		return Stats{}, fmt.Errorf("unable to write document: %w", err)
	}
	return st, nil
}
