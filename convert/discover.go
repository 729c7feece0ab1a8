package convert

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/h2non/filetype"
	"github.com/maruel/natural"
	"go.uber.org/zap"
)

// sniffLen is how much of file header filetype needs.
const sniffLen = 262

// discover returns slash separated paths relative to root of markup files
// matching any include pattern and none of exclude patterns, in natural
// order. Files recognized as binary are skipped.
func discover(root string, include, exclude []string, log *zap.Logger) ([]string, error) {
	fsys := os.DirFS(root)

	seen := make(map[string]struct{})
	var files []string
	for _, p := range include {
		matches, err := doublestar.Glob(fsys, p, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("bad include pattern %q: %w", p, err)
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}

			excluded, err := matchAny(exclude, m)
			if err != nil {
				return nil, err
			}
			if excluded {
				log.Debug("Skipping excluded file", zap.String("file", m))
				continue
			}
			binary, err := isBinary(fsys, m)
			if err != nil {
				log.Warn("Skipping file", zap.String("file", m), zap.Error(err))
				continue
			}
			if binary {
				log.Debug("Skipping file, not recognized as markup", zap.String("file", m))
				continue
			}
			files = append(files, m)
		}
	}
	sort.Sort(natural.StringSlice(files))
	return files, nil
}

func matchAny(patterns []string, name string) (bool, error) {
	for _, p := range patterns {
		ok, err := doublestar.Match(p, name)
		if err != nil {
			return false, fmt.Errorf("bad exclude pattern %q: %w", p, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func isBinary(fsys fs.FS, name string) (bool, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return false, err
	}
	defer f.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return false, err
	}
	if n == 0 {
		return false, nil
	}
	kind, err := filetype.Match(head[:n])
	if err != nil {
		return false, err
	}
	return kind != filetype.Unknown, nil
}

// relPath converts discovered name back to OS path under root.
func relPath(root, name string) string {
	return filepath.Join(root, filepath.FromSlash(name))
}
