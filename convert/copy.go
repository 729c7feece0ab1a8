package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// within reports whether path is dir itself or located under it.
func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// prepareDestination copies source tree to dst so conversion could be done in
// place there. Existing destination is only replaced when overwrite is set.
// Symbolic links are not supported by the copy.
func prepareDestination(src, dst string, overwrite bool, log *zap.Logger) error {
	if within(src, dst) || within(dst, src) {
		return fmt.Errorf("source (%s) and destination (%s) must not be nested", src, dst)
	}

	if _, err := os.Stat(dst); err == nil {
		if !overwrite {
			return fmt.Errorf("destination already exists: %s", dst)
		}
		log.Warn("Removing existing destination", zap.String("dir", dst))
		if err := os.RemoveAll(dst); err != nil {
			return fmt.Errorf("unable to clean destination: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("unable to create destination: %w", err)
	}
	if err := os.CopyFS(dst, os.DirFS(src)); err != nil {
		return fmt.Errorf("unable to copy source tree: %w", err)
	}
	log.Debug("Source tree copied", zap.String("from", src), zap.String("to", dst))
	return nil
}
