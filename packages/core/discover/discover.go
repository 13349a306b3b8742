// Package discover expands the feature path arguments of a run into an
// ordered list of feature files. The ordering is load-bearing: feature
// and scenario identifiers are assigned in discovery order, so directory
// expansion must be deterministic across runs and platforms.
package discover

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FeatureFileSuffix is the extension collected when expanding
// directories. Plain file arguments are taken as-is regardless of it.
const FeatureFileSuffix = ".feature"

// ErrNoFeatureFiles signals that discovery finished without finding
// anything to run. It is a clean outcome, not a crash: the caller stops
// the run before loading or parsing anything.
var ErrNoFeatureFiles = errors.New("no feature files found")

// PathNotFoundError is fatal: a path the user named does not exist.
type PathNotFoundError struct {
	Path string
}

func (e *PathNotFoundError) Error() string {
	return fmt.Sprintf("feature path not found: %s", e.Path)
}

// FeatureFiles expands the given paths, in argument order, into feature
// file paths. A missing path aborts immediately; later arguments are
// not touched. Directories are walked recursively in lexical order.
// No deduplication is performed.
func FeatureFiles(paths []string) ([]string, error) {
	var files []string

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, &PathNotFoundError{Path: path}
		}

		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		// WalkDir visits entries in lexical order, which keeps the
		// expansion reproducible independent of the filesystem.
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(d.Name(), FeatureFileSuffix) {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	if len(files) == 0 {
		return nil, ErrNoFeatureFiles
	}

	return files, nil
}
