package corpus

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/abaevdict/internal/domain"
	"github.com/heartmarshall/abaevdict/internal/extract"
	"github.com/heartmarshall/abaevdict/internal/markup"
)

// Discover lists the files in dir matching pattern, sorted by name.
// Files whose name starts with excludePrefix are left out.
func Discover(dir, pattern, excludePrefix string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("open corpus directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", pattern, err)
	}

	paths := make([]string, 0, len(matches))
	for _, path := range matches {
		name := filepath.Base(path)
		if excludePrefix != "" && strings.HasPrefix(name, excludePrefix) {
			continue
		}
		if fi, err := os.Stat(path); err != nil || fi.IsDir() {
			continue
		}
		paths = append(paths, path)
	}
	slices.Sort(paths)
	return paths, nil
}

// Result is the outcome of extracting one document.
type Result struct {
	Path   string
	Doc    string
	Tables *domain.Tables
	Stats  extract.Stats
	Err    error
}

// ExtractAll parses and extracts every path on at most workers goroutines.
// Results keep the order of paths. With failFast the first document error
// cancels the remaining work and is returned; otherwise errors are recorded
// per result.
func ExtractAll(ctx context.Context, paths []string, opts extract.Options, workers int, failFast bool) ([]Result, error) {
	if workers <= 0 {
		workers = 1
	}

	results := make([]Result, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := extractFile(path, opts)
			results[i] = res
			if res.Err != nil && failFast {
				return res.Err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func extractFile(path string, opts extract.Options) Result {
	res := Result{Path: path, Doc: filepath.Base(path)}

	doc, err := markup.ParseFile(path)
	if err != nil {
		res.Err = err
		return res
	}

	res.Tables, res.Stats, res.Err = extract.Document(doc, opts)
	return res
}
