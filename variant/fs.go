package variant

import (
	"os"
	"time"
)

// listFunscriptNames returns the plain file names (no directory component)
// of every entry in dir, for Classify/ClassifyCached callers that only have
// a path on disk rather than an already-enumerated file list.
func listFunscriptNames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// dirModTime reports dir's own modification time, the cheap invalidation
// signal ClassifyCached keys cached Plans on: it changes whenever an entry
// is added, removed, or renamed within it.
func dirModTime(dir string) (time.Time, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}
