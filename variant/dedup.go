package variant

import (
	"time"

	"golang.org/x/sync/singleflight"
)

var classifyGroup singleflight.Group

// ClassifyDeduped is ClassifyCached with concurrent calls for the same
// (dir, base) collapsed into a single underlying classification. Useful
// when several workers scan the same directory at once.
func ClassifyDeduped(cache *Cache, dir, base string, dirModTime time.Time, fileNames []string) (Plan, error) {
	key := dir + "\x00" + base
	v, err, _ := classifyGroup.Do(key, func() (any, error) {
		return ClassifyCached(cache, dir, base, dirModTime, fileNames)
	})
	if err != nil {
		return Plan{}, err
	}
	return v.(Plan), nil
}
