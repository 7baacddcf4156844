package svgrender

import (
	"context"
	"fmt"
	"time"

	"github.com/stashtools/funscript/codec"
	"github.com/stashtools/funscript/internal/sqlitecache"
	"github.com/stashtools/funscript/script"
)

// RenderDocumentCached behaves like RenderDocument but checks cache first,
// keyed by a content hash of the primary script's v2.0 wire bytes plus
// opts. A cache hit skips rendering entirely.
func RenderDocumentCached(ctx context.Context, cache *sqlitecache.Cache, scripts []*script.Script, opts RenderOptions) (string, error) {
	key, err := cacheKey(scripts, opts)
	if err != nil {
		return RenderDocument(scripts, opts)
	}

	if svg, ok, err := cache.Get(ctx, key); err == nil && ok {
		return svg, nil
	}

	svg, err := RenderDocument(scripts, opts)
	if err != nil {
		return "", err
	}
	_ = cache.Put(ctx, key, svg, time.Now())
	return svg, nil
}

func cacheKey(scripts []*script.Script, opts RenderOptions) (string, error) {
	if len(scripts) == 0 {
		return "", nil
	}
	wire, err := codec.Serialize(scripts[0], codec.SerializeOptions{Target: codec.Target20})
	if err != nil {
		return "", err
	}
	optsBytes := []byte(fmt.Sprintf("%+v|%d|%s", opts, len(scripts), rowTitle(scripts[0])))
	return sqlitecache.Key(wire, optsBytes), nil
}
