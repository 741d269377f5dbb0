package recommendation

import (
	"encoding/binary"
	"hash/fnv"
	"math"
	"slices"
	"sort"
	"strconv"
	"sync/atomic"

	"studyRecommender/business/recommender"

	"golang.org/x/sync/singleflight"
)

// indexCache keeps the last fitted index. Readers load a pointer to an
// immutable entry, so they see either the old or the new index.
type indexCache struct {
	current atomic.Pointer[cachedIndex]
	group   singleflight.Group
}

type cachedIndex struct {
	key   string
	index *recommender.FittedIndex
}

// get returns the cached index for key or fits a new one. Concurrent misses
// on the same key share one fit. The bool reports a cache hit.
func (c *indexCache) get(key string, fit func() (*recommender.FittedIndex, error)) (*recommender.FittedIndex, bool, error) {
	if cur := c.current.Load(); cur != nil && cur.key == key {
		return cur.index, true, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		if cur := c.current.Load(); cur != nil && cur.key == key {
			return cur.index, nil
		}
		idx, err := fit()
		if err != nil {
			return nil, err
		}
		c.current.Store(&cachedIndex{key: key, index: idx})
		return idx, nil
	})
	if err != nil {
		return nil, false, err
	}
	return v.(*recommender.FittedIndex), false, nil
}

// fingerprint hashes catalog content plus the config fields that change a
// fit. It does not depend on catalog order.
func fingerprint(records []recommender.ProgramRecord, cfg recommender.Config) string {
	sorted := slices.Clone(records)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	h := fnv.New64a()
	write := func(s string) {
		_, _ = h.Write([]byte(s))
		_, _ = h.Write([]byte{0})
	}
	writeFloat := func(f float64) {
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
		_, _ = h.Write(buf[:])
	}

	writeFloat(cfg.CategoricalWeight)
	writeFloat(cfg.IDFSmoothing)
	stop := make([]string, 0, len(cfg.StopWords))
	for w := range cfg.StopWords {
		stop = append(stop, w)
	}
	sort.Strings(stop)
	write(strconv.Itoa(len(stop)))
	for _, w := range stop {
		write(w)
	}

	write(strconv.Itoa(len(sorted)))
	for _, r := range sorted {
		write(r.ID)
		write(r.Description)
		write(strconv.Itoa(len(r.Tags)))
		for _, t := range r.Tags {
			write(t)
		}
		write(strconv.Itoa(len(r.Skills)))
		for _, s := range r.Skills {
			write(s)
		}
	}

	return strconv.FormatUint(h.Sum64(), 16)
}
