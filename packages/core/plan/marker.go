package plan

import (
	"strconv"
	"sync"
	"time"

	"github.com/specrun/specrun/packages/core/config"
)

// MarkerResolver resolves the run marker exactly once. The default
// marker is the wall-clock time as epoch seconds at resolution time; an
// explicit marker passes through unchanged.
type MarkerResolver struct {
	once     sync.Once
	resolved string
}

func NewMarkerResolver() *MarkerResolver {
	return &MarkerResolver{}
}

// Resolve computes the marker on first call and returns the same value
// on every later call, regardless of elapsed time.
func (r *MarkerResolver) Resolve(m config.Marker) string {
	r.once.Do(func() {
		if m.IsExplicit() {
			r.resolved = m.Value()
			return
		}
		r.resolved = strconv.FormatInt(time.Now().Unix(), 10)
	})
	return r.resolved
}
