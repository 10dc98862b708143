package axis

import (
	"slices"
	"sync"

	"github.com/matzehuels/stackchart/pkg/render/chart/scale"
)

// Memo caches Y labels across repeated layouts of the same dataset, for
// hosts that redraw often (resizes, hover). Entries are keyed by a
// caller-provided dataset identity plus the scale's record count and
// ValueMax; the formatter is not part of the key, so callers must change
// the identity when they change the formatter.
//
// The zero value is ready to use and safe for concurrent use.
type Memo struct {
	mu     sync.Mutex
	key    memoKey
	labels []string
	hits   int
}

type memoKey struct {
	id  string
	n   int
	max float64
}

// YLabels returns [YLabels] for s, reusing the previous result when id
// and the scale's shape are unchanged.
func (m *Memo) YLabels(id string, s scale.Scale, f Formatter) []string {
	k := memoKey{id: id, n: s.N, max: s.ValueMax}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.labels != nil && m.key == k {
		m.hits++
		return slices.Clone(m.labels)
	}
	m.key = k
	m.labels = YLabels(s, f)
	return slices.Clone(m.labels)
}

// Hits reports how many calls were served from the cache.
func (m *Memo) Hits() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hits
}

// Reset drops the cached labels.
func (m *Memo) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.labels = nil
	m.key = memoKey{}
}
