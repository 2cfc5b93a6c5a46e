package grove

import (
	"fmt"
	"io"
	"time"
)

// flushStats holds per-flush dispatch metrics.
// Only populated when the state is in debug mode.
type flushStats struct {
	events      int
	invocations int
	consumed    int
	took        time.Duration
}

// SetDebugMode enables or disables debug mode. When enabled, the tree is
// validated after every Add and Remove (a violation panics), depth and
// child count warnings are printed, and per-flush stats are logged.
func (st *State) SetDebugMode(enabled bool) {
	st.debug = enabled
}

// SetDebugOutput redirects debug output. The default is os.Stderr.
func (st *State) SetDebugOutput(w io.Writer) {
	st.debugOut = w
}

func (st *State) debugf(format string, args ...any) {
	if !st.debug || st.debugOut == nil {
		return
	}
	_, _ = fmt.Fprintf(st.debugOut, "[grove] "+format+"\n", args...)
}

// debugLogFlush prints dispatch stats for one flush.
func (st *State) debugLogFlush(stats flushStats) {
	st.debugf("flush: events %d | invocations %d | consumed %d | took %v",
		stats.events, stats.invocations, stats.consumed, stats.took)
}

// label names an entity for debug output, preferring its props name.
func (st *State) label(e Entity) string {
	if !e.IsNull() && e.Index() < len(st.props) {
		if name := st.props[e.idx].Name; name != "" {
			return fmt.Sprintf("%q(%d)", name, e.idx)
		}
	}
	return e.String()
}

// debugAfterMutation validates the tree and warns about suspicious shapes.
// added is the entity just attached (Null after a removal) and parent the
// entity whose children changed.
func (st *State) debugAfterMutation(added, parent Entity) {
	if err := st.Tree.Validate(); err != nil {
		panic(err)
	}
	if !added.IsNull() {
		debugCheckTreeDepth(st, added)
	}
	if !parent.IsNull() {
		debugCheckChildCount(st, parent)
	}
}

// debugMaxTreeDepth is the depth past which a warning is printed.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(st *State, e Entity) {
	depth := 0
	it := st.Tree.Ancestors(e)
	for _, ok := it.Next(); ok; _, ok = it.Next() {
		depth++
	}
	if depth > debugMaxTreeDepth {
		st.debugf("warning: tree depth %d exceeds %d (entity %s)", depth, debugMaxTreeDepth, st.label(e))
	}
}

// debugMaxChildCount is the child count past which a warning is printed.
const debugMaxChildCount = 1000

func debugCheckChildCount(st *State, e Entity) {
	if n := st.Tree.NumChildren(e); n > debugMaxChildCount {
		st.debugf("warning: entity %s has %d children (threshold %d)", st.label(e), n, debugMaxChildCount)
	}
}
